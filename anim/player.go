package anim

import (
	"go.uber.org/zap"
)

// State is the playback state of a Player
type State int

const (
	// Stopped players ignore ticks and keep showing their current frame
	Stopped State = iota
	// Playing players advance a frame every Delay ticks
	Playing
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	}
	return "unknown"
}

// DefaultFrameDelay is the number of ticks a new Player holds each frame for
const DefaultFrameDelay = 8

// Player steps through an animation for preview. It reads the store but never
// changes it.
//
// The player delay is global; it is distinct from each animation's authored
// FrameWait.
type Player struct {
	store  *Store
	logger *zap.Logger

	anim  int
	index int
	timer int
	delay int
	loop  bool
	state State
}

// NewPlayer returns a stopped player bound to animation 0 with looping
// enabled.
func NewPlayer(store *Store, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{
		store:  store,
		logger: logger,
		delay:  DefaultFrameDelay,
		timer:  DefaultFrameDelay,
		loop:   true,
	}
}

// Play starts animation a from its first frame.
func (p *Player) Play(a int) bool {
	if _, err := p.store.get(a); err != nil {
		p.logger.Debug("play", zap.Int("animation", a), zap.Error(err))
		return false
	}
	p.anim = a
	p.index = 0
	p.timer = p.delay
	p.state = Playing
	return true
}

// Stop halts playback, leaving the current frame showing.
func (p *Player) Stop() {
	p.state = Stopped
}

// Tick advances the player by one rendered frame.
func (p *Player) Tick() {
	if p.state == Stopped {
		return
	}

	n := p.store.NumberOfFrames(p.anim)
	if n < 1 {
		p.logger.Debug("tick", zap.Int("animation", p.anim), zap.Error(errInvalidAnimation))
		p.index = 0
		p.state = Stopped
		return
	}

	p.timer--
	if p.timer > 0 {
		return
	}

	p.index++
	if p.index >= n {
		p.index = 0
		if !p.loop {
			p.state = Stopped
		}
	}
	p.timer = p.delay
}

// SpeedUp shortens the frame delay by one tick, to a minimum of 1.
func (p *Player) SpeedUp() int {
	p.delay = clamp(p.delay-1, 1, MaxFrameWait)
	return p.delay
}

// SpeedDown lengthens the frame delay by one tick, to a maximum of 1024.
func (p *Player) SpeedDown() int {
	p.delay = clamp(p.delay+1, 1, MaxFrameWait)
	return p.delay
}

// ToggleLoop flips looping and returns the new setting.
func (p *Player) ToggleLoop() bool {
	p.loop = !p.loop
	return p.loop
}

// CurrentFrame returns the sprite index of the frame being shown, or -1 if
// the bound animation or frame no longer exists.
func (p *Player) CurrentFrame() int {
	return p.store.Frame(p.anim, p.index)
}

// State returns the playback state
func (p *Player) State() State { return p.state }

// Animation returns the bound animation index
func (p *Player) Animation() int { return p.anim }

// FrameIndex returns the position within the bound animation
func (p *Player) FrameIndex() int { return p.index }

// Delay returns the ticks each frame is held for
func (p *Player) Delay() int { return p.delay }

// Loop reports whether playback wraps at the end
func (p *Player) Loop() bool { return p.loop }
