/*
Package anim implements the animation store and the preview player.

An animation is a counted list of sprite indices plus the number of ticks each
frame is meant to be held for. Frame entries are not checked against the
sprite store; a frame may refer to a sprite that no longer exists and it is up
to the caller to cope with that.
*/
package anim

import (
	"errors"

	"go.uber.org/zap"
)

const (
	// MaxAnimations is the capacity of the store
	MaxAnimations = 1024

	// MaxFrames is the capacity of a single animation
	MaxFrames = 1024

	// MaxFrameWait bounds both the authored frame wait and the player delay
	MaxFrameWait = 1024
)

var (
	errInvalidAnimation = errors.New("anim: invalid animation index")
	errInvalidFrame     = errors.New("anim: invalid frame index")
	errInvalidWait      = errors.New("anim: invalid frame wait")
	errLimit            = errors.New("anim: animation limit reached")
	errFrameLimit       = errors.New("anim: frame limit reached")
	errLastAnimation    = errors.New("anim: cannot remove the last animation")
	errLastFrame        = errors.New("anim: cannot remove the last frame")
	errEmpty            = errors.New("anim: animation has no frames")
)

// Animation is an ordered list of sprite indices. The length of Frames is the
// frame count.
type Animation struct {
	Frames    []int
	FrameWait int
}

// Store owns the animations.
type Store struct {
	animations []*Animation
	logger     *zap.Logger
}

// New returns an empty store. A nil logger discards everything.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		logger: logger,
	}
}

// Len returns the number of animations
func (s *Store) Len() int {
	return len(s.animations)
}

func (s *Store) get(a int) (*Animation, error) {
	if a < 0 || a >= len(s.animations) {
		return nil, errInvalidAnimation
	}
	return s.animations[a], nil
}

func (s *Store) invalid(op string, err error, fields ...zap.Field) {
	s.logger.Debug(op, append(fields, zap.Error(err))...)
}

// AddAnimation appends an animation holding a single frame of sprite 0 and
// returns its index, or -1 if the store is full.
func (s *Store) AddAnimation() int {
	if len(s.animations) >= MaxAnimations {
		s.logger.Warn("add animation", zap.Int("limit", MaxAnimations), zap.Error(errLimit))
		return -1
	}
	s.animations = append(s.animations, &Animation{
		Frames:    []int{0},
		FrameWait: 1,
	})
	return len(s.animations) - 1
}

// Load appends an animation read from a project file.
func (s *Store) Load(an Animation) bool {
	if len(s.animations) >= MaxAnimations {
		s.logger.Warn("load animation", zap.Int("limit", MaxAnimations), zap.Error(errLimit))
		return false
	}
	if len(an.Frames) == 0 {
		s.invalid("load animation", errEmpty)
		return false
	}
	if len(an.Frames) > MaxFrames {
		s.logger.Warn("load animation", zap.Int("frames", len(an.Frames)), zap.Error(errFrameLimit))
		return false
	}
	if an.FrameWait < 1 || an.FrameWait > MaxFrameWait {
		s.invalid("load animation", errInvalidWait, zap.Int("wait", an.FrameWait))
		an.FrameWait = clamp(an.FrameWait, 1, MaxFrameWait)
	}
	an.Frames = append([]int(nil), an.Frames...)
	s.animations = append(s.animations, &an)
	return true
}

// RemoveAnimation deletes animation i, moving later animations down one
// index. The last remaining animation is never removed.
func (s *Store) RemoveAnimation(i int) bool {
	if _, err := s.get(i); err != nil {
		s.invalid("remove animation", err, zap.Int("animation", i))
		return false
	}
	if len(s.animations) <= 1 {
		s.invalid("remove animation", errLastAnimation, zap.Int("animation", i))
		return false
	}
	copy(s.animations[i:], s.animations[i+1:])
	s.animations[len(s.animations)-1] = nil
	s.animations = s.animations[:len(s.animations)-1]
	return true
}

// Animation returns a copy of animation i
func (s *Store) Animation(i int) (*Animation, bool) {
	an, err := s.get(i)
	if err != nil {
		s.invalid("get animation", err, zap.Int("animation", i))
		return nil, false
	}
	return &Animation{
		Frames:    append([]int(nil), an.Frames...),
		FrameWait: an.FrameWait,
	}, true
}

// AddFrame appends a frame showing sprite 0 to animation a.
func (s *Store) AddFrame(a int) bool {
	an, err := s.get(a)
	if err != nil {
		s.invalid("add frame", err, zap.Int("animation", a))
		return false
	}
	if len(an.Frames) >= MaxFrames {
		s.logger.Warn("add frame", zap.Int("animation", a), zap.Int("limit", MaxFrames), zap.Error(errFrameLimit))
		return false
	}
	an.Frames = append(an.Frames, 0)
	return true
}

// SetFrame makes frame f of animation a show sprite. Only existing frames can
// be set.
func (s *Store) SetFrame(a, f, sprite int) bool {
	an, err := s.get(a)
	if err != nil {
		s.invalid("set frame", err, zap.Int("animation", a))
		return false
	}
	if f < 0 || f >= len(an.Frames) {
		s.invalid("set frame", errInvalidFrame, zap.Int("animation", a), zap.Int("frame", f))
		return false
	}
	an.Frames[f] = sprite
	return true
}

// RemoveFrame deletes frame f of animation a, moving later frames down. The
// first frame cannot be removed this way and neither can the only frame.
func (s *Store) RemoveFrame(a, f int) bool {
	an, err := s.get(a)
	if err != nil {
		s.invalid("remove frame", err, zap.Int("animation", a))
		return false
	}
	if len(an.Frames) <= 1 {
		s.invalid("remove frame", errLastFrame, zap.Int("animation", a))
		return false
	}
	if f < 1 || f >= len(an.Frames) {
		s.invalid("remove frame", errInvalidFrame, zap.Int("animation", a), zap.Int("frame", f))
		return false
	}
	an.Frames = append(an.Frames[:f], an.Frames[f+1:]...)
	return true
}

// DeleteFrame drops the last frame of animation a unless it is the only one.
func (s *Store) DeleteFrame(a int) bool {
	an, err := s.get(a)
	if err != nil {
		s.invalid("delete frame", err, zap.Int("animation", a))
		return false
	}
	if len(an.Frames) <= 1 {
		s.invalid("delete frame", errLastFrame, zap.Int("animation", a))
		return false
	}
	an.Frames = an.Frames[:len(an.Frames)-1]
	return true
}

// NumberOfFrames returns the frame count of animation a, -1 if there is no
// such animation.
func (s *Store) NumberOfFrames(a int) int {
	an, err := s.get(a)
	if err != nil {
		s.invalid("number of frames", err, zap.Int("animation", a))
		return -1
	}
	return len(an.Frames)
}

// Frame returns the sprite shown by frame f of animation a, -1 on invalid
// input.
func (s *Store) Frame(a, f int) int {
	an, err := s.get(a)
	if err != nil {
		s.invalid("get frame", err, zap.Int("animation", a))
		return -1
	}
	if f < 0 || f >= len(an.Frames) {
		s.invalid("get frame", errInvalidFrame, zap.Int("animation", a), zap.Int("frame", f))
		return -1
	}
	return an.Frames[f]
}

// FrameWait returns the authored ticks per frame of animation a, -1 if there
// is no such animation.
func (s *Store) FrameWait(a int) int {
	an, err := s.get(a)
	if err != nil {
		s.invalid("get frame wait", err, zap.Int("animation", a))
		return -1
	}
	return an.FrameWait
}

// SetFrameWait sets the authored ticks per frame of animation a.
func (s *Store) SetFrameWait(a, wait int) bool {
	an, err := s.get(a)
	if err == nil && (wait < 1 || wait > MaxFrameWait) {
		err = errInvalidWait
	}
	if err != nil {
		s.invalid("set frame wait", err, zap.Int("animation", a), zap.Int("wait", wait))
		return false
	}
	an.FrameWait = wait
	return true
}

// Free drops every animation.
func (s *Store) Free() {
	for i := range s.animations {
		s.animations[i] = nil
	}
	s.animations = nil
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
