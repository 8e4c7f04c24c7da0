package smallsprite

import (
	"fmt"
	stdimage "image"
	"image/color"
	"os"
	"time"

	"github.com/MrRaffo/smallsprite/palette"
	"github.com/MrRaffo/smallsprite/sprite"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Clock paces the editor loop.
type Clock interface {
	Now() time.Time
	// SleepUntilNextFrame blocks until one frame has passed since start.
	SleepUntilNextFrame(start time.Time)
}

// Canvas receives the rendered editor view one pixel at a time.
type Canvas interface {
	PlotPixel(x, y int, c color.Color)
}

// Input is the source of editor commands. Poll returns false when there is
// no command this frame.
type Input interface {
	Poll() (Command, bool)
}

// Canvas layout. The sprite being edited is drawn at the origin with every
// pixel magnified to EditScale, the animation preview to its right.
const (
	EditScale    = 16
	PreviewScale = 4
	PreviewX     = sprite.Width*EditScale + EditScale
	PreviewY     = 0
)

// Bounds returns the area of the canvas the editor draws into.
func Bounds() stdimage.Rectangle {
	return stdimage.Rect(0, 0, PreviewX+sprite.Width*PreviewScale, sprite.Height*EditScale)
}

var errBadPosition = errors.New("smallsprite: position outside sprite")

// Editor applies commands to a project and draws it.
type Editor struct {
	project *Project
	library *Library
	logger  *zap.Logger

	// FrameTime is the duration of one frame wait unit used when exporting
	// animations.
	FrameTime time.Duration

	sprite  int
	color   int
	anim    int
	idle    int
	running bool
}

// NewEditor returns an editor for p with sprite 0, color 1 and animation 0
// selected. lib may be nil.
func NewEditor(p *Project, lib *Library, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Editor{
		project:   p,
		library:   lib,
		logger:    logger,
		FrameTime: DefaultFrameTime,
		color:     1,
	}
	e.selectSprite(0)
	return e
}

// Sprite returns the selected sprite
func (e *Editor) Sprite() int { return e.sprite }

// Color returns the selected local color
func (e *Editor) Color() int { return e.color }

// Animation returns the selected animation
func (e *Editor) Animation() int { return e.anim }

// Running reports whether Run is looping
func (e *Editor) Running() bool { return e.running }

func (e *Editor) selectSprite(i int) bool {
	if i < 0 || i >= e.project.Sprites.Len() {
		e.logger.Debug("select sprite", zap.Int("sprite", i), zap.Error(errNoSprite))
		return false
	}
	e.sprite = i
	e.project.Palettes.SetPalette(e.project.Sprites.PaletteRef(i))
	return true
}

func (e *Editor) selectAnimation(a int) bool {
	if a < 0 || a >= e.project.Animations.Len() {
		e.logger.Debug("select animation", zap.Int("animation", a), zap.Error(errNoAnimation))
		return false
	}
	e.anim = a
	return true
}

// assignPalette gives the selected sprite palette i if i is valid.
func (e *Editor) assignPalette(i int) {
	if i >= 0 {
		e.project.Sprites.SetPaletteRef(e.sprite, i)
	}
}

func position(cmd Command) (int, error) {
	x, y := cmd.Arg(0, -1), cmd.Arg(1, -1)
	if x < 0 || x >= sprite.Width || y < 0 || y >= sprite.Height {
		return -1, errors.Wrapf(errBadPosition, "%d,%d", x, y)
	}
	return y*sprite.Width + x, nil
}

// Execute applies cmd. Commands the stores refuse are logged and ignored;
// only failing file or library operations return an error.
func (e *Editor) Execute(cmd Command) error {
	p := e.project
	e.logger.Debug("execute", zap.Stringer("command", cmd))

	switch cmd.Op {
	case OpNone:
	case OpQuit:
		e.running = false
	case OpWait:
		if n := cmd.Arg(0, 0); n > 0 {
			e.idle = n
		}

	case OpSelectSprite:
		e.selectSprite(cmd.Arg(0, -1))
	case OpSelectColor:
		if c := cmd.Arg(0, -1); c >= 0 && c < palette.UserSize {
			e.color = c
		}
	case OpSelectAnimation:
		e.selectAnimation(cmd.Arg(0, -1))

	case OpAddSprite:
		if i := p.Sprites.AddSprite(); i >= 0 {
			p.Sprites.SetPaletteRef(i, p.Palettes.Current())
			e.selectSprite(i)
		}
	case OpRemoveSprite:
		if p.Sprites.RemoveSprite(e.sprite) {
			e.selectSprite(min(e.sprite, p.Sprites.Len()-1))
		}
	case OpPlot, OpErase:
		i, err := position(cmd)
		if err != nil {
			e.logger.Debug(cmd.Op.String(), zap.Error(err))
			break
		}
		v := e.color
		if cmd.Op == OpErase {
			v = 0
		}
		p.Sprites.SetPixel(e.sprite, i, v)
	case OpClear:
		p.Sprites.Clear(e.sprite)
	case OpFill:
		p.Sprites.Fill(e.sprite, e.color)
	case OpShiftLeft:
		p.Sprites.ShiftLeft(e.sprite)
	case OpShiftRight:
		p.Sprites.ShiftRight(e.sprite)
	case OpShiftUp:
		p.Sprites.ShiftUp(e.sprite)
	case OpShiftDown:
		p.Sprites.ShiftDown(e.sprite)
	case OpFlipHorizontal:
		p.Sprites.FlipHorizontal(e.sprite)
	case OpFlipVertical:
		p.Sprites.FlipVertical(e.sprite)
	case OpCopy:
		p.Sprites.Copy(e.sprite)
	case OpPaste:
		p.Sprites.Paste(e.sprite)

	case OpNextPalette:
		e.assignPalette(p.Palettes.NextPalette())
	case OpPrevPalette:
		e.assignPalette(p.Palettes.PrevPalette())
	case OpSetPalette:
		e.assignPalette(p.Palettes.SetPalette(cmd.Arg(0, -1)))
	case OpRemovePalette:
		if p.Palettes.RemoveUserPalette(p.Palettes.Current()) {
			e.assignPalette(p.Palettes.Current())
		}
	case OpSetColor:
		p.Palettes.SetUserPaletteIndex(p.Palettes.Current(), e.color, cmd.Arg(0, -1))

	case OpAddAnimation:
		if a := p.Animations.AddAnimation(); a >= 0 {
			p.Animations.SetFrame(a, 0, e.sprite)
			e.anim = a
		}
	case OpRemoveAnimation:
		if p.Animations.RemoveAnimation(e.anim) && e.anim >= p.Animations.Len() {
			e.anim = p.Animations.Len() - 1
		}
	case OpAddFrame:
		if p.Animations.AddFrame(e.anim) {
			p.Animations.SetFrame(e.anim, p.Animations.NumberOfFrames(e.anim)-1, e.sprite)
		}
	case OpSetFrame:
		p.Animations.SetFrame(e.anim, cmd.Arg(0, -1), cmd.Arg(1, -1))
	case OpRemoveFrame:
		p.Animations.RemoveFrame(e.anim, cmd.Arg(0, -1))
	case OpDeleteFrame:
		p.Animations.DeleteFrame(e.anim)
	case OpSetFrameWait:
		p.Animations.SetFrameWait(e.anim, cmd.Arg(0, -1))

	case OpPlay:
		p.Player.Play(e.anim)
	case OpStop:
		p.Player.Stop()
	case OpSpeedUp:
		p.Player.SpeedUp()
	case OpSpeedDown:
		p.Player.SpeedDown()
	case OpToggleLoop:
		p.Player.ToggleLoop()

	case OpExportSprite:
		return e.exportSprite(cmd.Text, cmd.Arg(0, 1))
	case OpImportSprite:
		return e.importSprite(cmd.Text)
	case OpImportDir:
		added, err := p.ImportDir(cmd.Text)
		if err != nil {
			return err
		}
		if len(added) > 0 {
			e.selectSprite(added[len(added)-1])
		}
	case OpExportAnimation:
		return e.exportAnimation(cmd.Text, cmd.Arg(0, 1))
	case OpStash:
		id, err := p.Stash(e.library, e.sprite)
		if err != nil {
			return err
		}
		e.logger.Info("stashed sprite", zap.Int("sprite", e.sprite), zap.String("id", id))
	case OpFetch:
		i, err := p.Unstash(e.library, cmd.Text)
		if err != nil {
			return err
		}
		e.selectSprite(i)

	default:
		return errors.Wrapf(errUnknownCommand, "%s", cmd.Op)
	}

	return nil
}

func (e *Editor) exportSprite(file string, scale int) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := e.project.ExportSprite(f, e.sprite, scale); err != nil {
		return errors.Wrapf(err, "export %s", file)
	}
	return f.Close()
}

func (e *Editor) importSprite(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	i, err := e.project.ImportSprite(f)
	if err != nil {
		return errors.Wrapf(err, "import %s", file)
	}
	e.selectSprite(i)
	return nil
}

func (e *Editor) exportAnimation(file string, scale int) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := e.project.ExportAnimation(f, e.anim, scale, e.FrameTime); err != nil {
		return errors.Wrapf(err, "export %s", file)
	}
	return f.Close()
}

func (e *Editor) drawSprite(canvas Canvas, i, ox, oy, scale int) {
	// Missing sprites and palettes draw as transparency
	sp := new(sprite.Sprite)
	cp := color.Palette{color.RGBA{}}
	if i >= 0 && i < e.project.Sprites.Len() {
		sp, _ = e.project.Sprites.Sprite(i)
		if sp.PaletteRef >= 0 && sp.PaletteRef < e.project.Palettes.Len() {
			cp = e.project.Palettes.Colors(sp.PaletteRef)
		}
	}
	for y := 0; y < sprite.Height; y++ {
		for x := 0; x < sprite.Width; x++ {
			c := cp[0]
			if v := int(sp.Pixels[y*sprite.Width+x]); v < len(cp) {
				c = cp[v]
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					canvas.PlotPixel(ox+x*scale+dx, oy+y*scale+dy, c)
				}
			}
		}
	}
}

// Draw renders the selected sprite and the current preview frame.
func (e *Editor) Draw(canvas Canvas) {
	e.drawSprite(canvas, e.sprite, 0, 0, EditScale)
	e.drawSprite(canvas, e.project.Player.CurrentFrame(), PreviewX, PreviewY, PreviewScale)
}

// Step runs a single frame: poll one command unless waiting, tick the
// player and draw.
func (e *Editor) Step(in Input, canvas Canvas) {
	if e.idle > 0 {
		e.idle--
	} else if cmd, ok := in.Poll(); ok {
		if err := e.Execute(cmd); err != nil {
			e.logger.Error("command failed", zap.Stringer("command", cmd), zap.Error(err))
		}
	}

	e.project.Player.Tick()

	if canvas != nil {
		e.Draw(canvas)
	}
}

// Run steps frames paced by clock until a quit command is executed.
func (e *Editor) Run(in Input, clock Clock, canvas Canvas) {
	e.running = true
	for e.running {
		start := clock.Now()
		e.Step(in, canvas)
		clock.SleepUntilNextFrame(start)
	}
}

// Status describes the current selection, store sizes and player state.
func (e *Editor) Status() string {
	p := e.project
	loop := "off"
	if p.Player.Loop() {
		loop = "on"
	}
	return fmt.Sprintf("sprite %d/%d color %d palette %d/%d animation %d/%d frames %d wait %d | player %s frame %d delay %d loop %s",
		e.sprite, p.Sprites.Len(),
		e.color,
		p.Palettes.Current(), p.Palettes.Len(),
		e.anim, p.Animations.Len(),
		p.Animations.NumberOfFrames(e.anim), p.Animations.FrameWait(e.anim),
		p.Player.State(), p.Player.FrameIndex(), p.Player.Delay(), loop)
}
