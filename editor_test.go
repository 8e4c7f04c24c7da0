package smallsprite

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrRaffo/smallsprite/anim"
	"github.com/MrRaffo/smallsprite/palette"
	"github.com/MrRaffo/smallsprite/sprite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now    time.Time
	frame  time.Duration
	sleeps int
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) SleepUntilNextFrame(start time.Time) {
	c.sleeps++
	c.now = start.Add(c.frame)
}

type scriptInput struct {
	commands []Command
	polls    int
}

func (s *scriptInput) Poll() (Command, bool) {
	s.polls++
	if len(s.commands) == 0 {
		return Command{Op: OpQuit}, true
	}
	cmd := s.commands[0]
	s.commands = s.commands[1:]
	return cmd, true
}

type fakeCanvas map[[2]int]color.Color

func (c fakeCanvas) PlotPixel(x, y int, col color.Color) {
	c[[2]int{x, y}] = col
}

func execute(t *testing.T, e *Editor, lines ...string) {
	t.Helper()
	for _, line := range lines {
		cmd, err := ParseCommand(line)
		require.Nil(t, err, line)
		require.Nil(t, e.Execute(cmd), line)
	}
}

func TestEditorPlot(t *testing.T) {
	p := newProject(t)
	e := NewEditor(p, nil, nil)

	execute(t, e, "color 3", "plot 2 1", "color 4", "plot 15 15", "erase 15 15", "plot 16 0")
	assert.Equal(t, uint8(3), p.Sprites.GetPixel(0, 18))
	assert.Equal(t, uint8(0), p.Sprites.GetPixel(0, 255))

	execute(t, e, "fill")
	assert.Equal(t, uint8(4), p.Sprites.GetPixel(0, 18))
	execute(t, e, "clear")
	assert.Equal(t, uint8(0), p.Sprites.GetPixel(0, 18))

	// Out of range colors are ignored
	execute(t, e, "color 16")
	assert.Equal(t, 4, e.Color())
}

func TestEditorSprites(t *testing.T) {
	p := newProject(t)
	e := NewEditor(p, nil, nil)

	execute(t, e, "add-sprite", "add-sprite")
	assert.Equal(t, 3, p.Sprites.Len())
	assert.Equal(t, 2, e.Sprite())

	execute(t, e, "remove-sprite")
	assert.Equal(t, 2, p.Sprites.Len())
	assert.Equal(t, 1, e.Sprite())

	execute(t, e, "sprite 0", "sprite 9")
	assert.Equal(t, 0, e.Sprite())

	execute(t, e, "plot 0 0", "copy", "sprite 1", "paste")
	assert.Equal(t, uint8(1), p.Sprites.GetPixel(1, 0))

	execute(t, e, "shift-right")
	assert.Equal(t, uint8(1), p.Sprites.GetPixel(1, 1))
	execute(t, e, "shift-down")
	assert.Equal(t, uint8(1), p.Sprites.GetPixel(1, sprite.Width+1))
	execute(t, e, "shift-up", "shift-left", "flip-horizontal")
	assert.Equal(t, uint8(1), p.Sprites.GetPixel(1, sprite.Width-1))
	execute(t, e, "flip-vertical")
	assert.Equal(t, uint8(1), p.Sprites.GetPixel(1, sprite.Size-1))
}

func TestEditorRemoveSpriteSelectsPalette(t *testing.T) {
	p := newProject(t)
	e := NewEditor(p, nil, nil)

	// Sprite 1 uses palette 1, sprite 2 uses palette 0
	execute(t, e, "add-sprite", "next-palette", "sprite 0", "add-sprite")
	require.Equal(t, 3, p.Sprites.Len())
	require.Equal(t, 1, p.Sprites.PaletteRef(1))
	require.Equal(t, 0, p.Sprites.PaletteRef(2))

	// Sprite 1 takes the removed sprite's place and its palette is selected
	execute(t, e, "sprite 0", "remove-sprite")
	assert.Equal(t, 0, e.Sprite())
	assert.Equal(t, 1, p.Sprites.PaletteRef(0))
	assert.Equal(t, 1, p.Palettes.Current())

	// Removing the last sprite selects the new last one
	execute(t, e, "sprite 1", "remove-sprite")
	assert.Equal(t, 0, e.Sprite())
	assert.Equal(t, 1, p.Palettes.Current())
}

func TestEditorPalettes(t *testing.T) {
	p := newProject(t)
	e := NewEditor(p, nil, nil)

	// Browsing past the end creates a palette and assigns it
	execute(t, e, "next-palette")
	assert.Equal(t, 2, p.Palettes.Len())
	assert.Equal(t, 1, p.Sprites.PaletteRef(0))

	execute(t, e, "color 2", "set-color 40")
	assert.Equal(t, 40, p.Palettes.UserPaletteIndex(1, 2))
	execute(t, e, "set-color 64")
	assert.Equal(t, 40, p.Palettes.UserPaletteIndex(1, 2))

	execute(t, e, "prev-palette")
	assert.Equal(t, 0, p.Sprites.PaletteRef(0))
	execute(t, e, "palette 1")
	assert.Equal(t, 1, p.Sprites.PaletteRef(0))
	execute(t, e, "palette 7")
	assert.Equal(t, 1, p.Sprites.PaletteRef(0))

	// New sprites take the palette under the cursor
	execute(t, e, "add-sprite")
	assert.Equal(t, 1, p.Sprites.PaletteRef(1))

	// Selecting a sprite moves the cursor to its palette
	execute(t, e, "prev-palette", "sprite 0")
	assert.Equal(t, 1, p.Palettes.Current())

	execute(t, e, "remove-palette")
	assert.Equal(t, 1, p.Palettes.Len())
	assert.Equal(t, 0, p.Sprites.PaletteRef(0))
}

func TestEditorAnimations(t *testing.T) {
	p := newProject(t)
	e := NewEditor(p, nil, nil)

	execute(t, e, "add-sprite", "add-frame", "sprite 0", "add-frame", "frame-wait 4")
	assert.Equal(t, []int{0, 1, 0}, mustFrames(t, p, 0))
	assert.Equal(t, 4, p.Animations.FrameWait(0))

	execute(t, e, "set-frame 2 7", "remove-frame 1")
	assert.Equal(t, []int{0, 7}, mustFrames(t, p, 0))
	execute(t, e, "remove-frame 0")
	assert.Equal(t, []int{0, 7}, mustFrames(t, p, 0))
	execute(t, e, "delete-frame")
	assert.Equal(t, []int{0}, mustFrames(t, p, 0))

	execute(t, e, "sprite 1", "add-animation")
	assert.Equal(t, 1, e.Animation())
	assert.Equal(t, []int{1}, mustFrames(t, p, 1))

	execute(t, e, "remove-animation")
	assert.Equal(t, 1, p.Animations.Len())
	assert.Equal(t, 0, e.Animation())

	execute(t, e, "animation 5")
	assert.Equal(t, 0, e.Animation())
}

func TestEditorPlayer(t *testing.T) {
	p := newProject(t)
	e := NewEditor(p, nil, nil)

	execute(t, e, "play")
	assert.Equal(t, anim.Playing, p.Player.State())
	execute(t, e, "faster", "faster")
	assert.Equal(t, anim.DefaultFrameDelay-2, p.Player.Delay())
	execute(t, e, "slower")
	assert.Equal(t, anim.DefaultFrameDelay-1, p.Player.Delay())
	execute(t, e, "loop")
	assert.False(t, p.Player.Loop())
	execute(t, e, "stop")
	assert.Equal(t, anim.Stopped, p.Player.State())
}

func TestEditorFiles(t *testing.T) {
	dir := t.TempDir()
	p := newProject(t)
	e := NewEditor(p, nil, nil)

	execute(t, e, "set-color 48", "plot 5 5", "export "+filepath.Join(dir, "a.png")+" 2")

	// A scaled export is too big to import again
	cmd, err := ParseCommand("import " + filepath.Join(dir, "a.png"))
	require.Nil(t, err)
	assert.NotNil(t, e.Execute(cmd))
	assert.Equal(t, 0, e.Sprite())

	execute(t, e, "export "+filepath.Join(dir, "b.png"), "import "+filepath.Join(dir, "b.png"))
	assert.Equal(t, 1, e.Sprite())
	assert.Equal(t, uint8(1), p.Sprites.GetPixel(1, 5*sprite.Width+5))
	assert.Equal(t, 0, p.Sprites.PaletteRef(1))

	execute(t, e, "export-gif "+filepath.Join(dir, "a.gif"))
	_, err = os.Stat(filepath.Join(dir, "a.gif"))
	assert.Nil(t, err)

	cmd, err = ParseCommand("import " + filepath.Join(dir, "missing.png"))
	require.Nil(t, err)
	assert.NotNil(t, e.Execute(cmd))

	cmd, err = ParseCommand("stash")
	require.Nil(t, err)
	assert.Equal(t, errNoLibrary, e.Execute(cmd))
}

func TestEditorStashFetch(t *testing.T) {
	lib := newLibrary(t)
	p := newProject(t)
	e := NewEditor(p, lib, nil)

	execute(t, e, "plot 1 1", "stash")
	ids, err := lib.IDs()
	require.Nil(t, err)
	require.Len(t, ids, 1)

	execute(t, e, "fetch "+ids[0])
	assert.Equal(t, 1, e.Sprite())
	assert.Equal(t, uint8(1), p.Sprites.GetPixel(1, sprite.Width+1))
}

func TestEditorRun(t *testing.T) {
	p := newProject(t)
	e := NewEditor(p, nil, nil)

	in := &scriptInput{}
	for _, line := range []string{"add-sprite", "add-frame", "play", "wait 20"} {
		cmd, err := ParseCommand(line)
		require.Nil(t, err)
		in.commands = append(in.commands, cmd)
	}

	clock := &fakeClock{now: time.Unix(0, 0), frame: DefaultFrameTime}
	canvas := fakeCanvas{}

	e.Run(in, clock, canvas)
	assert.False(t, e.Running())

	// 4 commands, 20 idle frames and the quit
	assert.Equal(t, 25, clock.sleeps)
	assert.Equal(t, 5, in.polls)
	assert.Equal(t, time.Unix(0, 0).Add(25*DefaultFrameTime), clock.now)

	// 23 ticks since play at the default delay of 8 wrap once
	assert.Equal(t, anim.Playing, p.Player.State())
	assert.Equal(t, 0, p.Player.FrameIndex())

	edit := sprite.Width * EditScale * sprite.Height * EditScale
	preview := sprite.Width * PreviewScale * sprite.Height * PreviewScale
	assert.Len(t, canvas, edit+preview)
}

func TestEditorDraw(t *testing.T) {
	p := newProject(t)
	require.True(t, p.Palettes.SetUserPaletteIndex(0, 1, 63))
	e := NewEditor(p, nil, nil)
	execute(t, e, "plot 1 0")

	canvas := fakeCanvas{}
	e.Draw(canvas)

	white := palette.MainColor(63)
	for x := 0; x < EditScale*sprite.Width; x++ {
		want := color.Color(color.RGBA{})
		if x >= EditScale && x < 2*EditScale {
			want = white
		}
		assert.Equal(t, want, canvas[[2]int{x, 0}], "x %d", x)
	}

	// The stopped player shows frame 0, sprite 0
	assert.Equal(t, color.Color(white), canvas[[2]int{PreviewX + PreviewScale, PreviewY}])
	assert.Equal(t, color.Color(color.RGBA{}), canvas[[2]int{PreviewX, PreviewY}])
}

func TestEditorStatus(t *testing.T) {
	p := newProject(t)
	e := NewEditor(p, nil, nil)
	assert.Equal(t, "sprite 0/1 color 1 palette 0/1 animation 0/1 frames 1 wait 1 | player stopped frame 0 delay 8 loop on", e.Status())
}
