package smallsprite

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Op identifies an editor command.
type Op int

// Editor commands. The comment gives the arguments each one takes.
const (
	OpNone Op = iota

	OpQuit
	OpWait // frames

	OpSelectSprite    // sprite
	OpSelectColor     // local color
	OpSelectAnimation // animation

	OpAddSprite
	OpRemoveSprite
	OpPlot  // x y
	OpErase // x y
	OpClear
	OpFill
	OpShiftLeft
	OpShiftRight
	OpShiftUp
	OpShiftDown
	OpFlipHorizontal
	OpFlipVertical
	OpCopy
	OpPaste

	OpNextPalette
	OpPrevPalette
	OpSetPalette // palette
	OpRemovePalette
	OpSetColor // main color

	OpAddAnimation
	OpRemoveAnimation
	OpAddFrame
	OpSetFrame    // frame sprite
	OpRemoveFrame // frame
	OpDeleteFrame
	OpSetFrameWait // wait

	OpPlay
	OpStop
	OpSpeedUp
	OpSpeedDown
	OpToggleLoop

	OpExportSprite    // path [scale]
	OpImportSprite    // path
	OpImportDir       // directory
	OpExportAnimation // path [scale]
	OpStash
	OpFetch // id
)

type opInfo struct {
	name string
	args int  // integer arguments
	text bool // trailing text argument
	opt  int  // optional integer arguments after the text
}

var ops = map[Op]opInfo{
	OpNone:            {name: "none"},
	OpQuit:            {name: "quit"},
	OpWait:            {name: "wait", args: 1},
	OpSelectSprite:    {name: "sprite", args: 1},
	OpSelectColor:     {name: "color", args: 1},
	OpSelectAnimation: {name: "animation", args: 1},
	OpAddSprite:       {name: "add-sprite"},
	OpRemoveSprite:    {name: "remove-sprite"},
	OpPlot:            {name: "plot", args: 2},
	OpErase:           {name: "erase", args: 2},
	OpClear:           {name: "clear"},
	OpFill:            {name: "fill"},
	OpShiftLeft:       {name: "shift-left"},
	OpShiftRight:      {name: "shift-right"},
	OpShiftUp:         {name: "shift-up"},
	OpShiftDown:       {name: "shift-down"},
	OpFlipHorizontal:  {name: "flip-horizontal"},
	OpFlipVertical:    {name: "flip-vertical"},
	OpCopy:            {name: "copy"},
	OpPaste:           {name: "paste"},
	OpNextPalette:     {name: "next-palette"},
	OpPrevPalette:     {name: "prev-palette"},
	OpSetPalette:      {name: "palette", args: 1},
	OpRemovePalette:   {name: "remove-palette"},
	OpSetColor:        {name: "set-color", args: 1},
	OpAddAnimation:    {name: "add-animation"},
	OpRemoveAnimation: {name: "remove-animation"},
	OpAddFrame:        {name: "add-frame"},
	OpSetFrame:        {name: "set-frame", args: 2},
	OpRemoveFrame:     {name: "remove-frame", args: 1},
	OpDeleteFrame:     {name: "delete-frame"},
	OpSetFrameWait:    {name: "frame-wait", args: 1},
	OpPlay:            {name: "play"},
	OpStop:            {name: "stop"},
	OpSpeedUp:         {name: "faster"},
	OpSpeedDown:       {name: "slower"},
	OpToggleLoop:      {name: "loop"},
	OpExportSprite:    {name: "export", text: true, opt: 1},
	OpImportSprite:    {name: "import", text: true},
	OpImportDir:       {name: "import-dir", text: true},
	OpExportAnimation: {name: "export-gif", text: true, opt: 1},
	OpStash:           {name: "stash"},
	OpFetch:           {name: "fetch", text: true},
}

var opNames = func() map[string]Op {
	m := make(map[string]Op, len(ops))
	for op, info := range ops {
		m[info.name] = op
	}
	return m
}()

func (op Op) String() string {
	if info, ok := ops[op]; ok {
		return info.name
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// Command is a single editor action with its arguments.
type Command struct {
	Op   Op
	Args []int
	Text string
}

// Arg returns argument n or def if it wasn't given.
func (c Command) Arg(n, def int) int {
	if n < len(c.Args) {
		return c.Args[n]
	}
	return def
}

func (c Command) String() string {
	var b strings.Builder
	b.WriteString(c.Op.String())
	if c.Text != "" {
		b.WriteByte(' ')
		b.WriteString(c.Text)
	}
	for _, a := range c.Args {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(a))
	}
	return b.String()
}

var (
	errUnknownCommand = errors.New("smallsprite: unknown command")
	errArguments      = errors.New("smallsprite: wrong number of arguments")
)

// ParseCommand parses a command from its text form, a command name followed
// by whitespace separated arguments, for example "plot 3 4" or
// "export out.png 8".
func ParseCommand(s string) (Command, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Command{}, errors.Wrap(errUnknownCommand, "empty command")
	}

	op, ok := opNames[fields[0]]
	if !ok {
		return Command{}, errors.Wrapf(errUnknownCommand, "%q", fields[0])
	}
	info := ops[op]
	cmd := Command{Op: op}
	rest := fields[1:]

	if info.text {
		if len(rest) == 0 {
			return Command{}, errors.Wrapf(errArguments, "%s", info.name)
		}
		cmd.Text, rest = rest[0], rest[1:]
		if len(rest) > info.opt {
			return Command{}, errors.Wrapf(errArguments, "%s", info.name)
		}
	} else if len(rest) != info.args {
		return Command{}, errors.Wrapf(errArguments, "%s", info.name)
	}

	for _, f := range rest {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Command{}, errors.Wrapf(err, "%s", info.name)
		}
		cmd.Args = append(cmd.Args, v)
	}

	return cmd, nil
}
