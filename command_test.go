package smallsprite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tables := []struct {
		in   string
		want Command
	}{
		{"quit", Command{Op: OpQuit}},
		{"  plot 3   4 ", Command{Op: OpPlot, Args: []int{3, 4}}},
		{"sprite 2", Command{Op: OpSelectSprite, Args: []int{2}}},
		{"set-frame 1 9", Command{Op: OpSetFrame, Args: []int{1, 9}}},
		{"export out.png", Command{Op: OpExportSprite, Text: "out.png"}},
		{"export out.png 8", Command{Op: OpExportSprite, Text: "out.png", Args: []int{8}}},
		{"fetch 6ba7b810-9dad-11d1-80b4-00c04fd430c8", Command{Op: OpFetch, Text: "6ba7b810-9dad-11d1-80b4-00c04fd430c8"}},
		{"wait 30", Command{Op: OpWait, Args: []int{30}}},
	}

	for _, table := range tables {
		t.Run(table.in, func(t *testing.T) {
			got, err := ParseCommand(table.in)
			require.Nil(t, err)
			assert.Equal(t, table.want, got)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"dance",
		"plot 3",
		"plot 3 4 5",
		"plot x 4",
		"quit now",
		"export",
		"import a.png 2",
		"export a.png 2 3",
	} {
		_, err := ParseCommand(in)
		assert.NotNil(t, err, "%q", in)
	}
}

func TestCommandString(t *testing.T) {
	for op, info := range ops {
		assert.Equal(t, info.name, op.String())
	}
	assert.Equal(t, "Op(999)", Op(999).String())

	for _, in := range []string{"plot 1 2", "export-gif a.gif 4", "loop"} {
		cmd, err := ParseCommand(in)
		require.Nil(t, err)
		assert.Equal(t, in, cmd.String())
	}
}

func TestCommandArg(t *testing.T) {
	cmd := Command{Op: OpPlot, Args: []int{7}}
	assert.Equal(t, 7, cmd.Arg(0, -1))
	assert.Equal(t, -1, cmd.Arg(1, -1))
}
