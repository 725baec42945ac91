package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/janpfeifer/gamesearch/internal/games/kinarow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintCentered(t *testing.T) {
	var buf bytes.Buffer
	ui := NewWithWriter(&buf, true)
	assert.False(t, ui.Color(), "colors are only used on terminals")
	ui.width = 10
	ui.PrintCentered("ab\n\nabcd\n")
	assert.Equal(t, "   ab\n\n   abcd\n", buf.String())
}

func TestPrintResult(t *testing.T) {
	for _, tc := range []struct {
		utility float64
		want    string
	}{
		{1, "X WINS"},
		{-1, "O WINS"},
		{0, "DRAW"},
	} {
		var buf bytes.Buffer
		NewWithWriter(&buf, false).PrintResult(tc.utility, "x", "o")
		assert.Contains(t, buf.String(), tc.want)
	}
}

func TestPrintState(t *testing.T) {
	var buf bytes.Buffer
	ui := NewWithWriter(&buf, false)
	g := kinarow.NewTicTacToe()
	require.NoError(t, PrintState[*kinarow.State, kinarow.Pos](ui, g, g.Initial()))
	assert.True(t, strings.Contains(buf.String(), "to move"))
}
