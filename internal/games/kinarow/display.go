package kinarow

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/gamesearch/internal/games"
)

var (
	styleX     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	styleO     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleEmpty = lipgloss.NewStyle().Faint(true)
	styleAxis  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Mark returns the rendered mark for player, or an empty-square mark.
func Mark(player games.Player) string {
	switch player {
	case X:
		return styleX.Render("X")
	case O:
		return styleO.Render("O")
	}
	return styleEmpty.Render(".")
}

// Display implements games.Game. Rows are printed from y=v at the top down to y=1, so
// ConnectFour pieces look like they dropped to the bottom.
func (g *Game) Display(w io.Writer, state *State) error {
	var sb strings.Builder
	for y := g.v; y >= 1; y-- {
		sb.WriteString(styleAxis.Render(fmt.Sprintf("%2d ", y)))
		for x := 1; x <= g.h; x++ {
			player, _ := state.At(Pos{x, y})
			sb.WriteString(" ")
			sb.WriteString(Mark(player))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("   ")
	for x := 1; x <= g.h; x++ {
		sb.WriteString(styleAxis.Render(fmt.Sprintf("%2d", x)))
	}
	sb.WriteString("\n")
	if winner := state.Winner(); winner != "" {
		sb.WriteString(fmt.Sprintf("%s wins\n", Mark(winner)))
	} else if len(state.moves) == 0 {
		sb.WriteString("Draw\n")
	} else {
		sb.WriteString(fmt.Sprintf("%s to move\n", Mark(state.toMove)))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
