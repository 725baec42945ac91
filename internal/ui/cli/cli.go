// Package cli implements the terminal output shared by the command-line programs.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/gamesearch/internal/games"
	"golang.org/x/term"
)

// UI writes to an output, optionally in color, centering blocks on the terminal width.
type UI struct {
	out   io.Writer
	color bool
	width int
}

var (
	drawStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("13")).
			Foreground(lipgloss.Color("0")).
			Padding(1, 2)
	winStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("10")).
			Foreground(lipgloss.Color("0")).
			Bold(true).
			Padding(1, 2)
	headingStyle = lipgloss.NewStyle().Bold(true).Italic(true).Foreground(lipgloss.Color("7"))
)

// New creates a UI writing to os.Stdout. Color is only used if requested and os.Stdout is a terminal.
func New(color bool) *UI {
	return NewWithWriter(os.Stdout, color)
}

// NewWithWriter creates a UI writing to out. If out is a terminal, blocks are centered on its width.
func NewWithWriter(out io.Writer, color bool) *UI {
	ui := &UI{out: out}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		ui.width, _, _ = term.GetSize(int(f.Fd()))
		ui.color = color
	}
	return ui
}

// Color returns whether the UI is using colors.
func (ui *UI) Color() bool {
	return ui.color
}

// render s with the style, if using colors.
func (ui *UI) render(style lipgloss.Style, s string) string {
	if !ui.color {
		return s
	}
	return style.Render(s)
}

// PrintCentered prints the block of text (possibly multi-line) centered on the terminal width.
// If the width is not known, it is printed as is.
func (ui *UI) PrintCentered(block string) {
	block = strings.TrimRight(block, "\n")
	lines := strings.Split(block, "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, lipgloss.Width(line))
	}
	indent := max((ui.width-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(ui.out)
			continue
		}
		_, _ = fmt.Fprintf(ui.out, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// Heading prints a section heading.
func (ui *UI) Heading(format string, args ...any) {
	_, _ = fmt.Fprintf(ui.out, "\n%s\n\n", ui.render(headingStyle, fmt.Sprintf(format, args...)))
}

// PrintState displays state using the game's Display, centered.
func PrintState[S any, A comparable](ui *UI, game games.Game[S, A], state S) error {
	var sb strings.Builder
	if err := game.Display(&sb, state); err != nil {
		return err
	}
	ui.PrintCentered(sb.String())
	return nil
}

// PrintResult prints the outcome of a match given the utility of the final state for the
// first player, and the names given to the first and second players.
func (ui *UI) PrintResult(utility float64, first, second string) {
	_, _ = fmt.Fprintln(ui.out)
	switch {
	case utility > 0:
		ui.PrintCentered(ui.render(winStyle, fmt.Sprintf("*** %s WINS!! (utility %g) ***", strings.ToUpper(first), utility)))
	case utility < 0:
		ui.PrintCentered(ui.render(winStyle, fmt.Sprintf("*** %s WINS!! (utility %g for %s) ***", strings.ToUpper(second), utility, first)))
	default:
		ui.PrintCentered(ui.render(drawStyle, "*** DRAW! ***"))
	}
	_, _ = fmt.Fprintln(ui.out)
}
