package players

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/gamesearch/internal/games"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// MaxInvalidInputs is the number of consecutive invalid inputs a QueryPlayer accepts
// before giving up.
const MaxInvalidInputs = 3

// ErrTooManyInvalidInputs is returned by QueryPlayer.Play after MaxInvalidInputs invalid inputs.
var ErrTooManyInvalidInputs = errors.Errorf("failed to read a valid action %d times", MaxInvalidInputs)

// Prompt written before reading each action.
const Prompt = "Your move? "

var promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))

// QueryPlayer asks for each action on a reader, typically a human on the terminal.
//
// The game must implement games.ActionParser.
type QueryPlayer[S any, A comparable] struct {
	reader *bufio.Reader
	out    io.Writer
	color  bool
}

// Query returns a player that displays the state on out and reads the actions from in.
// The prompt is colored only if out is a terminal.
func Query[S any, A comparable](in io.Reader, out io.Writer) *QueryPlayer[S, A] {
	q := &QueryPlayer[S, A]{reader: bufio.NewReader(in), out: out}
	if f, ok := out.(*os.File); ok {
		q.color = term.IsTerminal(int(f.Fd()))
	}
	return q
}

// Play implements Player.
func (q *QueryPlayer[S, A]) Play(ctx context.Context, game games.Game[S, A], state S) (action A, err error) {
	parser, ok := game.(games.ActionParser[A])
	if !ok {
		err = errors.Errorf("game %T can't parse actions, it can't be played with a query player", game)
		return
	}
	if err = game.Display(q.out, state); err != nil {
		return
	}
	for range MaxInvalidInputs {
		if err = ctx.Err(); err != nil {
			return
		}
		prompt := Prompt
		if q.color {
			prompt = promptStyle.Render(strings.TrimSpace(Prompt)) + " "
		}
		if _, err = fmt.Fprint(q.out, prompt); err != nil {
			return
		}
		var text string
		text, err = q.reader.ReadString('\n')
		if err != nil && (err != io.EOF || strings.TrimSpace(text) == "") {
			return
		}
		action, err = parser.ParseAction(text)
		if err != nil {
			_, _ = fmt.Fprintf(q.out, "    * Failed to parse your input %q: %v\n", strings.TrimSpace(text), err)
			continue
		}
		if !games.IsLegal(game, state, action) {
			_, _ = fmt.Fprintf(q.out, "    * %v is not a legal action, please try again.\n", action)
			continue
		}
		return action, nil
	}
	var noAction A
	return noAction, ErrTooManyInvalidInputs
}
