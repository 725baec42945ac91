// Package games defines the capability set of a two-player, zero-sum, turn-based game, as
// consumed by the adversarial searchers, the players and the match driver.
package games

import (
	"io"

	"github.com/pkg/errors"
)

// Player identifies whose turn it is, e.g. "MAX"/"MIN" or "X"/"O".
type Player string

// String implements fmt.Stringer.
func (p Player) String() string {
	return string(p)
}

// ErrNoActions is returned when a decision is requested for a state without any legal action.
// Callers are expected to gate every decision point with Game.IsTerminal.
var ErrNoActions = errors.New("no legal actions available in state")

// Game is queried, never mutated, by the searchers.
//
// States (S) are treated as immutable values: Result must return a new state and leave
// its input untouched. Actions (A) must be comparable, since games and players use them as keys.
type Game[S any, A comparable] interface {
	// Initial state of a match.
	Initial() S

	// Actions returns the legal actions in state.
	//
	// The order must be deterministic: searchers break ties by picking the first action that
	// reaches the best value.
	Actions(state S) []A

	// Result returns the state after action is taken. An action that is not legal in state
	// has no effect: the state is returned unchanged.
	Result(state S, action A) S

	// Utility of a (usually terminal) state from the point of view of player.
	Utility(state S, player Player) float64

	// IsTerminal returns whether the match is over in state.
	IsTerminal(state S) bool

	// ToMove returns the player whose turn it is in state.
	ToMove(state S) Player

	// Display renders state to w.
	Display(w io.Writer, state S) error
}

// ActionParser is implemented by games that can read an action typed by a human.
type ActionParser[A comparable] interface {
	ParseAction(text string) (A, error)
}

// IsLegal returns whether action is among the legal actions in state.
func IsLegal[S any, A comparable](game Game[S, A], state S, action A) bool {
	for _, legal := range game.Actions(state) {
		if legal == action {
			return true
		}
	}
	return false
}
