// Package searchers defines the interface of the adversarial search algorithms, and
// helpers shared by them.
package searchers

import (
	"github.com/janpfeifer/gamesearch/internal/games"
)

// Searcher is the interface that any of the search algorithms must adhere to be valid.
type Searcher[S any, A comparable] interface {
	// Search returns the next action to take in state, along with the value of taking that
	// action for the player to move.
	//
	// Optionally, it can also return the value of each of the actions available, in the order
	// given by game.Actions(state). Searchers that can't provide good approximations to those
	// return it nil.
	//
	// It returns games.ErrNoActions if there are no legal actions in state.
	Search(game games.Game[S, A], state S) (action A, score float64, actionsScores []float64, err error)
}

// ArgMax returns the action with the highest value, its value and the value of every action.
//
// Actions are valued in order, and ties are broken in favour of the first action reaching the
// maximum. It returns games.ErrNoActions if actions is empty.
func ArgMax[A comparable](actions []A, value func(action A) float64) (best A, bestValue float64, values []float64, err error) {
	if len(actions) == 0 {
		err = games.ErrNoActions
		return
	}
	values = make([]float64, len(actions))
	bestIdx := 0
	for ii, action := range actions {
		values[ii] = value(action)
		if values[ii] > values[bestIdx] {
			bestIdx = ii
		}
	}
	return actions[bestIdx], values[bestIdx], values, nil
}
