// Package minimax implements the exhaustive minimax decision: it searches forward all the way
// to the terminal states.
//
// Cost is O(b^d) evaluations, where b is the branching factor and d the depth of the terminal
// states, so it is only practical for small games. See package alphabeta for the pruned and
// depth-limited versions.
package minimax

import (
	"math"
	"time"

	"github.com/janpfeifer/gamesearch/internal/games"
	"github.com/janpfeifer/gamesearch/internal/searchers"
	"k8s.io/klog/v2"
)

// Stats collected during the last search, for benchmarking and debugging.
type Stats struct {
	// Nodes visited: states on which maxValue or minValue were called.
	Nodes int

	// Evals is the number of terminal states evaluated with the game utility.
	Evals int
}

// Searcher implements searchers.Searcher with exhaustive minimax.
//
// A Searcher keeps the Stats of its last search, so it should not be shared among goroutines.
type Searcher[S any, A comparable] struct {
	stats Stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher[string, string] = (*Searcher[string, string])(nil)

// New returns a minimax Searcher.
func New[S any, A comparable]() *Searcher[S, A] {
	return &Searcher[S, A]{}
}

// Decision returns the action in state that maximizes the minimax value for the player to move.
// It returns games.ErrNoActions if there are no legal actions in state.
func Decision[S any, A comparable](game games.Game[S, A], state S) (A, error) {
	action, _, _, err := New[S, A]().Search(game, state)
	return action, err
}

// Stats of the last search.
func (m *Searcher[S, A]) Stats() Stats {
	return m.stats
}

// Search implements searchers.Searcher.
//
// The actionsScores returned are the exact minimax values of each action.
func (m *Searcher[S, A]) Search(game games.Game[S, A], state S) (action A, score float64, actionsScores []float64, err error) {
	m.stats = Stats{}
	start := time.Now()
	s := &search[S, A]{
		game:   game,
		player: game.ToMove(state),
		stats:  &m.stats,
	}
	action, score, actionsScores, err = searchers.ArgMax(game.Actions(state), func(a A) float64 {
		return s.minValue(game.Result(state, a))
	})
	if err != nil {
		return
	}
	if klog.V(2).Enabled() {
		klog.Infof("minimax: %s plays %v (value=%g) - %+v in %s",
			s.player, action, score, m.stats, time.Since(start))
	}
	return
}

// search holds what is fixed during one decision: the recursion only passes the state.
type search[S any, A comparable] struct {
	game games.Game[S, A]

	// player is the one to move at the root: all utilities are taken from its point of view.
	player games.Player
	stats  *Stats
}

func (s *search[S, A]) maxValue(state S) float64 {
	s.stats.Nodes++
	if s.game.IsTerminal(state) {
		s.stats.Evals++
		return s.game.Utility(state, s.player)
	}
	v := math.Inf(-1)
	for _, a := range s.game.Actions(state) {
		v = max(v, s.minValue(s.game.Result(state, a)))
	}
	return v
}

func (s *search[S, A]) minValue(state S) float64 {
	s.stats.Nodes++
	if s.game.IsTerminal(state) {
		s.stats.Evals++
		return s.game.Utility(state, s.player)
	}
	v := math.Inf(1)
	for _, a := range s.game.Actions(state) {
		v = min(v, s.maxValue(s.game.Result(state, a)))
	}
	return v
}
