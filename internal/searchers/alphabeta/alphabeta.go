// Package alphabeta implements the minimax decision with alpha-beta pruning, either searching
// all the way to the terminal states or cutting off the search at a given depth and using an
// evaluation function instead.
//
// See: wikipedia.org/wiki/Alpha-beta_pruning
package alphabeta

import (
	"math"
	"time"

	"github.com/janpfeifer/gamesearch/internal/games"
	"github.com/janpfeifer/gamesearch/internal/searchers"
	"k8s.io/klog/v2"
)

// DefaultMaxDepth for the depth-limited search.
const DefaultMaxDepth = 4

// Cutoff decides whether the search stops at state, found at the given depth. Children of
// the root are at depth 0.
type Cutoff[S any] func(state S, depth int) bool

// Eval estimates the value of state for the player to move at the root of the search.
type Eval[S any] func(state S) float64

// Searcher implements searchers.Searcher using alpha-beta pruning.
//
// A Searcher keeps the Stats of its last search, so it should not be shared among goroutines.
type Searcher[S any, A comparable] struct {
	maxDepth int
	full     bool
	cutoff   Cutoff[S]
	eval     Eval[S]
	stats    Stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher[string, string] = (*Searcher[string, string])(nil)

// Stats stores running stats collected during the search: for benchmarking, monitoring and debugging purposes.
type Stats struct {
	// Nodes visited: states on which maxValue or minValue were called.
	Nodes int

	// Evals is the number of states valued by the utility (full search) or by the
	// evaluation function (depth-limited search).
	Evals int

	// Prunes is the number of times the remaining actions of a node were skipped.
	Prunes int
}

// New returns a depth-limited alpha-beta Searcher, with max depth DefaultMaxDepth. The
// default cutoff test stops at the max depth or at terminal states, and the default
// evaluation is the game utility.
//
// There are other optional configurations, see methods Searcher.With...
func New[S any, A comparable]() *Searcher[S, A] {
	return &Searcher[S, A]{maxDepth: DefaultMaxDepth}
}

// WithMaxDepth sets the depth beyond which the default cutoff test stops the search.
// Children of the root are at depth 0, so 0 evaluates the grandchildren of the root.
// A negative value restores DefaultMaxDepth.
func (ab *Searcher[S, A]) WithMaxDepth(maxDepth int) *Searcher[S, A] {
	if maxDepth < 0 {
		maxDepth = DefaultMaxDepth
	}
	ab.maxDepth = maxDepth
	return ab
}

// WithCutoff replaces the default cutoff test. Set to nil to restore the default.
func (ab *Searcher[S, A]) WithCutoff(cutoff Cutoff[S]) *Searcher[S, A] {
	ab.cutoff = cutoff
	return ab
}

// WithEval sets the evaluation function used when the cutoff test fires.
// Set to nil to use the game utility.
func (ab *Searcher[S, A]) WithEval(eval Eval[S]) *Searcher[S, A] {
	ab.eval = eval
	return ab
}

// WithFullDepth makes the search go all the way to the terminal states, ignoring the
// max depth, cutoff test and evaluation function.
func (ab *Searcher[S, A]) WithFullDepth(full bool) *Searcher[S, A] {
	ab.full = full
	return ab
}

// Stats of the last search.
func (ab *Searcher[S, A]) Stats() Stats {
	return ab.stats
}

// FullSearch returns the best action in state, pruning branches proven irrelevant but
// searching all the way to the terminal states.
//
// It returns the same value as the exhaustive minimax decision. It returns games.ErrNoActions
// if there are no legal actions in state.
func FullSearch[S any, A comparable](game games.Game[S, A], state S) (A, error) {
	action, _, _, err := New[S, A]().WithFullDepth(true).Search(game, state)
	return action, err
}

// Search returns the best action in state using the depth-limited alpha-beta search.
//
// maxDepth is interpreted as in Searcher.WithMaxDepth: a negative value uses DefaultMaxDepth.
// A nil cutoff stops beyond maxDepth or at terminal states, and a nil eval uses the game
// utility for the player to move in state.
func Search[S any, A comparable](game games.Game[S, A], state S, maxDepth int, cutoff Cutoff[S], eval Eval[S]) (A, error) {
	action, _, _, err := New[S, A]().WithMaxDepth(maxDepth).WithCutoff(cutoff).WithEval(eval).Search(game, state)
	return action, err
}

// Search implements searchers.Searcher.
//
// Every action at the root is searched with a full (-∞, +∞) window, so the actionsScores
// returned are the values of each action under the configured cutoff and evaluation.
func (ab *Searcher[S, A]) Search(game games.Game[S, A], state S) (action A, score float64, actionsScores []float64, err error) {
	ab.stats = Stats{}
	start := time.Now()
	s := ab.newSearch(game, state)
	action, score, actionsScores, err = searchers.ArgMax(game.Actions(state), func(a A) float64 {
		return s.minValue(game.Result(state, a), math.Inf(-1), math.Inf(1), 0)
	})
	if err != nil {
		return
	}
	if klog.V(2).Enabled() {
		elapsed := time.Since(start)
		klog.Infof("alpha-beta: %s plays %v (value=%g) - %+v in %s", s.player, action, score, ab.stats, elapsed)
		if secs := elapsed.Seconds(); secs > 0 {
			klog.Infof("  nodes/s=%.1f, evals/s=%.1f", float64(ab.stats.Nodes)/secs, float64(ab.stats.Evals)/secs)
		}
	}
	return
}

// newSearch binds the player, cutoff test and evaluation function for one decision.
func (ab *Searcher[S, A]) newSearch(game games.Game[S, A], state S) *search[S, A] {
	s := &search[S, A]{
		game:   game,
		player: game.ToMove(state),
		stats:  &ab.stats,
	}
	utility := func(state S) float64 { return game.Utility(state, s.player) }
	if ab.full {
		s.cutoff = func(state S, _ int) bool { return game.IsTerminal(state) }
		s.eval = utility
		return s
	}
	s.cutoff = ab.cutoff
	if s.cutoff == nil {
		maxDepth := ab.maxDepth
		s.cutoff = func(state S, depth int) bool { return depth > maxDepth || game.IsTerminal(state) }
	}
	s.eval = ab.eval
	if s.eval == nil {
		s.eval = utility
	}
	return s
}

// search holds what is fixed during one decision: the recursion only passes the state,
// the alpha-beta window and the depth.
type search[S any, A comparable] struct {
	game   games.Game[S, A]
	player games.Player
	cutoff Cutoff[S]
	eval   Eval[S]
	stats  *Stats
}

// maxValue returns the value of state for s.player, when it is s.player's turn.
// alpha is the best value max can guarantee so far, beta the best value min can.
func (s *search[S, A]) maxValue(state S, alpha, beta float64, depth int) float64 {
	s.stats.Nodes++
	if s.cutoff(state, depth) {
		s.stats.Evals++
		return s.eval(state)
	}
	v := math.Inf(-1)
	for _, a := range s.game.Actions(state) {
		v = max(v, s.minValue(s.game.Result(state, a), alpha, beta, depth+1))
		if v >= beta {
			// Min will never let the game reach this state.
			s.stats.Prunes++
			return v
		}
		alpha = max(alpha, v)
	}
	return v
}

// minValue is the mirror image of maxValue.
func (s *search[S, A]) minValue(state S, alpha, beta float64, depth int) float64 {
	s.stats.Nodes++
	if s.cutoff(state, depth) {
		s.stats.Evals++
		return s.eval(state)
	}
	v := math.Inf(1)
	for _, a := range s.game.Actions(state) {
		v = min(v, s.maxValue(s.game.Result(state, a), alpha, beta, depth+1))
		if v <= alpha {
			s.stats.Prunes++
			return v
		}
		beta = min(beta, v)
	}
	return v
}
