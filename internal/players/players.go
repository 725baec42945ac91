// Package players implements the participants of a match: anything that, given a game and
// a state, chooses an action.
//
// It also provides a factory of players from configuration strings, see New.
package players

import (
	"context"
	"math/rand/v2"

	"github.com/janpfeifer/gamesearch/internal/games"
	"github.com/janpfeifer/gamesearch/internal/searchers"
	"github.com/janpfeifer/gamesearch/internal/searchers/alphabeta"
	"k8s.io/klog/v2"
)

// Player is anything that is able to play a game.
type Player[S any, A comparable] interface {
	// Play returns the action chosen in state. It is only called on non-terminal states.
	Play(ctx context.Context, game games.Game[S, A], state S) (A, error)
}

// Func adapts a plain strategy function to a Player.
type Func[S any, A comparable] func(game games.Game[S, A], state S) (A, error)

// Play implements Player.
func (f Func[S, A]) Play(_ context.Context, game games.Game[S, A], state S) (A, error) {
	return f(game, state)
}

// Random returns a player that chooses uniformly among the legal actions.
// If rng is nil, a randomly seeded one is created.
func Random[S any, A comparable](rng *rand.Rand) Player[S, A] {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return Func[S, A](func(game games.Game[S, A], state S) (action A, err error) {
		actions := game.Actions(state)
		if len(actions) == 0 {
			return action, games.ErrNoActions
		}
		return actions[rng.IntN(len(actions))], nil
	})
}

// SearcherPlayer plays the action chosen by a searchers.Searcher.
type SearcherPlayer[S any, A comparable] struct {
	Searcher searchers.Searcher[S, A]
}

// Searching returns a player driven by searcher.
func Searching[S any, A comparable](searcher searchers.Searcher[S, A]) *SearcherPlayer[S, A] {
	return &SearcherPlayer[S, A]{Searcher: searcher}
}

// AlphaBeta returns the standard search player: depth-limited alpha-beta with
// alphabeta.DefaultMaxDepth and the game's utility as evaluation.
func AlphaBeta[S any, A comparable]() *SearcherPlayer[S, A] {
	return Searching[S, A](alphabeta.New[S, A]())
}

// Play implements Player.
func (p *SearcherPlayer[S, A]) Play(ctx context.Context, game games.Game[S, A], state S) (action A, err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	var score float64
	action, score, _, err = p.Searcher.Search(game, state)
	if err != nil {
		return
	}
	if klog.V(1).Enabled() {
		klog.Infof("%s plays %v (score=%.3g)", game.ToMove(state), action, score)
	}
	return
}
