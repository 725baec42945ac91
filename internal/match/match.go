// Package match plays a game to the end between a sequence of players.
package match

import (
	"context"

	"github.com/janpfeifer/gamesearch/internal/games"
	"github.com/janpfeifer/gamesearch/internal/players"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Move describes one move of a match, as reported to an Observer.
type Move[S any, A comparable] struct {
	// Number of the move, starting from 1.
	Number int
	Player games.Player
	Action A

	// State before the move, and Next after it.
	State, Next S
}

// Observer is called after every move of a match.
type Observer[S any, A comparable] func(move Move[S, A])

// Play a match of game from its initial state. The players move in turns, cycling over the
// list given, until a terminal state is reached.
//
// An illegal action is logged and applied anyway: since Game.Result ignores it, the player
// simply loses its turn. A player that never plays a legal action is stopped by cancelling ctx.
//
// It returns the utility of the final state for the player to move in the initial state.
func Play[S any, A comparable](ctx context.Context, game games.Game[S, A], matchPlayers ...players.Player[S, A]) (float64, error) {
	return PlayObserved(ctx, game, nil, matchPlayers...)
}

// PlayObserved is like Play, but calls observe (if not nil) after every move.
func PlayObserved[S any, A comparable](ctx context.Context, game games.Game[S, A], observe Observer[S, A],
	matchPlayers ...players.Player[S, A]) (float64, error) {
	if len(matchPlayers) == 0 {
		return 0, errors.New("match.Play requires at least one player")
	}
	state := game.Initial()
	firstPlayer := game.ToMove(state)
	for moveIdx := 0; !game.IsTerminal(state); moveIdx++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		toMove := game.ToMove(state)
		action, err := matchPlayers[moveIdx%len(matchPlayers)].Play(ctx, game, state)
		if err != nil {
			return 0, errors.WithMessagef(err, "move #%d by %s", moveIdx+1, toMove)
		}
		if !games.IsLegal(game, state, action) {
			klog.Warningf("move #%d: %s played illegal action %v, state unchanged", moveIdx+1, toMove, action)
		}
		next := game.Result(state, action)
		if klog.V(2).Enabled() {
			klog.Infof("move #%d: %s plays %v", moveIdx+1, toMove, action)
		}
		if observe != nil {
			observe(Move[S, A]{Number: moveIdx + 1, Player: toMove, Action: action, State: state, Next: next})
		}
		state = next
	}
	utility := game.Utility(state, firstPlayer)
	if klog.V(1).Enabled() {
		klog.Infof("match finished: utility %g for %s", utility, firstPlayer)
	}
	return utility, nil
}
