package kinarow

import (
	"github.com/chewxy/math32"
	"github.com/janpfeifer/gamesearch/internal/games"
)

// HeuristicScale keeps heuristic values strictly inside (-1, 1): a decided match
// (utility ±1) always scores better or worse than any undecided position.
const HeuristicScale = float32(0.9)

// Heuristic returns a positional evaluation function from the point of view of player,
// to be used as the evaluation of a depth-limited search.
//
// Terminal states return their exact utility. Otherwise, each segment of k squares
// that holds marks of only one player counts as the square of the number of those
// marks, positive for player and negative for the opponent. The sum is normalized by
// k² and squashed with tanh.
func Heuristic(game *Game, player games.Player) func(state *State) float64 {
	return func(state *State) float64 {
		if game.IsTerminal(state) {
			return game.Utility(state, player)
		}
		var raw float32
		for _, window := range game.windows {
			var mine, theirs int
			for _, pos := range window {
				owner, found := state.board[pos]
				if !found {
					continue
				}
				if owner == player {
					mine++
				} else {
					theirs++
				}
			}
			switch {
			case mine > 0 && theirs == 0:
				raw += float32(mine * mine)
			case theirs > 0 && mine == 0:
				raw -= float32(theirs * theirs)
			}
		}
		raw /= float32(game.k * game.k)
		return float64(math32.Tanh(raw) * HeuristicScale)
	}
}
