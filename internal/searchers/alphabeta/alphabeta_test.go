package alphabeta_test

import (
	"math/rand/v2"
	"testing"

	"github.com/janpfeifer/gamesearch/internal/games"
	"github.com/janpfeifer/gamesearch/internal/games/figtree"
	"github.com/janpfeifer/gamesearch/internal/games/kinarow"
	"github.com/janpfeifer/gamesearch/internal/searchers/alphabeta"
	"github.com/janpfeifer/gamesearch/internal/searchers/minimax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
}

func TestFig52(t *testing.T) {
	g := figtree.Fig52()

	action, err := alphabeta.FullSearch[string, string](g, "A")
	require.NoError(t, err)
	assert.Equal(t, "a1", action)

	action, err = alphabeta.Search[string, string](g, "A", -1, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "a1", action)

	ab := alphabeta.New[string, string]()
	action, score, scores, err := ab.Search(g, "A")
	require.NoError(t, err)
	assert.Equal(t, "a1", action)
	assert.Equal(t, 3.0, score)
	assert.Equal(t, []float64{3, 2, 2}, scores)
}

func TestNoActions(t *testing.T) {
	g := figtree.Fig52()
	_, err := alphabeta.FullSearch[string, string](g, "B3")
	require.ErrorIs(t, err, games.ErrNoActions)
	_, err = alphabeta.Search[string, string](g, "B3", 4, nil, nil)
	require.ErrorIs(t, err, games.ErrNoActions)
}

func TestCutoffAndEval(t *testing.T) {
	g := figtree.Fig52()

	t.Run("depth starts at 0 for the root children", func(t *testing.T) {
		depths := make(map[string]int)
		cutoff := func(state string, depth int) bool {
			depths[state] = depth
			return g.IsTerminal(state)
		}
		_, err := alphabeta.Search[string, string](g, "A", 0, cutoff, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, depths["B"])
		assert.Equal(t, 0, depths["D"])
		assert.Equal(t, 1, depths["B1"])
	})

	t.Run("evaluation replaces the search below the cutoff", func(t *testing.T) {
		estimates := map[string]float64{"B": 1, "C": 5, "D": 3}
		ab := alphabeta.New[string, string]().
			WithCutoff(func(string, int) bool { return true }).
			WithEval(func(state string) float64 { return estimates[state] })
		action, score, _, err := ab.Search(g, "A")
		require.NoError(t, err)
		assert.Equal(t, "a2", action)
		assert.Equal(t, 5.0, score)
		assert.Equal(t, alphabeta.Stats{Nodes: 3, Evals: 3}, ab.Stats())
	})

	t.Run("default cutoff at max depth", func(t *testing.T) {
		ttt := kinarow.NewTicTacToe()
		ab := alphabeta.New[*kinarow.State, kinarow.Pos]().WithMaxDepth(0)
		action, score, _, err := ab.Search(ttt, ttt.Initial())
		require.NoError(t, err)
		// Every grandchild of the empty board is cut off and valued 0 by the utility.
		assert.Equal(t, kinarow.Pos{1, 1}, action)
		assert.Equal(t, 0.0, score)
		assert.Equal(t, alphabeta.Stats{Nodes: 81, Evals: 72}, ab.Stats())
	})

	t.Run("max depth means the same in Search and WithMaxDepth", func(t *testing.T) {
		ttt := kinarow.NewTicTacToe()
		var evals int
		countEvals := func(state *kinarow.State) float64 {
			evals++
			return ttt.Utility(state, kinarow.X)
		}
		_, err := alphabeta.Search[*kinarow.State, kinarow.Pos](ttt, ttt.Initial(), 0, nil, countEvals)
		require.NoError(t, err)
		assert.Equal(t, 72, evals)

		evals = 0
		_, err = alphabeta.Search[*kinarow.State, kinarow.Pos](ttt, ttt.Initial(), -1, nil, countEvals)
		require.NoError(t, err)
		ab := alphabeta.New[*kinarow.State, kinarow.Pos]().WithMaxDepth(-1)
		_, _, _, err = ab.Search(ttt, ttt.Initial())
		require.NoError(t, err)
		assert.Equal(t, ab.Stats().Evals, evals)
		assert.Greater(t, evals, 72)
	})
}

func TestHeuristicTakesTheWin(t *testing.T) {
	g := kinarow.New(4, 4, 3)
	s := g.Initial()
	for _, move := range []kinarow.Pos{{1, 1}, {3, 1}, {1, 2}, {3, 3}} {
		s = g.Result(s, move)
	}
	ab := alphabeta.New[*kinarow.State, kinarow.Pos]().
		WithMaxDepth(2).
		WithEval(kinarow.Heuristic(g, kinarow.X))
	action, score, _, err := ab.Search(g, s)
	require.NoError(t, err)
	assert.Equal(t, kinarow.Pos{1, 3}, action)
	assert.Equal(t, 1.0, score)
}

// randomOpening plays numMoves random moves, returning nil if the match ended before that.
func randomOpening(g *kinarow.Game, numMoves int, rng *rand.Rand) *kinarow.State {
	s := g.Initial()
	for range numMoves {
		if g.IsTerminal(s) {
			return nil
		}
		actions := g.Actions(s)
		s = g.Result(s, actions[rng.IntN(len(actions))])
	}
	if g.IsTerminal(s) {
		return nil
	}
	return s
}

// TestEquivalenceWithMinimax checks that pruning and a deep enough cutoff never change the
// values found by the exhaustive minimax, and that pruning never evaluates more leaves.
func TestEquivalenceWithMinimax(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	for _, tc := range []struct {
		game    *kinarow.Game
		opening int
	}{
		{kinarow.NewTicTacToe(), 2},
		{kinarow.New(4, 4, 3), 9},
		{kinarow.NewConnectFour(4, 4, 3), 6},
	} {
		for range 8 {
			s := randomOpening(tc.game, tc.opening, rng)
			if s == nil {
				continue
			}
			mm := minimax.New[*kinarow.State, kinarow.Pos]()
			mmAction, mmScore, mmScores, err := mm.Search(tc.game, s)
			require.NoError(t, err)

			full := alphabeta.New[*kinarow.State, kinarow.Pos]().WithFullDepth(true)
			fullAction, fullScore, fullScores, err := full.Search(tc.game, s)
			require.NoError(t, err)

			deep := alphabeta.New[*kinarow.State, kinarow.Pos]().WithMaxDepth(16)
			deepAction, deepScore, deepScores, err := deep.Search(tc.game, s)
			require.NoError(t, err)

			assert.Equalf(t, mmScore, fullScore, "%s: full alpha-beta value", tc.game)
			assert.Equalf(t, mmScore, deepScore, "%s: depth-limited alpha-beta value", tc.game)
			assert.Equal(t, mmScores, fullScores)
			assert.Equal(t, mmScores, deepScores)
			assert.Equal(t, mmAction, fullAction)
			assert.Equal(t, mmAction, deepAction)
			assert.LessOrEqualf(t, full.Stats().Evals, mm.Stats().Evals, "%s: pruning should not add evaluations", tc.game)
			assert.LessOrEqual(t, full.Stats().Nodes, mm.Stats().Nodes)
		}
	}
}
