package minimax_test

import (
	"testing"

	"github.com/janpfeifer/gamesearch/internal/games"
	"github.com/janpfeifer/gamesearch/internal/games/figtree"
	"github.com/janpfeifer/gamesearch/internal/games/kinarow"
	"github.com/janpfeifer/gamesearch/internal/searchers/minimax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFig52(t *testing.T) {
	g := figtree.Fig52()
	action, err := minimax.Decision[string, string](g, "A")
	require.NoError(t, err)
	assert.Equal(t, "a1", action)

	m := minimax.New[string, string]()
	action, score, scores, err := m.Search(g, "A")
	require.NoError(t, err)
	assert.Equal(t, "a1", action)
	assert.Equal(t, 3.0, score)
	assert.Equal(t, []float64{3, 2, 2}, scores)
	assert.Equal(t, minimax.Stats{Nodes: 12, Evals: 9}, m.Stats())

	// MIN to move at B picks the leaf with the lowest utility for MAX.
	action, err = minimax.Decision[string, string](g, "B")
	require.NoError(t, err)
	assert.Equal(t, "b1", action)
	action, err = minimax.Decision[string, string](g, "D")
	require.NoError(t, err)
	assert.Equal(t, "d3", action)
}

func TestNoActions(t *testing.T) {
	_, err := minimax.Decision[string, string](figtree.Fig52(), "C2")
	require.ErrorIs(t, err, games.ErrNoActions)
}

func TestTicTacToe(t *testing.T) {
	g := kinarow.NewTicTacToe()

	t.Run("take the win", func(t *testing.T) {
		// X: (1,1), (1,2); O: (2,1), (2,2). X to move wins at (1,3).
		s := g.Initial()
		for _, move := range []kinarow.Pos{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
			s = g.Result(s, move)
		}
		action, err := minimax.Decision[*kinarow.State, kinarow.Pos](g, s)
		require.NoError(t, err)
		assert.Equal(t, kinarow.Pos{1, 3}, action)
	})

	t.Run("block the loss", func(t *testing.T) {
		// X: (1,1), (3,3); O: (2,1), (2,2). X must block O at (2,3).
		s := g.Initial()
		for _, move := range []kinarow.Pos{{1, 1}, {2, 1}, {3, 3}, {2, 2}} {
			s = g.Result(s, move)
		}
		m := minimax.New[*kinarow.State, kinarow.Pos]()
		action, score, _, err := m.Search(g, s)
		require.NoError(t, err)
		assert.Equal(t, kinarow.Pos{2, 3}, action)
		assert.GreaterOrEqual(t, score, 0.0)
	})
}
