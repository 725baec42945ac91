package match

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/janpfeifer/gamesearch/internal/games"
	"github.com/janpfeifer/gamesearch/internal/games/figtree"
	"github.com/janpfeifer/gamesearch/internal/games/kinarow"
	"github.com/janpfeifer/gamesearch/internal/players"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFig52(t *testing.T) {
	g := figtree.Fig52()
	ab := players.AlphaBeta[string, string]()
	var moves []Move[string, string]
	utility, err := PlayObserved[string, string](context.Background(), g,
		func(m Move[string, string]) { moves = append(moves, m) }, ab, ab)
	require.NoError(t, err)
	assert.Equal(t, 3.0, utility)
	require.Len(t, moves, 2)
	assert.Equal(t, Move[string, string]{Number: 1, Player: figtree.Max, Action: "a1", State: "A", Next: "B"}, moves[0])
	assert.Equal(t, Move[string, string]{Number: 2, Player: figtree.Min, Action: "b1", State: "B", Next: "B1"}, moves[1])

	// A single player plays both sides.
	utility, err = Play[string, string](context.Background(), g, ab)
	require.NoError(t, err)
	assert.Equal(t, 3.0, utility)
}

func TestTicTacToe(t *testing.T) {
	g := kinarow.NewTicTacToe()

	// Perfect play is a draw.
	full, err := players.New[*kinarow.State, kinarow.Pos]("alphabeta:full")
	require.NoError(t, err)
	utility, err := Play[*kinarow.State, kinarow.Pos](context.Background(), g, full, full)
	require.NoError(t, err)
	assert.Equal(t, 0.0, utility)

	// Perfect play never loses against random moves.
	rng := rand.New(rand.NewPCG(7, 7))
	for range 5 {
		utility, err = Play[*kinarow.State, kinarow.Pos](context.Background(), g, full, players.Random[*kinarow.State, kinarow.Pos](rng))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, utility, 0.0)
	}
}

func TestErrors(t *testing.T) {
	g := figtree.Fig52()

	_, err := Play[string, string](context.Background(), g)
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Play[string, string](ctx, g, players.AlphaBeta[string, string]())
	require.ErrorIs(t, err, context.Canceled)
}

func TestIllegalActions(t *testing.T) {
	g := figtree.Fig52()
	cheater := players.Func[string, string](func(games.Game[string, string], string) (string, error) {
		return "z9", nil
	})

	// Illegal actions leave the state unchanged, and the match goes on.
	var moves []Move[string, string]
	utility, err := PlayObserved[string, string](context.Background(), g,
		func(m Move[string, string]) { moves = append(moves, m) },
		cheater, players.AlphaBeta[string, string]())
	require.NoError(t, err)
	assert.Equal(t, 3.0, utility)
	require.Len(t, moves, 4)
	assert.Equal(t, Move[string, string]{Number: 1, Player: figtree.Max, Action: "z9", State: "A", Next: "A"}, moves[0])
	assert.Equal(t, Move[string, string]{Number: 2, Player: figtree.Max, Action: "a1", State: "A", Next: "B"}, moves[1])
	assert.Equal(t, Move[string, string]{Number: 3, Player: figtree.Min, Action: "z9", State: "B", Next: "B"}, moves[2])
	assert.Equal(t, Move[string, string]{Number: 4, Player: figtree.Min, Action: "b1", State: "B", Next: "B1"}, moves[3])

	// A player that never plays a legal action only stops with the context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var calls int
	stubborn := players.Func[string, string](func(games.Game[string, string], string) (string, error) {
		calls++
		if calls == 5 {
			cancel()
		}
		return "z9", nil
	})
	_, err = Play[string, string](ctx, g, stubborn)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, calls)
}
