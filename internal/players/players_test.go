package players

import (
	"bytes"
	"context"
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/janpfeifer/gamesearch/internal/games"
	"github.com/janpfeifer/gamesearch/internal/games/figtree"
	"github.com/janpfeifer/gamesearch/internal/games/kinarow"
	"github.com/janpfeifer/gamesearch/internal/searchers/alphabeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom(t *testing.T) {
	g := figtree.Fig52()
	p := Random[string, string](rand.New(rand.NewPCG(1, 1)))
	seen := make(map[string]bool)
	for range 100 {
		action, err := p.Play(context.Background(), g, "A")
		require.NoError(t, err)
		require.True(t, games.IsLegal[string, string](g, "A", action))
		seen[action] = true
	}
	assert.Len(t, seen, 3)

	_, err := p.Play(context.Background(), g, "B1")
	require.ErrorIs(t, err, games.ErrNoActions)
}

func TestSearching(t *testing.T) {
	g := figtree.Fig52()
	p := AlphaBeta[string, string]()
	action, err := p.Play(context.Background(), g, "A")
	require.NoError(t, err)
	assert.Equal(t, "a1", action)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Play(ctx, g, "A")
	require.ErrorIs(t, err, context.Canceled)
}

func TestQuery(t *testing.T) {
	ttt := kinarow.NewTicTacToe()

	t.Run("retries invalid inputs", func(t *testing.T) {
		var out bytes.Buffer
		q := Query[*kinarow.State, kinarow.Pos](strings.NewReader("hello\n9,9\n2 3\n"), &out)
		action, err := q.Play(context.Background(), ttt, ttt.Initial())
		require.NoError(t, err)
		assert.Equal(t, kinarow.Pos{2, 3}, action)
		assert.Equal(t, 3, strings.Count(out.String(), Prompt))
	})

	t.Run("illegal moves are rejected", func(t *testing.T) {
		var out bytes.Buffer
		s := ttt.Result(ttt.Initial(), kinarow.Pos{1, 1})
		q := Query[*kinarow.State, kinarow.Pos](strings.NewReader("1,1\n1,2"), &out)
		action, err := q.Play(context.Background(), ttt, s)
		require.NoError(t, err, "last line without a newline should still be accepted")
		assert.Equal(t, kinarow.Pos{1, 2}, action)
		assert.Contains(t, out.String(), "not a legal action")
	})

	t.Run("gives up after too many invalid inputs", func(t *testing.T) {
		q := Query[*kinarow.State, kinarow.Pos](strings.NewReader("a\nb\nc\n2,2\n"), io.Discard)
		_, err := q.Play(context.Background(), ttt, ttt.Initial())
		require.ErrorIs(t, err, ErrTooManyInvalidInputs)
	})

	t.Run("end of input", func(t *testing.T) {
		q := Query[*kinarow.State, kinarow.Pos](strings.NewReader(""), io.Discard)
		_, err := q.Play(context.Background(), ttt, ttt.Initial())
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("fixed tree", func(t *testing.T) {
		g := figtree.Fig52()
		q := Query[string, string](strings.NewReader("  a3 \n"), io.Discard)
		action, err := q.Play(context.Background(), g, "A")
		require.NoError(t, err)
		assert.Equal(t, "a3", action)
	})
}

func TestNew(t *testing.T) {
	g := figtree.Fig52()
	for _, config := range []string{"", "minimax", "alphabeta:full", "alphabeta:max_depth=2,randomness=0.001,seed=7", "ab"} {
		p, err := New[string, string](config)
		require.NoErrorf(t, err, "config %q", config)
		action, err := p.Play(context.Background(), g, "A")
		require.NoError(t, err)
		assert.Equalf(t, "a1", action, "config %q", config)
	}

	p, err := New[string, string]("random:seed=3")
	require.NoError(t, err)
	action, err := p.Play(context.Background(), g, "A")
	require.NoError(t, err)
	assert.Contains(t, g.Actions("A"), action)

	p, err = NewWithEnv("query", Env[string, string]{In: strings.NewReader("a2\n"), Out: io.Discard})
	require.NoError(t, err)
	action, err = p.Play(context.Background(), g, "A")
	require.NoError(t, err)
	assert.Equal(t, "a2", action)

	for _, config := range []string{"mcts", "alphabeta:depth=3", "alphabeta:max_depth=x", "random:seed=1.5", "alphabeta:heuristic"} {
		_, err := New[string, string](config)
		assert.Errorf(t, err, "config %q", config)
	}
}

func TestHeuristicPlayer(t *testing.T) {
	g := kinarow.New(4, 4, 3)
	env := Env[*kinarow.State, kinarow.Pos]{
		Heuristic: func(player games.Player) alphabeta.Eval[*kinarow.State] { return kinarow.Heuristic(g, player) },
	}
	_, err := NewWithEnv("alphabeta:heuristic,full", env)
	require.Error(t, err)

	// With max_depth=0 only an immediate win is valued as certain.
	p, err := NewWithEnv("alphabeta:heuristic,max_depth=0", env)
	require.NoError(t, err)

	// O to move, and can win at (3,2) in the column x=3.
	s := g.Initial()
	for _, move := range []kinarow.Pos{{1, 1}, {3, 1}, {1, 4}, {3, 3}, {4, 4}} {
		s = g.Result(s, move)
	}
	require.Equal(t, kinarow.O, g.ToMove(s))
	action, err := p.Play(context.Background(), g, s)
	require.NoError(t, err)
	assert.Equal(t, kinarow.Pos{3, 2}, action)
}
