package players

import (
	"context"
	"io"
	"math/rand/v2"
	"os"

	"github.com/janpfeifer/gamesearch/internal/games"
	"github.com/janpfeifer/gamesearch/internal/parameters"
	"github.com/janpfeifer/gamesearch/internal/searchers"
	"github.com/janpfeifer/gamesearch/internal/searchers/alphabeta"
	"github.com/janpfeifer/gamesearch/internal/searchers/minimax"
	"github.com/pkg/errors"
)

// DefaultConfig is used by New if no configuration is given.
var DefaultConfig = "alphabeta"

// Env holds what player configurations may need that can't be given as strings.
// Zero values are replaced by defaults.
type Env[S any, A comparable] struct {
	// In and Out are used by "query" players. Default to os.Stdin and os.Stdout.
	In  io.Reader
	Out io.Writer

	// Heuristic returns the evaluation function for the given player, used by
	// "alphabeta:heuristic" players.
	Heuristic func(player games.Player) alphabeta.Eval[S]
}

// New creates a player given the configuration string, using the default Env.
// See NewWithEnv.
func New[S any, A comparable](config string) (Player[S, A], error) {
	return NewWithEnv(config, Env[S, A]{})
}

// NewWithEnv creates a player given the configuration string.
//
// The config is the player type followed optionally by a colon (":") and a comma-separated list of
// parameters with optional values. If empty, DefaultConfig is used. Types and their parameters:
//
//   - random: uniform choice among the legal actions. Parameters: seed (int).
//   - query: reads actions from env.In, see Query.
//   - minimax: exhaustive minimax. Parameters: randomness (float), seed (int).
//   - alphabeta: alpha-beta pruning. Parameters:
//   - full (bool): search to the end of the game, ignoring max_depth.
//   - max_depth (int): depth of the cutoff, default is alphabeta.DefaultMaxDepth.
//   - heuristic (bool): evaluate states at the cutoff with env.Heuristic instead of the utility.
//   - randomness (float): samples the action from a softmax of the actions scores divided by
//     this value. Lower values (closer to 0) means less randomness, higher value means more
//     randomness, hence more exploration. Default is 0.
//   - seed (int): seed for random choices. If not set, a random seed is used.
//
// Unknown types or parameters are errors.
func NewWithEnv[S any, A comparable](config string, env Env[S, A]) (Player[S, A], error) {
	if config == "" {
		config = DefaultConfig
	}
	name, params := parameters.Split(config)
	player, err := newFromParams(name, params, env)
	if err == nil {
		err = params.CheckAllConsumed()
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create player %q", config)
	}
	return player, nil
}

func newFromParams[S any, A comparable](name string, params parameters.Params, env Env[S, A]) (Player[S, A], error) {
	rng, err := popRNG(params)
	if err != nil {
		return nil, err
	}
	switch name {
	case "random":
		return Random[S, A](rng), nil

	case "query":
		in, out := env.In, env.Out
		if in == nil {
			in = os.Stdin
		}
		if out == nil {
			out = os.Stdout
		}
		return Query[S, A](in, out), nil

	case "minimax":
		randomness, err := parameters.PopParamOr(params, "randomness", 0.0)
		if err != nil {
			return nil, err
		}
		return Searching(searchers.NewRandomized[S, A](minimax.New[S, A](), randomness, rng)), nil

	case "alphabeta", "ab":
		return newAlphaBeta(params, env, rng)
	}
	return nil, errors.Errorf("unknown player type %q", name)
}

// popRNG creates a rng from the "seed" parameter, or returns nil if it is not set.
func popRNG(params parameters.Params) (*rand.Rand, error) {
	if _, found := params["seed"]; !found {
		return nil, nil
	}
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return nil, err
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)+1)), nil
}

func newAlphaBeta[S any, A comparable](params parameters.Params, env Env[S, A], rng *rand.Rand) (Player[S, A], error) {
	full, err := parameters.PopParamOr(params, "full", false)
	if err != nil {
		return nil, err
	}
	maxDepth, err := parameters.PopParamOr(params, "max_depth", alphabeta.DefaultMaxDepth)
	if err != nil {
		return nil, err
	}
	useHeuristic, err := parameters.PopParamOr(params, "heuristic", false)
	if err != nil {
		return nil, err
	}
	randomness, err := parameters.PopParamOr(params, "randomness", 0.0)
	if err != nil {
		return nil, err
	}
	if useHeuristic && env.Heuristic == nil {
		return nil, errors.New("no heuristic available for this game")
	}
	if useHeuristic && full {
		return nil, errors.New("\"heuristic\" and \"full\" can't be used together")
	}

	ab := alphabeta.New[S, A]().WithMaxDepth(maxDepth).WithFullDepth(full)
	searcher := searchers.NewRandomized[S, A](ab, randomness, rng)
	if !useHeuristic {
		return Searching(searcher), nil
	}
	return &heuristicPlayer[S, A]{SearcherPlayer: Searching(searcher), ab: ab, heuristic: env.Heuristic}, nil
}

// heuristicPlayer sets the evaluation of its alpha-beta searcher for the side it is playing,
// known only at each move.
type heuristicPlayer[S any, A comparable] struct {
	*SearcherPlayer[S, A]
	ab        *alphabeta.Searcher[S, A]
	heuristic func(player games.Player) alphabeta.Eval[S]
}

// Play implements Player.
func (p *heuristicPlayer[S, A]) Play(ctx context.Context, game games.Game[S, A], state S) (A, error) {
	p.ab.WithEval(p.heuristic(game.ToMove(state)))
	return p.SearcherPlayer.Play(ctx, game, state)
}
