// Package tournament plays rounds of matches between two player configurations, and
// collects how often each side wins.
package tournament

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/janpfeifer/gamesearch/internal/games"
	"github.com/janpfeifer/gamesearch/internal/generics"
	"github.com/janpfeifer/gamesearch/internal/match"
	"github.com/janpfeifer/gamesearch/internal/players"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Config of a tournament.
type Config[S any, A comparable] struct {
	// Rounds and GamesPerRound: the tournament plays Rounds*GamesPerRound matches.
	Rounds, GamesPerRound int

	// Parallelism is the number of matches played simultaneously. If <= 0 it uses GOMAXPROCS.
	Parallelism int

	// NewGame creates the game for each match.
	NewGame func() games.Game[S, A]

	// First and Second are the configurations of the players, see players.NewWithEnv.
	// First always moves first. Players are created anew for every match.
	First, Second string

	// Env used to create the players.
	Env players.Env[S, A]

	// OnMatch, if set, is called after each match finishes, with the partial results.
	// Calls are serialized.
	OnMatch func(results *Results)
}

// RoundResults holds the counts of one round.
type RoundResults struct {
	FirstWins, SecondWins, Draws int
}

// Results of a tournament.
type Results struct {
	Rounds        []RoundResults
	GamesPerRound int

	// Played is the number of matches finished so far.
	Played int

	// MatchLengths holds the number of moves of each match played, in the order they finished.
	MatchLengths []int

	// Elapsed time since the start of the tournament.
	Elapsed time.Duration
}

// Totals returns the counts over all rounds.
func (r *Results) Totals() (total RoundResults) {
	for _, round := range r.Rounds {
		total.FirstWins += round.FirstWins
		total.SecondWins += round.SecondWins
		total.Draws += round.Draws
	}
	return
}

// Percentages of first player wins, second player wins and draws over all matches played.
func (r *Results) Percentages() (first, second, draws float64) {
	if r.Played == 0 {
		return
	}
	total := r.Totals()
	scale := 100 / float64(r.Played)
	return float64(total.FirstWins) * scale, float64(total.SecondWins) * scale, float64(total.Draws) * scale
}

// MedianPercentages returns the median over the rounds of the counts of first player wins,
// second player wins and draws, as a percentage of the games per round.
func (r *Results) MedianPercentages() (first, second, draws float64) {
	if len(r.Rounds) == 0 || r.GamesPerRound == 0 {
		return
	}
	scale := 100 / float64(r.GamesPerRound)
	median := func(count func(RoundResults) int) float64 {
		return generics.Median(generics.SliceMap(r.Rounds, count)) * scale
	}
	first = median(func(round RoundResults) int { return round.FirstWins })
	second = median(func(round RoundResults) int { return round.SecondWins })
	draws = median(func(round RoundResults) int { return round.Draws })
	return
}

// MatchLength returns the mean and the median number of moves per match.
func (r *Results) MatchLength() (mean, median float64) {
	return generics.Mean(r.MatchLengths), generics.Median(r.MatchLengths)
}

// String implements fmt.Stringer, with the same report as printed by the tournament binary.
func (r *Results) String() string {
	var sb strings.Builder
	first, second, draws := r.Percentages()
	_, _ = fmt.Fprintf(&sb, "Mean over %d matches:\n", r.Played)
	_, _ = fmt.Fprintf(&sb, "  1st player wins: %.3f%%\n", first)
	_, _ = fmt.Fprintf(&sb, "  2nd player wins: %.3f%%\n", second)
	_, _ = fmt.Fprintf(&sb, "  draws:           %.3f%%\n", draws)
	first, second, draws = r.MedianPercentages()
	_, _ = fmt.Fprintf(&sb, "Median over %d rounds of %d matches:\n", len(r.Rounds), r.GamesPerRound)
	_, _ = fmt.Fprintf(&sb, "  1st player wins: %.3f%%\n", first)
	_, _ = fmt.Fprintf(&sb, "  2nd player wins: %.3f%%\n", second)
	_, _ = fmt.Fprintf(&sb, "  draws:           %.3f%%\n", draws)
	mean, median := r.MatchLength()
	_, _ = fmt.Fprintf(&sb, "Moves per match: mean %.1f, median %.1f\n", mean, median)
	_, _ = fmt.Fprintf(&sb, "Elapsed: %s", r.Elapsed)
	return sb.String()
}

// Run the tournament. If ctx is cancelled, it returns the context error and the results
// of the matches finished so far.
func Run[S any, A comparable](ctx context.Context, config Config[S, A]) (*Results, error) {
	if config.Rounds <= 0 || config.GamesPerRound <= 0 {
		return nil, errors.Errorf("invalid tournament of %d rounds x %d games", config.Rounds, config.GamesPerRound)
	}
	if config.NewGame == nil {
		return nil, errors.New("tournament.Config.NewGame not set")
	}
	// Check configurations before starting.
	for _, playerConfig := range []string{config.First, config.Second} {
		if _, err := players.NewWithEnv(playerConfig, config.Env); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	results := &Results{
		Rounds:        make([]RoundResults, config.Rounds),
		GamesPerRound: config.GamesPerRound,
	}
	var mu sync.Mutex
	parallelism := config.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for round := range config.Rounds {
		for matchIdx := range config.GamesPerRound {
			if gCtx.Err() != nil {
				break
			}
			g.Go(func() error {
				utility, numMoves, err := runMatch(gCtx, config)
				if err != nil {
					return errors.WithMessagef(err, "round %d, match %d", round, matchIdx)
				}
				mu.Lock()
				defer mu.Unlock()
				switch {
				case utility > 0:
					results.Rounds[round].FirstWins++
				case utility < 0:
					results.Rounds[round].SecondWins++
				default:
					results.Rounds[round].Draws++
				}
				results.Played++
				results.MatchLengths = append(results.MatchLengths, numMoves)
				results.Elapsed = time.Since(start)
				if config.OnMatch != nil {
					config.OnMatch(results)
				}
				return nil
			})
		}
	}
	err := g.Wait()
	results.Elapsed = time.Since(start)
	if err == nil {
		err = ctx.Err()
	}
	if klog.V(1).Enabled() {
		klog.Infof("tournament finished: %d matches played in %s", results.Played, results.Elapsed)
	}
	return results, err
}

// runMatch creates the players and plays one match. It returns the utility for the first
// player and the number of moves played.
func runMatch[S any, A comparable](ctx context.Context, config Config[S, A]) (utility float64, numMoves int, err error) {
	first, err := players.NewWithEnv(config.First, config.Env)
	if err != nil {
		return
	}
	second, err := players.NewWithEnv(config.Second, config.Env)
	if err != nil {
		return
	}
	countMoves := func(match.Move[S, A]) { numMoves++ }
	utility, err = match.PlayObserved[S, A](ctx, config.NewGame(), countMoves, first, second)
	return
}
