// tournament plays rounds of matches between two player configurations on a k-in-a-row game,
// and reports how often each side wins.
//
// Example:
//
//	$ tournament -width=4 -height=4 -k=3 -rounds=5 -games=10 -first=alphabeta:full -second=random
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/janpfeifer/gamesearch/internal/games"
	"github.com/janpfeifer/gamesearch/internal/games/kinarow"
	"github.com/janpfeifer/gamesearch/internal/players"
	"github.com/janpfeifer/gamesearch/internal/profilers"
	"github.com/janpfeifer/gamesearch/internal/searchers/alphabeta"
	"github.com/janpfeifer/gamesearch/internal/tournament"
	"github.com/janpfeifer/gamesearch/internal/ui/cli"
	"github.com/janpfeifer/gamesearch/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagWidth       = flag.Int("width", 3, "Board width.")
	flagHeight      = flag.Int("height", 3, "Board height.")
	flagK           = flag.Int("k", 3, "Number in a row to win.")
	flagDropFromTop = flag.Bool("connectfour", false, "Play the drop-from-top variant (ConnectFour).")
	flagRounds      = flag.Int("rounds", 5, "Number of rounds.")
	flagGames       = flag.Int("games", 10, "Number of matches per round.")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many matches simultaneously.")
	flagFirst  = flag.String("first", "alphabeta", "Configuration of the player that moves first, see players.NewWithEnv.")
	flagSecond = flag.String("second", "random", "Configuration of the player that moves second.")
)

// newKInARow creates the game configured by the flags.
func newKInARow() *kinarow.Game {
	if *flagDropFromTop {
		return kinarow.NewConnectFour(*flagWidth, *flagHeight, *flagK)
	}
	return kinarow.New(*flagWidth, *flagHeight, *flagK)
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C
	ctx, cancel := context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 5*time.Second)
	defer cancel()

	stopProfilers := profilers.Start(ctx)
	defer stopProfilers()

	game := newKInARow()
	ui := cli.New(true)
	ui.Heading("%s: %s vs %s, %d rounds of %d matches", game, *flagFirst, *flagSecond, *flagRounds, *flagGames)
	total := *flagRounds * *flagGames

	config := tournament.Config[*kinarow.State, kinarow.Pos]{
		Rounds:        *flagRounds,
		GamesPerRound: *flagGames,
		Parallelism:   *flagParallelism,
		NewGame:       func() games.Game[*kinarow.State, kinarow.Pos] { return newKInARow() },
		First:         *flagFirst,
		Second:        *flagSecond,
		Env: players.Env[*kinarow.State, kinarow.Pos]{
			Heuristic: func(player games.Player) alphabeta.Eval[*kinarow.State] {
				return kinarow.Heuristic(game, player)
			},
		},
		OnMatch: func(results *tournament.Results) {
			fmt.Printf("\rPlayed %d of %d - %s\033[0K", results.Played, total, results.Elapsed.Round(time.Millisecond))
		},
	}
	results, err := tournament.Run(ctx, config)
	fmt.Println()
	if err != nil && ctx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", ctx.Err())
		err = nil
	}
	must.M(err)
	fmt.Println()
	fmt.Println(results)
}
