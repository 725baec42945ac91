// play runs one match of a game, between humans ("query" players) or AI players.
//
// Examples:
//
//	$ play -game=tictactoe -first=query -second=alphabeta:full
//	$ play -game=connectfour -first=alphabeta:heuristic,max_depth=5 -second=alphabeta:heuristic -v=1
//	$ play -game=fig52 -first=minimax -second=alphabeta
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/janpfeifer/gamesearch/internal/games"
	"github.com/janpfeifer/gamesearch/internal/games/figtree"
	"github.com/janpfeifer/gamesearch/internal/games/kinarow"
	"github.com/janpfeifer/gamesearch/internal/match"
	"github.com/janpfeifer/gamesearch/internal/players"
	"github.com/janpfeifer/gamesearch/internal/profilers"
	"github.com/janpfeifer/gamesearch/internal/searchers/alphabeta"
	"github.com/janpfeifer/gamesearch/internal/ui/cli"
	"github.com/janpfeifer/gamesearch/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagGame   = flag.String("game", "tictactoe", "Game to play: tictactoe, connectfour, kinarow or fig52.")
	flagWidth  = flag.Int("width", 0, "Board width for k-in-a-row games. Defaults to 3 for tictactoe and 7 for connectfour.")
	flagHeight = flag.Int("height", 0, "Board height for k-in-a-row games. Defaults to 3 for tictactoe and 6 for connectfour.")
	flagK      = flag.Int("k", 0, "Number in a row to win. Defaults to 3 for tictactoe and 4 for connectfour.")
	flagFirst  = flag.String("first", "query", "Configuration of the player that moves first, see players.NewWithEnv.")
	flagSecond = flag.String("second", "", "Configuration of the player that moves second. "+
		"Defaults to \"alphabeta:heuristic\" for k-in-a-row games, and \"alphabeta\" otherwise.")
	flagQuiet = flag.Bool("quiet", false, "Only print the final state and the result.")
	flagColor = flag.Bool("color", true, "Use colors, if the output is a terminal.")

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	stopProfilers := profilers.Start(globalCtx)
	defer stopProfilers()

	ui := cli.New(*flagColor)
	switch strings.ToLower(*flagGame) {
	case "fig52":
		if *flagSecond == "" {
			*flagSecond = "alphabeta"
		}
		must.M(run[string, string](globalCtx, ui, figtree.Fig52(), players.Env[string, string]{}))
	case "tictactoe", "kinarow", "connectfour":
		g := newKInARow(strings.ToLower(*flagGame))
		if *flagSecond == "" {
			*flagSecond = "alphabeta:heuristic"
		}
		env := players.Env[*kinarow.State, kinarow.Pos]{
			Heuristic: func(player games.Player) alphabeta.Eval[*kinarow.State] { return kinarow.Heuristic(g, player) },
		}
		must.M(run[*kinarow.State, kinarow.Pos](globalCtx, ui, g, env))
	default:
		klog.Exitf("Unknown -game=%q, valid values are tictactoe, connectfour, kinarow or fig52", *flagGame)
	}
}

// newKInARow creates the k-in-a-row game from the flags.
func newKInARow(name string) *kinarow.Game {
	h, v, k := 3, 3, 3
	if name == "connectfour" {
		h, v, k = 7, 6, 4
	}
	if *flagWidth > 0 {
		h = *flagWidth
	}
	if *flagHeight > 0 {
		v = *flagHeight
	}
	if *flagK > 0 {
		k = *flagK
	}
	if name == "connectfour" {
		return kinarow.NewConnectFour(h, v, k)
	}
	return kinarow.New(h, v, k)
}

// thinking wraps an AI player, showing the spinning clock while it searches.
type thinking[S any, A comparable] struct {
	players.Player[S, A]
	ui   *cli.UI
	name string
}

// Play implements players.Player.
func (p *thinking[S, A]) Play(ctx context.Context, game games.Game[S, A], state S) (A, error) {
	if !*flagQuiet {
		must.M(cli.PrintState(p.ui, game, state))
		fmt.Printf("\t%s (%s) is thinking ", game.ToMove(state), p.name)
	}
	s := spinning.New(ctx)
	action, err := p.Player.Play(ctx, game, state)
	s.Done()
	if !*flagQuiet && err == nil {
		fmt.Printf("%v\n", action)
	}
	return action, err
}

func run[S any, A comparable](ctx context.Context, ui *cli.UI, game games.Game[S, A], env players.Env[S, A]) error {
	configs := []string{*flagFirst, *flagSecond}
	matchPlayers := make([]players.Player[S, A], len(configs))
	for ii, config := range configs {
		klog.V(1).Infof("Creating player #%d from %q", ii+1, config)
		p, err := players.NewWithEnv(config, env)
		if err != nil {
			return err
		}
		if !strings.HasPrefix(config, "query") {
			p = &thinking[S, A]{Player: p, ui: ui, name: config}
		}
		matchPlayers[ii] = p
	}

	initial := game.Initial()
	first := game.ToMove(initial)
	second := game.ToMove(game.Result(initial, game.Actions(initial)[0]))
	ui.Heading("%s: %s (%s) vs %s (%s)", *flagGame, first, *flagFirst, second, *flagSecond)

	var last S
	utility, err := match.PlayObserved[S, A](ctx, game, func(move match.Move[S, A]) {
		last = move.Next
	}, matchPlayers...)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Printf("\nInterrupted: %v\n", ctx.Err())
			return nil
		}
		return err
	}
	if err := cli.PrintState(ui, game, last); err != nil {
		return err
	}
	ui.PrintResult(utility, first.String(), second.String())
	return nil
}
