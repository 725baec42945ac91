// rivercrossing solves the river crossing puzzle of three couples with a breadth-first search,
// and prints the trips of the solution.
//
// Use -v=1 to see the depth milestones of the search.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/janpfeifer/gamesearch/internal/profilers"
	"github.com/janpfeifer/gamesearch/internal/rivercrossing"
	"github.com/janpfeifer/gamesearch/internal/ui/cli"
	"github.com/janpfeifer/gamesearch/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagCapacity = flag.Int("capacity", 2, "Capacity of the boat: 0 and 1 make the puzzle unsolvable.")
	flagGraph    = flag.Bool("graph", false, "Use a graph search, that never expands the same state twice. "+
		"Without it, the tree search expands more than a million nodes.")
	flagTimeout = flag.Duration("timeout", 0, "If > 0, give up the search after this time.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C
	ctx, cancel := context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()
	if *flagTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, *flagTimeout)
		defer cancel()
	}

	stopProfilers := profilers.Start(ctx)
	defer stopProfilers()

	puzzle := rivercrossing.Default()
	puzzle.Capacity = *flagCapacity
	search := rivercrossing.BreadthFirstTreeSearch
	name := "tree"
	if *flagGraph {
		search = rivercrossing.BreadthFirstGraphSearch
		name = "graph"
	}

	ui := cli.New(true)
	initial := rivercrossing.AllAtDestination()
	ui.Heading("Breadth-first %s search from %s, boat capacity %d", name, initial, puzzle.Capacity)
	s := spinning.New(ctx)
	solution, stats, err := search(ctx, puzzle, initial)
	s.Done()
	fmt.Printf("%d expansions, %d nodes generated, max depth %d, in %s\n",
		stats.Expansions, stats.Generated, stats.MaxDepth, stats.Elapsed)
	if errors.Is(err, rivercrossing.ErrNoSolution) {
		fmt.Println("no solution")
		return
	}
	if err != nil && ctx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", err)
		return
	}
	must.M(err)
	must.M(solution.Validate(puzzle, initial))
	must.M(solution.Print(os.Stdout))
}
