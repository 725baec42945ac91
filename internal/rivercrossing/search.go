package rivercrossing

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/janpfeifer/gamesearch/internal/generics"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ErrNoSolution is returned when the search exhausts the states reachable from the initial one
// without finding the goal.
var ErrNoSolution = errors.New("no solution")

// checkContextEvery is the number of nodes popped between checks of the context cancellation.
const checkContextEvery = 4096

// Stats collected during a search.
type Stats struct {
	// Expansions is the number of nodes popped from the frontier and expanded.
	Expansions int

	// Generated is the number of nodes appended to the frontier.
	Generated int

	// MaxDepth reached by a popped node.
	MaxDepth int

	Elapsed time.Duration
}

// node in the search tree. Nodes are stored in an arena (a slice), and refer to their parent
// by its index: the root's parent is -1.
type node struct {
	state  State
	depth  uint8
	parent int32
}

// BreadthFirstTreeSearch searches the shortest sequence of trips from initial to the goal.
//
// It is a tree search: states are not deduplicated, so the same state is expanded again every
// time it is reached through a different path. It returns ErrNoSolution if the frontier is
// exhausted, which for a tree search only happens when the reachable states have no cycles,
// e.g. when no trip is possible. An unsolvable puzzle with cycles runs until ctx is cancelled
// or the search grows too large: use BreadthFirstGraphSearch for those.
func BreadthFirstTreeSearch(ctx context.Context, puzzle Puzzle, initial State) (Solution, Stats, error) {
	return breadthFirstSearch(ctx, puzzle, initial, false)
}

// BreadthFirstGraphSearch is like BreadthFirstTreeSearch, but it never adds to the frontier a state
// that was already generated. It finds a solution with the same number of trips, and it always
// terminates.
func BreadthFirstGraphSearch(ctx context.Context, puzzle Puzzle, initial State) (Solution, Stats, error) {
	return breadthFirstSearch(ctx, puzzle, initial, true)
}

func breadthFirstSearch(ctx context.Context, puzzle Puzzle, initial State, dedup bool) (solution Solution, stats Stats, err error) {
	if err = puzzle.Check(); err != nil {
		return
	}
	start := time.Now()
	defer func() {
		stats.Elapsed = time.Since(start)
		if klog.V(1).Enabled() {
			klog.Infof("%d expansions, %d nodes generated in %s", stats.Expansions, stats.Generated, stats.Elapsed)
		}
	}()

	// The arena is also the FIFO frontier: nodes are appended in the order they are generated,
	// and head is the index of the next node to pop.
	arena := []node{{state: initial, parent: -1}}
	var visited generics.Set[State]
	if dedup {
		visited = generics.SetWith(initial)
	}
	stats.MaxDepth = -1
	for head := 0; head < len(arena); head++ {
		if head%checkContextEvery == 0 {
			if err = ctx.Err(); err != nil {
				return
			}
		}
		current := arena[head]
		depth := int(current.depth)
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
			if klog.V(1).Enabled() {
				klog.Infof("[depth = %d] %s", depth, time.Since(start))
			}
		}
		if IsGoal(current.state) {
			solution = extractSolution(arena, head)
			return
		}
		if len(arena) >= math.MaxInt32 || depth == math.MaxUint8 {
			err = errors.Errorf("search too large: %d nodes generated, depth %d", len(arena), depth)
			return
		}
		stats.Expansions++
		for next := range puzzle.Successors(current.state) {
			if dedup {
				if visited.Has(next) {
					continue
				}
				visited.Insert(next)
			}
			arena = append(arena, node{state: next, depth: uint8(depth + 1), parent: int32(head)})
			stats.Generated++
		}
	}
	err = ErrNoSolution
	return
}

// extractSolution follows the parents from the node at idx back to the root.
func extractSolution(arena []node, idx int) Solution {
	var solution Solution
	for arena[idx].parent >= 0 {
		parent := int(arena[idx].parent)
		solution = append(solution, actionBetween(arena[parent].state, arena[idx].state))
		idx = parent
	}
	slices.Reverse(solution)
	return solution
}

// actionBetween reconstructs the action leading from a state to its successor next.
func actionBetween(state, next State) Action {
	direction := TowardDestination
	if state.Boat != Origin {
		direction = TowardOrigin
	}
	return Action{Sides: next.Sides, Direction: direction, Result: next}
}
