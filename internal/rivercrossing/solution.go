package rivercrossing

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Solution is the sequence of trips from the initial state to the goal.
type Solution []Action

// Replay applies the sides of each action of the solution, starting from initial, and
// returns the final state.
func (sol Solution) Replay(initial State) State {
	state := initial
	for _, action := range sol {
		state.Sides = action.Sides
		state.Boat += int8(action.Direction)
	}
	return state
}

// Validate checks that each action of the solution is a trip of the puzzle from the previous
// state, starting at initial, and that it ends at the goal.
func (sol Solution) Validate(puzzle Puzzle, initial State) error {
	state := initial
	for ii, action := range sol {
		found := false
		for next, successorAction := range puzzle.Successors(state) {
			if successorAction == action {
				found = true
				state = next
				break
			}
		}
		if !found {
			return errors.Errorf("trip #%d (%s) is not possible from %s", ii+1, action, state)
		}
		if !IsValid(state) {
			return errors.Errorf("trip #%d leads to invalid state %s", ii+1, state)
		}
	}
	if !IsGoal(state) {
		return errors.Errorf("solution ends at %s, which is not the goal", state)
	}
	return nil
}

// Print the solution, one trip per line.
func (sol Solution) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "solution (%d steps):\n", len(sol)); err != nil {
		return err
	}
	for ii, action := range sol {
		if _, err := fmt.Fprintf(w, "%3d. %s\n", ii+1, action); err != nil {
			return err
		}
	}
	return nil
}
