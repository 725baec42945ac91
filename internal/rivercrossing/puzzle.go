// Package rivercrossing solves the river crossing puzzle of three couples: everyone has to
// cross the river in a boat, and no one may be left with another couple's partner unless
// their own partner is also present.
//
// People are numbered 0 to 5, and the couples are (0, 1), (2, 3) and (4, 5). The even member
// of each couple is the one others must not be left alone with.
package rivercrossing

import (
	"fmt"
	"iter"
	"strings"

	"github.com/pkg/errors"
)

// NumPeople in the puzzle.
const NumPeople = 6

// Shores: a person or the boat is either at the Origin or at the Destination shore.
const (
	Origin      int8 = 0
	Destination int8 = 1
)

// State of the puzzle: the shore of each person and the shore of the boat.
// It is a comparable value and can be used as a map key.
type State struct {
	Sides [NumPeople]int8
	Boat  int8
}

// AllAtDestination is the state where everyone and the boat are at the destination shore:
// the initial state of the puzzle, solved when everyone is back at the origin.
func AllAtDestination() State {
	var s State
	for ii := range s.Sides {
		s.Sides[ii] = Destination
	}
	s.Boat = Destination
	return s
}

// String implements fmt.Stringer.
func (s State) String() string {
	parts := make([]string, NumPeople)
	for ii, side := range s.Sides {
		parts[ii] = fmt.Sprintf("%d", side)
	}
	return fmt.Sprintf("[%s] boat=%d", strings.Join(parts, " "), s.Boat)
}

// Direction the boat moves.
type Direction int8

const (
	TowardDestination Direction = 1
	TowardOrigin      Direction = -1
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case TowardDestination:
		return "toward destination"
	case TowardOrigin:
		return "toward origin"
	}
	return fmt.Sprintf("Direction(%d)", int8(d))
}

// Action is one boat trip: the people's sides after the trip, the direction of the boat
// and the resulting state.
type Action struct {
	Sides     [NumPeople]int8
	Direction Direction
	Result    State
}

// String implements fmt.Stringer.
func (a Action) String() string {
	return fmt.Sprintf("%v %s -> %s", a.Sides, a.Direction, a.Result)
}

// Puzzle configuration.
type Puzzle struct {
	// Capacity of the boat, in people: with 0 no one can cross, with 1 only single trips
	// are possible, and 2 or more allow trips of two people. Trips never carry more than two.
	Capacity int

	// Excluded pairs of people that never cross together. Order within the pair doesn't matter.
	Excluded [][2]int
}

// Default puzzle: a boat for two, and the pairs that are never tried together.
func Default() Puzzle {
	return Puzzle{
		Capacity: 2,
		Excluded: [][2]int{{0, 3}, {0, 5}, {1, 2}, {1, 4}, {2, 5}, {3, 4}},
	}
}

// Check returns an error if the puzzle configuration is invalid.
func (p Puzzle) Check() error {
	if p.Capacity < 0 {
		return errors.Errorf("invalid boat capacity %d", p.Capacity)
	}
	for _, pair := range p.Excluded {
		for _, person := range pair {
			if person < 0 || person >= NumPeople {
				return errors.Errorf("invalid excluded pair %v: people are numbered 0 to %d", pair, NumPeople-1)
			}
		}
		if pair[0] == pair[1] {
			return errors.Errorf("invalid excluded pair %v: a person can't be paired with themselves", pair)
		}
	}
	return nil
}

// excludedMatrix returns the excluded pairs indexed by [i][j] with i < j.
func (p Puzzle) excludedMatrix() (m [NumPeople][NumPeople]bool) {
	for _, pair := range p.Excluded {
		i, j := min(pair[0], pair[1]), max(pair[0], pair[1])
		m[i][j] = true
	}
	return
}

// Successors yields the valid states reachable with one boat trip from state, and the
// action that leads there.
//
// For each person i that can cross, it yields i crossing alone, followed by i crossing with
// each person j > i. Pairs are tried even if i can't cross alone.
func (p Puzzle) Successors(state State) iter.Seq2[State, Action] {
	excluded := p.excludedMatrix()
	delta, direction := int8(1), TowardDestination
	if state.Boat != Origin {
		delta, direction = -1, TowardOrigin
	}
	boat := state.Boat + delta
	return func(yield func(State, Action) bool) {
		if p.Capacity < 1 {
			return
		}
		for i := range NumPeople {
			single := state.Sides
			single[i] += delta
			if single[i] < Origin || single[i] > Destination {
				// Person i is not on the boat's shore.
				continue
			}
			next := State{Sides: single, Boat: boat}
			if IsValid(next) {
				if !yield(next, Action{Sides: single, Direction: direction, Result: next}) {
					return
				}
			}
			if p.Capacity < 2 {
				continue
			}
			for j := i + 1; j < NumPeople; j++ {
				pair := single
				pair[j] += delta
				if pair[j] < Origin || pair[j] > Destination || excluded[i][j] {
					continue
				}
				next := State{Sides: pair, Boat: boat}
				if IsValid(next) {
					if !yield(next, Action{Sides: pair, Direction: direction, Result: next}) {
						return
					}
				}
			}
		}
	}
}

// IsValid returns whether no one is on a shore with another couple's even member while
// apart from their own partner.
func IsValid(state State) bool {
	s := &state.Sides
	if s[1] != s[0] && (s[1] == s[2] || s[1] == s[4]) {
		return false
	}
	if s[3] != s[2] && (s[3] == s[0] || s[3] == s[4]) {
		return false
	}
	if s[5] != s[4] && (s[5] == s[2] || s[5] == s[0]) {
		return false
	}
	return true
}

// IsGoal returns whether everyone and the boat are at the origin shore.
func IsGoal(state State) bool {
	return state == State{}
}
