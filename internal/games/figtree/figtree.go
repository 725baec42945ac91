// Package figtree implements a game over a fixed, explicitly listed game tree.
//
// It serves as a simple test case for the searchers: Fig52 returns the classic
// three-by-three tree where MAX moves at the root and MIN at the second level.
package figtree

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/gamesearch/internal/games"
	"github.com/pkg/errors"
)

const (
	// Max is the player that moves at the nodes not listed in Config.MinNodes.
	Max games.Player = "MAX"

	// Min is the player that moves at the nodes listed in Config.MinNodes.
	Min games.Player = "MIN"
)

// Config describes the tree. It is copied by New, so later changes to the maps given
// have no effect on the Game.
type Config struct {
	// Initial node, the root of the tree.
	Initial string

	// Successors maps an inner node to its actions and the node each action leads to.
	// Nodes without an entry are terminal (leaves).
	Successors map[string]map[string]string

	// Utilities of the leaves, from Max's point of view.
	Utilities map[string]float64

	// MinNodes lists the nodes where Min is to move.
	MinNodes []string
}

// Game implements games.Game[string, string] for a fixed tree.
type Game struct {
	initial    string
	successors map[string]map[string]string
	actions    map[string][]string
	utilities  map[string]float64
	minNodes   map[string]bool
}

// Assert Game is a games.Game and a games.ActionParser.
var (
	_ games.Game[string, string] = (*Game)(nil)
	_ games.ActionParser[string] = (*Game)(nil)
)

// New creates a Game from the given tree configuration.
//
// It panics if a leaf reachable from the root has no utility: that is a malformed tree.
func New(config Config) *Game {
	g := &Game{
		initial:    config.Initial,
		successors: make(map[string]map[string]string, len(config.Successors)),
		actions:    make(map[string][]string, len(config.Successors)),
		utilities:  maps.Clone(config.Utilities),
		minNodes:   make(map[string]bool, len(config.MinNodes)),
	}
	for node, succ := range config.Successors {
		g.successors[node] = maps.Clone(succ)
		// Actions are enumerated in lexicographic order, so ties are broken deterministically.
		g.actions[node] = slices.Sorted(maps.Keys(succ))
	}
	for _, node := range config.MinNodes {
		g.minNodes[node] = true
	}
	if g.utilities == nil {
		g.utilities = make(map[string]float64)
	}
	g.checkLeaves(g.initial)
	return g
}

// checkLeaves walks the tree from node and panics on leaves without utility.
func (g *Game) checkLeaves(node string) {
	succ, ok := g.successors[node]
	if !ok {
		if _, found := g.utilities[node]; !found {
			exceptions.Panicf("figtree: leaf %q has no utility", node)
		}
		return
	}
	for _, child := range succ {
		g.checkLeaves(child)
	}
}

// Fig52 returns the tree of Figure 5.2 of "Artificial Intelligence: A Modern Approach":
// the root A branches to B, C and D, each with three leaves.
func Fig52() *Game {
	return New(Config{
		Initial: "A",
		Successors: map[string]map[string]string{
			"A": {"a1": "B", "a2": "C", "a3": "D"},
			"B": {"b1": "B1", "b2": "B2", "b3": "B3"},
			"C": {"c1": "C1", "c2": "C2", "c3": "C3"},
			"D": {"d1": "D1", "d2": "D2", "d3": "D3"},
		},
		Utilities: map[string]float64{
			"B1": 3, "B2": 12, "B3": 8,
			"C1": 2, "C2": 4, "C3": 6,
			"D1": 14, "D2": 5, "D3": 2,
		},
		MinNodes: []string{"B", "C", "D"},
	})
}

// Initial implements games.Game.
func (g *Game) Initial() string {
	return g.initial
}

// Actions implements games.Game.
func (g *Game) Actions(state string) []string {
	return g.actions[state]
}

// Result implements games.Game. Unknown actions leave the state unchanged.
func (g *Game) Result(state string, action string) string {
	next, ok := g.successors[state][action]
	if !ok {
		return state
	}
	return next
}

// Utility implements games.Game.
func (g *Game) Utility(state string, player games.Player) float64 {
	if player == Max {
		return g.utilities[state]
	}
	return -g.utilities[state]
}

// IsTerminal implements games.Game: leaves are the nodes without successors.
func (g *Game) IsTerminal(state string) bool {
	_, inner := g.successors[state]
	return !inner
}

// ToMove implements games.Game.
func (g *Game) ToMove(state string) games.Player {
	if g.minNodes[state] {
		return Min
	}
	return Max
}

// Display implements games.Game.
func (g *Game) Display(w io.Writer, state string) error {
	var err error
	if g.IsTerminal(state) {
		_, err = fmt.Fprintf(w, "%s (leaf, utility for %s=%g)\n", state, Max, g.utilities[state])
	} else {
		_, err = fmt.Fprintf(w, "%s (%s to move: %s)\n", state, g.ToMove(state),
			strings.Join(g.actions[state], ", "))
	}
	return err
}

// ParseAction implements games.ActionParser.
func (g *Game) ParseAction(text string) (string, error) {
	action := strings.TrimSpace(text)
	if action == "" {
		return "", errors.New("empty action")
	}
	return action, nil
}
