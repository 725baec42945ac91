// Package kinarow implements k-in-a-row games on an h x v board: TicTacToe and its
// "drop from top" variant, ConnectFour.
//
// X (the first player to move) plays against O. A State caches its utility (+1 if X won,
// -1 if O won, 0 otherwise), so terminal tests are cheap for the searchers.
package kinarow

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/gamesearch/internal/games"
	"github.com/pkg/errors"
)

const (
	// X moves first.
	X games.Player = "X"

	// O moves second.
	O games.Player = "O"
)

// Pos is a board square. Coordinates start at 1: x in [1, h] and y in [1, v].
type Pos [2]int

// X coordinate of the position.
func (pos Pos) X() int {
	return pos[0]
}

// Y coordinate of the position.
func (pos Pos) Y() int {
	return pos[1]
}

// String returns a text representation of Pos.
func (pos Pos) String() string {
	return fmt.Sprintf("(%d, %d)", pos[0], pos[1])
}

// directions along which lines are checked: vertical, horizontal and both diagonals.
var directions = [4]Pos{{0, 1}, {1, 0}, {1, -1}, {1, 1}}

// State of a match. It is immutable: Game.Result returns a new State.
type State struct {
	toMove  games.Player
	utility int
	board   map[Pos]games.Player
	moves   []Pos
}

// At returns the player at pos, or false if the square is empty.
func (s *State) At(pos Pos) (games.Player, bool) {
	player, found := s.board[pos]
	return player, found
}

// Moves returns the empty squares, in enumeration order. The returned slice must not be modified.
func (s *State) Moves() []Pos {
	return s.moves
}

// Winner returns X or O if the match was won, or "" otherwise.
func (s *State) Winner() games.Player {
	switch {
	case s.utility > 0:
		return X
	case s.utility < 0:
		return O
	}
	return ""
}

// Game implements games.Game[*State, Pos].
type Game struct {
	h, v, k     int
	dropFromTop bool

	// windows are all segments of k squares fully inside the board, used by Heuristic.
	windows [][]Pos
}

// Assert Game is a games.Game and a games.ActionParser.
var (
	_ games.Game[*State, Pos] = (*Game)(nil)
	_ games.ActionParser[Pos] = (*Game)(nil)
)

// New returns a TicTacToe-like game on an h x v board, where k in a row wins.
//
// It panics if the dimensions are not positive.
func New(h, v, k int) *Game {
	if h <= 0 || v <= 0 || k <= 0 {
		exceptions.Panicf("kinarow: invalid board %dx%d with k=%d", h, v, k)
	}
	g := &Game{h: h, v: v, k: k}
	g.windows = g.buildWindows()
	return g
}

// NewTicTacToe returns the classic 3x3 game, 3 in a row.
func NewTicTacToe() *Game {
	return New(3, 3, 3)
}

// NewConnectFour returns the "drop from top" variant: one can only play on the bottom
// row (y == 1) or directly on top of an occupied square.
//
// Traditionally played with h=7, v=6 and k=4.
func NewConnectFour(h, v, k int) *Game {
	g := New(h, v, k)
	g.dropFromTop = true
	return g
}

// String implements fmt.Stringer.
func (g *Game) String() string {
	name := "TicTacToe"
	if g.dropFromTop {
		name = "ConnectFour"
	}
	return fmt.Sprintf("%s(%dx%d, k=%d)", name, g.h, g.v, g.k)
}

// Size returns the board dimensions and the number in a row needed to win.
func (g *Game) Size() (h, v, k int) {
	return g.h, g.v, g.k
}

// Initial implements games.Game: an empty board with X to move.
func (g *Game) Initial() *State {
	moves := make([]Pos, 0, g.h*g.v)
	for x := 1; x <= g.h; x++ {
		for y := 1; y <= g.v; y++ {
			moves = append(moves, Pos{x, y})
		}
	}
	return &State{toMove: X, board: make(map[Pos]games.Player), moves: moves}
}

// Actions implements games.Game. Actions are ordered by x first, then y.
// A match that was already won has no legal actions.
func (g *Game) Actions(state *State) []Pos {
	if state.utility != 0 {
		return nil
	}
	if !g.dropFromTop {
		return state.moves
	}
	actions := make([]Pos, 0, g.h)
	for _, pos := range state.moves {
		if pos.Y() == 1 {
			actions = append(actions, pos)
			continue
		}
		if _, occupied := state.board[Pos{pos.X(), pos.Y() - 1}]; occupied {
			actions = append(actions, pos)
		}
	}
	return actions
}

// Result implements games.Game. An illegal move, including any move after the match
// was won, has no effect.
func (g *Game) Result(state *State, action Pos) *State {
	moveIdx := slices.Index(state.moves, action)
	if moveIdx < 0 || !slices.Contains(g.Actions(state), action) {
		return state
	}
	board := make(map[Pos]games.Player, len(state.board)+1)
	for pos, player := range state.board {
		board[pos] = player
	}
	board[action] = state.toMove
	moves := slices.Delete(slices.Clone(state.moves), moveIdx, moveIdx+1)
	next := X
	if state.toMove == X {
		next = O
	}
	return &State{
		toMove:  next,
		utility: g.computeUtility(board, action, state.toMove),
		board:   board,
		moves:   moves,
	}
}

// Utility implements games.Game: 1 for a win, -1 for a loss and 0 otherwise.
func (g *Game) Utility(state *State, player games.Player) float64 {
	if player == X {
		return float64(state.utility)
	}
	return float64(-state.utility)
}

// IsTerminal implements games.Game: a state is terminal if it is won or there are no empty squares.
func (g *Game) IsTerminal(state *State) bool {
	return state.utility != 0 || len(state.moves) == 0
}

// ToMove implements games.Game.
func (g *Game) ToMove(state *State) games.Player {
	return state.toMove
}

// computeUtility returns +1 if X wins with move, -1 if O does and 0 otherwise.
func (g *Game) computeUtility(board map[Pos]games.Player, move Pos, player games.Player) int {
	for _, delta := range directions {
		if g.kInRow(board, move, player, delta) {
			if player == X {
				return 1
			}
			return -1
		}
	}
	return 0
}

// kInRow returns whether there is a line through move on board for player along delta.
func (g *Game) kInRow(board map[Pos]games.Player, move Pos, player games.Player, delta Pos) bool {
	n := 0
	for pos := move; board[pos] == player; pos = (Pos{pos[0] + delta[0], pos[1] + delta[1]}) {
		n++
	}
	for pos := move; board[pos] == player; pos = (Pos{pos[0] - delta[0], pos[1] - delta[1]}) {
		n++
	}
	n-- // move itself was counted twice.
	return n >= g.k
}

// buildWindows enumerates every segment of k squares inside the board.
func (g *Game) buildWindows() [][]Pos {
	var windows [][]Pos
	inside := func(pos Pos) bool {
		return pos[0] >= 1 && pos[0] <= g.h && pos[1] >= 1 && pos[1] <= g.v
	}
	for x := 1; x <= g.h; x++ {
		for y := 1; y <= g.v; y++ {
			for _, delta := range directions {
				window := make([]Pos, 0, g.k)
				for ii := range g.k {
					pos := Pos{x + ii*delta[0], y + ii*delta[1]}
					if !inside(pos) {
						break
					}
					window = append(window, pos)
				}
				if len(window) == g.k {
					windows = append(windows, window)
				}
			}
		}
	}
	return windows
}

var actionParser = regexp.MustCompile(`^\s*\(?\s*(\d+)[\s,]+(\d+)\s*\)?\s*$`)

// ParseAction implements games.ActionParser. It accepts "x,y", "x y" or "(x, y)".
func (g *Game) ParseAction(text string) (Pos, error) {
	matches := actionParser.FindStringSubmatch(text)
	if len(matches) != 3 {
		return Pos{}, errors.Errorf("failed to parse move %q, expected \"x,y\"", strings.TrimSpace(text))
	}
	var pos Pos
	for ii := range 2 {
		value, err := strconv.Atoi(matches[1+ii])
		if err != nil {
			return Pos{}, errors.Wrapf(err, "failed to parse coordinate %q", matches[1+ii])
		}
		pos[ii] = value
	}
	if pos[0] < 1 || pos[0] > g.h || pos[1] < 1 || pos[1] > g.v {
		return Pos{}, errors.Errorf("move %s is outside the %dx%d board", pos, g.h, g.v)
	}
	return pos, nil
}
