package game

import (
	"context"
	"fmt"
)

// MinSize is the smallest playable board.
const MinSize = 4

// Move is a board coordinate. Pass is the sentinel for giving up the turn.
type Move struct {
	Row int
	Col int
}

var Pass = Move{Row: -1, Col: -1}

func (m Move) IsPass() bool {
	return m == Pass
}

func (m Move) String() string {
	if m.IsPass() {
		return "pass"
	}
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// Player decides the ply for the side to move. Implementations read the
// state they are given; the caller applies the returned move.
type Player interface {
	Think(ctx context.Context, state *GameState) (Move, error)
}

// Players binds a capability to each colour.
type Players struct {
	Black Player
	White Player
}

func (p Players) For(c Cell) Player {
	if c == White {
		return p.White
	}
	return p.Black
}

type StateHash uint64

// Score is the final tally, taken when the game finished.
type Score struct {
	Black int
	White int
	Turn  Cell // side to move when the game ended
}

// Winner returns the colour with strictly more discs, Empty on a draw.
func (s Score) Winner() Cell {
	switch {
	case s.Black > s.White:
		return Black
	case s.White > s.Black:
		return White
	}
	return Empty
}

// Wins reports whether c has at least as many discs as its opponent.
func (s Score) Wins(c Cell) bool {
	if c == White {
		return s.White >= s.Black
	}
	return s.Black >= s.White
}
