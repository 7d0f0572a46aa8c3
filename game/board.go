package game

import (
	"fmt"
	"iter"
	"strings"
)

// Cell is the content of a single square.
type Cell int8

const (
	Empty Cell = iota
	Black
	White
)

func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c Cell) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "Empty"
}

// Symbol is the character used for c in String and ParseBoard.
func (c Cell) Symbol() byte {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	}
	return '.'
}

// Direction indexes one of the 8 compass rays. 0 points right and the rest
// follow counter-clockwise.
type Direction int

const NumDirections = 8

var deltas = [NumDirections][2]int{
	{0, 1},   // right
	{-1, 1},  // up-right
	{-1, 0},  // up
	{-1, -1}, // up-left
	{0, -1},  // left
	{1, -1},  // down-left
	{1, 0},   // down
	{1, 1},   // down-right
}

// Delta returns the unit vector (row, column) of the direction.
func (d Direction) Delta() (dr, dc int) {
	return deltas[d][0], deltas[d][1]
}

// Step is one cell visited by Scan. N starts at 1 for the neighbour.
type Step struct {
	Row, Col int
	N        int
}

// Board is a square grid of cells. Row-major, 0-indexed.
type Board struct {
	size  int
	cells []Cell
}

// NewBoard returns a board with the four centre discs placed.
func NewBoard(size int) *Board {
	b := &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}
	mid := size / 2
	b.Set(mid-1, mid-1, White)
	b.Set(mid-1, mid, Black)
	b.Set(mid, mid-1, Black)
	b.Set(mid, mid, White)
	return b
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.size && 0 <= col && col < b.size
}

func (b *Board) At(row, col int) Cell {
	return b.cells[row*b.size+col]
}

func (b *Board) Set(row, col int, c Cell) {
	b.cells[row*b.size+col] = c
}

// Scan walks outward from (row, col) along d, starting one step past the
// origin. The sequence ends at the board edge or when the consumer stops
// ranging. Cell contents are left to the consumer.
func (b *Board) Scan(row, col int, d Direction) iter.Seq[Step] {
	dr, dc := d.Delta()
	return func(yield func(Step) bool) {
		r, c := row+dr, col+dc
		for n := 1; b.InBounds(r, c); n++ {
			if !yield(Step{Row: r, Col: c, N: n}) {
				return
			}
			r += dr
			c += dc
		}
	}
}

// Count tallies black and white discs.
func (b *Board) Count() (black, white int) {
	for _, c := range b.cells {
		switch c {
		case Black:
			black++
		case White:
			white++
		}
	}
	return black, white
}

// Copy returns a board with its own storage.
func (b *Board) Copy() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// Grid returns a row-major copy of the cells.
func (b *Board) Grid() [][]Cell {
	grid := make([][]Cell, b.size)
	for r := range grid {
		grid[r] = make([]Cell, b.size)
		copy(grid[r], b.cells[r*b.size:(r+1)*b.size])
	}
	return grid
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			sb.WriteByte(b.At(r, c).Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard reads rows written with 'X' (black), 'O' (white) and '.'
// (empty), the format produced by String.
func ParseBoard(rows ...string) (*Board, error) {
	size := len(rows)
	if size < MinSize || size%2 != 0 {
		return nil, fmt.Errorf("%w: got %d rows", ErrInvalidBoardSize, size)
	}
	b := &Board{size: size, cells: make([]Cell, size*size)}
	for r, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(row), size)
		}
		for c, ch := range []byte(row) {
			switch ch {
			case 'X':
				b.Set(r, c, Black)
			case 'O':
				b.Set(r, c, White)
			case '.':
			default:
				return nil, fmt.Errorf("row %d: unexpected cell %q", r, ch)
			}
		}
	}
	return b, nil
}
