package game

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"
)

// GameState owns the board and drives the turn order. It is not safe for
// concurrent use; rollouts work on clones.
type GameState struct {
	board      *Board
	turn       Cell
	lastPassed bool
	finished   bool
	score      Score
	players    Players

	// Bumped on every mutation. The legal move cache is valid only while
	// legalVersion matches.
	version      uint64
	legal        []Move
	legalVersion uint64
}

// NewGameState sets up the opening position with Black to move.
func NewGameState(size int, players Players) (*GameState, error) {
	if size < MinSize || size%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBoardSize, size)
	}
	return &GameState{
		board:   NewBoard(size),
		turn:    Black,
		players: players,
	}, nil
}

// FromBoard starts a game from an arbitrary position with turn to move.
func FromBoard(board *Board, turn Cell, players Players) (*GameState, error) {
	if board.Size() < MinSize || board.Size()%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBoardSize, board.Size())
	}
	if turn != Black && turn != White {
		return nil, fmt.Errorf("turn must be Black or White, got %s", turn)
	}
	return &GameState{
		board:   board.Copy(),
		turn:    turn,
		players: players,
	}, nil
}

// Clone returns an independent copy of the game rebound to players.
func (gs *GameState) Clone(players Players) *GameState {
	return &GameState{
		board:        gs.board.Copy(),
		turn:         gs.turn,
		lastPassed:   gs.lastPassed,
		finished:     gs.finished,
		score:        gs.score,
		players:      players,
		version:      gs.version,
		legal:        gs.legal, // never mutated in place, safe to share
		legalVersion: gs.legalVersion,
	}
}

func (gs *GameState) Size() int {
	return gs.board.Size()
}

func (gs *GameState) Turn() Cell {
	return gs.turn
}

func (gs *GameState) LastPassed() bool {
	return gs.lastPassed
}

func (gs *GameState) Finished() bool {
	return gs.finished
}

func (gs *GameState) Players() Players {
	return gs.players
}

// Board returns a copy of the current board.
func (gs *GameState) Board() *Board {
	return gs.board.Copy()
}

func (gs *GameState) At(row, col int) Cell {
	return gs.board.At(row, col)
}

// Count tallies the discs on the board right now.
func (gs *GameState) Count() (black, white int) {
	return gs.board.Count()
}

// Score returns the final score once the game has finished.
func (gs *GameState) Score() (Score, bool) {
	return gs.score, gs.finished
}

// LegalMoves lists the moves for the side to move in board scan order.
func (gs *GameState) LegalMoves() []Move {
	return slices.Clone(gs.legalMoves())
}

func (gs *GameState) legalMoves() []Move {
	if gs.legal != nil && gs.legalVersion == gs.version {
		return gs.legal
	}
	gs.legal = gs.findLegalMoves()
	gs.legalVersion = gs.version
	return gs.legal
}

func (gs *GameState) findLegalMoves() []Move {
	turn, opponent := gs.turn, gs.turn.Opponent()
	size := gs.board.Size()

	moves := []Move{}
	seen := make(map[Move]bool)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if gs.board.At(row, col) != turn {
				continue
			}
			for d := Direction(0); d < NumDirections; d++ {
				for s := range gs.board.Scan(row, col, d) {
					cell := gs.board.At(s.Row, s.Col)
					if cell == opponent {
						continue
					}
					// Needs at least one opponent disc between origin and the empty cell
					if cell == Empty && s.N > 1 {
						m := Move{Row: s.Row, Col: s.Col}
						if !seen[m] {
							seen[m] = true
							moves = append(moves, m)
						}
					}
					break
				}
			}
		}
	}
	return moves
}

// IsLegal reports whether m is a legal move for the side to move.
func (gs *GameState) IsLegal(m Move) bool {
	if m.IsPass() {
		return len(gs.legalMoves()) == 0
	}
	return slices.Contains(gs.legalMoves(), m)
}

// Apply plays m, or passes when m is Pass.
func (gs *GameState) Apply(m Move) error {
	if m.IsPass() {
		return gs.Pass()
	}
	return gs.Play(m)
}

// Play places a disc for the side to move, flips every captured line and
// hands the turn over.
func (gs *GameState) Play(m Move) error {
	if gs.finished {
		return ErrGameFinished
	}
	if !slices.Contains(gs.legalMoves(), m) {
		return fmt.Errorf("%w: %s for %s", ErrIllegalMove, m, gs.turn)
	}

	turn, opponent := gs.turn, gs.turn.Opponent()
	gs.board.Set(m.Row, m.Col, turn)

	flipped := 0
	for d := Direction(0); d < NumDirections; d++ {
		var line []Step
		for s := range gs.board.Scan(m.Row, m.Col, d) {
			cell := gs.board.At(s.Row, s.Col)
			if cell == opponent {
				line = append(line, s)
				continue
			}
			if cell == turn {
				for _, captured := range line {
					gs.board.Set(captured.Row, captured.Col, turn)
				}
				flipped += len(line)
			}
			break
		}
	}
	if flipped == 0 {
		panic(fmt.Sprintf("legal move %s captured nothing", m))
	}
	gs.version++

	gs.lastPassed = false
	gs.changeTurn()
	return nil
}

// Pass gives up the turn. It is only legal without legal moves; a second
// consecutive pass ends the game.
func (gs *GameState) Pass() error {
	if gs.finished {
		return ErrGameFinished
	}
	if len(gs.legalMoves()) > 0 {
		return fmt.Errorf("%w: %s has %d", ErrIllegalPass, gs.turn, len(gs.legal))
	}

	if gs.lastPassed {
		gs.finish()
		return nil
	}
	gs.lastPassed = true
	gs.changeTurn()
	return nil
}

func (gs *GameState) changeTurn() {
	gs.turn = gs.turn.Opponent()
	gs.version++
}

func (gs *GameState) finish() {
	black, white := gs.board.Count()
	gs.score = Score{Black: black, White: white, Turn: gs.turn}
	gs.finished = true
}

// Next asks the player bound to the side to move for a ply and applies it.
// It returns false once the game is over.
func (gs *GameState) Next(ctx context.Context) (bool, error) {
	if gs.finished {
		return false, ErrGameFinished
	}
	player := gs.players.For(gs.turn)
	if player == nil {
		return false, fmt.Errorf("no player bound to %s", gs.turn)
	}

	move, err := player.Think(ctx, gs)
	if err != nil {
		return false, err
	}
	if err := gs.Apply(move); err != nil {
		return false, err
	}
	return !gs.finished, nil
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.turn))
	binary.Write(hasher, binary.LittleEndian, gs.lastPassed)
	binary.Write(hasher, binary.LittleEndian, gs.board.cells)

	return StateHash(hasher.Sum64())
}
