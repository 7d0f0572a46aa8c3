package game

import "errors"

var (
	ErrInvalidBoardSize = errors.New("board size must be an even number >= 4")
	ErrIllegalMove      = errors.New("illegal move")
	ErrIllegalPass      = errors.New("cannot pass while legal moves exist")
	ErrGameFinished     = errors.New("game is over - no moves allowed")
)
