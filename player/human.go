package player

import (
	"context"
	"fmt"
	"slices"

	"othello/game"

	"github.com/rs/zerolog/log"
)

type submission struct {
	move   game.Move
	result chan error
}

// Human waits for moves handed in from outside, e.g. a UI click handler.
type Human struct {
	moves chan submission
}

func NewHuman() *Human {
	return &Human{moves: make(chan submission)}
}

// Think passes straight away when there is nothing to play, otherwise it
// blocks until a legal move is submitted or ctx is done.
func (h *Human) Think(ctx context.Context, state *game.GameState) (game.Move, error) {
	legal := state.LegalMoves()
	if len(legal) == 0 {
		return game.Pass, nil
	}

	for {
		select {
		case <-ctx.Done():
			return game.Move{}, ctx.Err()
		case s := <-h.moves:
			if !slices.Contains(legal, s.move) {
				log.Warn().Msgf("rejected %s for %s, legal moves are %v", s.move, state.Turn(), legal)
				s.result <- fmt.Errorf("%w: %s", game.ErrIllegalMove, s.move)
				continue
			}
			s.result <- nil
			return s.move, nil
		}
	}
}

// Submit hands a move to a pending Think. It blocks until Think accepts or
// rejects the move, or ctx is done.
func (h *Human) Submit(ctx context.Context, move game.Move) error {
	s := submission{move: move, result: make(chan error, 1)}
	select {
	case h.moves <- s:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-s.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
