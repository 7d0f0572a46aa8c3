package player

import (
	"context"
	"time"

	"othello/game"

	"golang.org/x/exp/rand"
)

// Random picks uniformly among the legal moves. Not safe for concurrent
// Think calls since it owns its generator.
type Random struct {
	rng   *rand.Rand
	delay time.Duration
}

func NewRandom(opts ...Option) *Random {
	o := buildOptions(opts)
	return &Random{rng: o.rng, delay: o.delay}
}

func (p *Random) Think(ctx context.Context, state *game.GameState) (game.Move, error) {
	moves := state.LegalMoves()
	if err := wait(ctx, p.delay); err != nil {
		return game.Move{}, err
	}
	if len(moves) == 0 {
		return game.Pass, nil
	}
	return moves[p.rng.Intn(len(moves))], nil
}
