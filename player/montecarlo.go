package player

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"othello/experiments/metrics"
	"othello/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Candidate is a legal move with the number of rollouts it won.
type Candidate struct {
	Move game.Move
	Wins int
}

// MonteCarlo rates every legal move by playing repeat random games after it
// and picks the move with the most wins. A draw counts as a win.
type MonteCarlo struct {
	repeat     int
	goroutines int
	minThink   time.Duration
	metrics    metrics.Collector

	mu   sync.Mutex // Guards rng and last
	rng  *rand.Rand
	last metrics.SearchMetric
}

func NewMonteCarlo(opts ...Option) *MonteCarlo {
	o := buildOptions(opts)
	return &MonteCarlo{
		repeat:     o.repeat,
		goroutines: o.goroutines,
		minThink:   o.minThink,
		metrics:    o.metrics,
		rng:        o.rng,
	}
}

func (m *MonteCarlo) Think(ctx context.Context, state *game.GameState) (game.Move, error) {
	start := time.Now()

	candidates, err := m.Evaluate(ctx, state)
	if err != nil {
		return game.Move{}, err
	}
	if len(candidates) == 0 {
		return game.Pass, nil
	}

	// Earliest candidate wins ties
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Wins > best.Wins {
			best = c
		}
	}
	log.Debug().Msgf("%s picked %s with %d/%d wins", state.Turn(), best.Move, best.Wins, m.repeat)

	if err := wait(ctx, m.minThink-time.Since(start)); err != nil {
		return game.Move{}, err
	}
	return best.Move, nil
}

// Evaluate runs repeat rollouts for every legal move and returns the win
// tallies in legal move order. All rollouts have finished when it returns.
func (m *MonteCarlo) Evaluate(ctx context.Context, state *game.GameState) ([]Candidate, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		m.mu.Lock()
		m.last = metrics.SearchMetric{}
		m.mu.Unlock()
		return nil, nil
	}

	m.metrics.Start(m.goroutines, m.repeat, len(moves))
	wins, err := m.simulate(ctx, state, moves)
	metric := m.metrics.Complete()

	m.mu.Lock()
	m.last = metric
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, len(moves))
	for i, move := range moves {
		candidates[i] = Candidate{Move: move, Wins: int(wins[i].Load())}
	}
	return candidates, nil
}

// LastSearch returns the metrics of the latest search.
func (m *MonteCarlo) LastSearch() metrics.SearchMetric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.last
}

type rolloutTask struct {
	candidate int
	seed      uint64
}

func (m *MonteCarlo) simulate(ctx context.Context, state *game.GameState, moves []game.Move) ([]atomic.Int64, error) {
	// Seeds are drawn up front so results do not depend on scheduling
	task := make(chan rolloutTask, len(moves)*m.repeat)
	m.mu.Lock()
	for i := range moves {
		for j := 0; j < m.repeat; j++ {
			task <- rolloutTask{candidate: i, seed: m.rng.Uint64()}
		}
	}
	m.mu.Unlock()
	close(task)

	wins := make([]atomic.Int64, len(moves))
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for t := range task {
				if ctx.Err() != nil {
					return
				}
				m.metrics.AddRollout()
				won, err := rollout(ctx, state, moves[t.candidate], t.seed)
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					return
				}
				m.metrics.AddFullPlayout()
				if won {
					wins[t.candidate].Add(1)
				}
			}
		}()
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return wins, nil
}

// rollout plays move on a private clone, finishes the game with random
// players and reports whether the mover ended with at least as many discs.
func rollout(ctx context.Context, state *game.GameState, move game.Move, seed uint64) (bool, error) {
	random := NewRandom(WithSeed(seed))
	sim := state.Clone(game.Players{Black: random, White: random})
	mover := sim.Turn()

	if err := sim.Play(move); err != nil {
		return false, err
	}
	for !sim.Finished() {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if _, err := sim.Next(ctx); err != nil {
			return false, err
		}
	}

	score, _ := sim.Score()
	return score.Wins(mover), nil
}
