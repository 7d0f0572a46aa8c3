package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"othello/experiments/metrics"
	"othello/game"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

// WithObserver registers a callback run after every ply on the goroutine
// calling Run.
func WithObserver(observe func(Update)) Option {
	return func(e *Engine) {
		if observe != nil {
			e.observers = append(e.observers, observe)
		}
	}
}

// Engine drives one match. Only Run mutates State, and only with the
// answer of a completed Think.
type Engine struct {
	State     *game.GameState
	Players   game.Players
	observers []func(Update)
}

func LocalEngine(size int, players game.Players, options ...Option) (*Engine, error) {
	if players.Black == nil || players.White == nil {
		return nil, errors.New("need two players")
	}
	state, err := game.NewGameState(size, players)
	if err != nil {
		return nil, err
	}
	return New(state, options...), nil
}

// New runs a match from an existing position with the players bound to it.
func New(state *game.GameState, options ...Option) *Engine {
	e := &Engine{
		State:   state,
		Players: state.Players(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until both sides pass in a row.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	starting := e.State.Turn()
	log.Info().Msgf("%s is starting on a %dx%d board", starting, e.State.Size(), e.State.Size())
	e.notify(e.update(0, game.Empty, game.Pass))

	var moveMetrics []metrics.MoveMetric
	step := 1
	for !e.State.Finished() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		color := e.State.Turn()
		player := e.Players.For(color)
		if player == nil {
			return Result{}, fmt.Errorf("no player bound to %s", color)
		}

		// Players only ever see a copy
		snapshot := e.State.Clone(e.Players)
		move, err := player.Think(ctx, snapshot)
		if err != nil {
			return Result{}, fmt.Errorf("%s failed to think: %w", color, err)
		}
		if err := e.State.Apply(move); err != nil {
			return Result{}, fmt.Errorf("%s played %s: %w", color, move, err)
		}

		metric := metrics.MoveMetric{Step: step, Player: color.String(), Move: move.String()}
		if s, ok := player.(Searcher); ok {
			metric.SearchMetric = s.LastSearch()
		}
		moveMetrics = append(moveMetrics, metric)

		log.Debug().Msgf("step %d: %s played %s\n%s", step, color, move, e.State.Board())
		e.notify(e.update(step, color, move))
		step++
	}

	score, _ := e.State.Score()
	end := time.Now()
	log.Info().Msgf("game over after %d plies: black %d, white %d, winner %s", step-1, score.Black, score.White, score.Winner())

	return Result{
		Score:  score,
		Winner: score.Winner(),
		Game: metrics.GameMetric{
			StartingPlayer: starting.String(),
			Winner:         score.Winner().String(),
			Black:          score.Black,
			White:          score.White,
			StartTime:      start,
			EndTime:        end,
			Duration:       end.Sub(start),
			TotalMoves:     step - 1,
		},
		Moves: moveMetrics,
	}, nil
}

func (e *Engine) update(step int, color game.Cell, move game.Move) Update {
	black, white := e.State.Count()
	return Update{
		Step:  step,
		Color: color,
		Move:  move,
		Board: e.State.Board().Grid(),
		Turn:  e.State.Turn(),
		Black: black,
		White: white,
		Hash:  e.State.Hash(),
		Legal: e.State.LegalMoves(),
	}
}

func (e *Engine) notify(u Update) {
	for _, observe := range e.observers {
		observe(u)
	}
}
