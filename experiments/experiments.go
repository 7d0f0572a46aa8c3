package experiments

import (
	"context"
	"fmt"
	"time"

	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/player"

	"github.com/rs/zerolog/log"
)

const NumGames = 20 // Per match up

var repeatConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: metrics.MonteCarloAgent, Repeat: 10, Goroutines: 8},
	{ID: 2, Kind: metrics.MonteCarloAgent, Repeat: 50, Goroutines: 8},
	{ID: 3, Kind: metrics.MonteCarloAgent, Repeat: 100, Goroutines: 8},
	{ID: 4, Kind: metrics.MonteCarloAgent, Repeat: 200, Goroutines: 8},
}

// RunRepeatToStrength pairs Monte-Carlo agents of growing rollout counts
// against a random baseline.
func RunRepeatToStrength(ctx context.Context, root string, size int) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: metrics.RandomAgent}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range repeatConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return Run(ctx, "repeat_to_strength", root, size, NumGames, append(repeatConfigs, baseline), matchUps)
}

// Run plays every match up numGames times, swapping colours each game, and
// writes the configs, game records and move records under root. It returns
// the directory holding the results.
func Run(ctx context.Context, name, root string, size, numGames int, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		if len(matchUp) != 2 {
			return "", fmt.Errorf("match up %d has %d agents, want 2", mi+1, len(matchUp))
		}
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchUp[0], matchUp[1])

		for i := 0; i < numGames; i++ {
			black, white := matchUp[0], matchUp[1]
			if i%2 == 1 {
				black, white = white, black
			}

			result, err := runGame(ctx, size, black, white, uint64(i))
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Black:      black.ID,
				White:      white.ID,
				GameMetric: result.Game,
			})
			for _, mm := range result.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s (%d-%d)", mi+1, len(matchUps), i+1, result.Winner, result.Score.Black, result.Score.White)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())

	return writer.Dir(), nil
}

// runGame executes a single game between two agents
func runGame(ctx context.Context, size int, black, white metrics.AgentConfig, salt uint64) (engine.Result, error) {
	players, err := createPlayers(black, white, salt)
	if err != nil {
		return engine.Result{}, err
	}

	e, err := engine.LocalEngine(size, players)
	if err != nil {
		return engine.Result{}, err
	}
	return e.Run(ctx)
}

// createPlayers salts each seat differently so two agents sharing a seed
// still draw from separate streams.
func createPlayers(black, white metrics.AgentConfig, salt uint64) (game.Players, error) {
	blackPlayer, err := CreatePlayer(black, salt*2)
	if err != nil {
		return game.Players{}, err
	}
	whitePlayer, err := CreatePlayer(white, salt*2+1)
	if err != nil {
		return game.Players{}, err
	}
	return game.Players{Black: blackPlayer, White: whitePlayer}, nil
}

// CreatePlayer builds the agent described by config. A non-zero seed is
// offset by salt so repeated games differ but stay reproducible. Monte-Carlo
// agents need a positive Repeat; zero Goroutines picks the default.
func CreatePlayer(config metrics.AgentConfig, salt uint64, extra ...player.Option) (game.Player, error) {
	options := []player.Option{}
	if config.Seed != 0 {
		options = append(options, player.WithSeed(config.Seed+salt))
	} else {
		options = append(options, player.WithSeed(uint64(time.Now().UnixNano())+salt))
	}
	options = append(options, extra...)

	switch config.Kind {
	case metrics.RandomAgent:
		return player.NewRandom(options...), nil
	case metrics.MonteCarloAgent:
		if config.Repeat <= 0 {
			return nil, fmt.Errorf("agent %d: repeat must be positive, got %d", config.ID, config.Repeat)
		}
		if config.Goroutines < 0 {
			return nil, fmt.Errorf("agent %d: goroutines must not be negative, got %d", config.ID, config.Goroutines)
		}
		options = append(options, player.WithRepeat(config.Repeat))
		if config.Goroutines > 0 {
			options = append(options, player.WithGoroutines(config.Goroutines))
		}
		options = append(options, player.WithMetrics())
		return player.NewMonteCarlo(options...), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
}
