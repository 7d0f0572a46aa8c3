package experiments

import (
	"context"

	"othello/experiments/metrics"
)

// RunThroughput measures how rollout throughput scales with goroutines.
// Both seats share a config in each match up so games have similar length.
func RunThroughput(ctx context.Context, root string, size int) (string, error) {
	const numGames = 2 // Per match up
	const repeat = 100
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: metrics.MonteCarloAgent, Repeat: repeat, Goroutines: 1},
		{ID: 2, Kind: metrics.MonteCarloAgent, Repeat: repeat, Goroutines: 2},
		{ID: 3, Kind: metrics.MonteCarloAgent, Repeat: repeat, Goroutines: 4},
		{ID: 4, Kind: metrics.MonteCarloAgent, Repeat: repeat, Goroutines: 8},
		{ID: 5, Kind: metrics.MonteCarloAgent, Repeat: repeat, Goroutines: 16},
		{ID: 6, Kind: metrics.MonteCarloAgent, Repeat: repeat, Goroutines: 32},
	}
	matchUps := make([][]metrics.AgentConfig, 0, len(configs))
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}

	return Run(ctx, "throughput", root, size, numGames, configs, matchUps)
}
