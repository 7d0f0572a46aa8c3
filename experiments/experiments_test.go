package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"othello/experiments/metrics"
	"othello/game"
	"othello/player"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRun(t *testing.T) {
	random := metrics.AgentConfig{ID: 1, Kind: metrics.RandomAgent, Seed: 7}
	mc := metrics.AgentConfig{ID: 2, Kind: metrics.MonteCarloAgent, Repeat: 2, Goroutines: 2, Seed: 9}
	root := t.TempDir()

	dir, err := Run(context.Background(), "small", root, 4, 4,
		[]metrics.AgentConfig{random, mc},
		[][]metrics.AgentConfig{{random, mc}},
	)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(dir, filepath.Join(root, "small")))

	configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
	require.Len(t, configs, 3)
	require.Equal(t, []string{"2", "montecarlo", "2", "2", "9"}, configs[2])

	games := readCSV(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 5)
	for i, row := range games[1:] {
		// Colours swap every game
		if i%2 == 0 {
			require.Equal(t, []string{"1", "2"}, row[1:3])
		} else {
			require.Equal(t, []string{"2", "1"}, row[1:3])
		}
		require.Equal(t, "Black", row[3])
	}

	moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
	require.Greater(t, len(moves), 1)
	require.Equal(t, "game", moves[0][0])
}

func TestRunRejectsBadMatchUps(t *testing.T) {
	random := metrics.AgentConfig{ID: 1, Kind: metrics.RandomAgent}
	_, err := Run(context.Background(), "bad", t.TempDir(), 4, 1,
		[]metrics.AgentConfig{random},
		[][]metrics.AgentConfig{{random}},
	)
	require.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	random := metrics.AgentConfig{ID: 1, Kind: metrics.RandomAgent}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := t.TempDir()
	_, err := Run(ctx, "cancelled", root, 4, 1,
		[]metrics.AgentConfig{random},
		[][]metrics.AgentConfig{{random, random}},
	)
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(filepath.Join(root, "cancelled"))
	require.True(t, os.IsNotExist(statErr), "Nothing is written for an aborted experiment")
}

func TestCreatePlayer(t *testing.T) {
	p, err := CreatePlayer(metrics.AgentConfig{Kind: metrics.RandomAgent}, 0)
	require.NoError(t, err)
	require.IsType(t, &player.Random{}, p)

	p, err = CreatePlayer(metrics.AgentConfig{Kind: metrics.MonteCarloAgent, Repeat: 3}, 0)
	require.NoError(t, err)
	require.IsType(t, &player.MonteCarlo{}, p)

	_, err = CreatePlayer(metrics.AgentConfig{Kind: "minimax"}, 0)
	require.Error(t, err)
}

func TestCreatePlayerRejectsBadSearchSettings(t *testing.T) {
	tests := []struct {
		name   string
		config metrics.AgentConfig
	}{
		{"zero repeat", metrics.AgentConfig{Kind: metrics.MonteCarloAgent, Repeat: 0}},
		{"negative repeat", metrics.AgentConfig{Kind: metrics.MonteCarloAgent, Repeat: -5}},
		{"negative goroutines", metrics.AgentConfig{Kind: metrics.MonteCarloAgent, Repeat: 10, Goroutines: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreatePlayer(tt.config, 0)
			require.Error(t, err)
		})
	}

	t.Run("random agents ignore search settings", func(t *testing.T) {
		_, err := CreatePlayer(metrics.AgentConfig{Kind: metrics.RandomAgent}, 0)
		require.NoError(t, err)
	})
}

func TestCreatePlayersSeparatesSeats(t *testing.T) {
	config := metrics.AgentConfig{ID: 1, Kind: metrics.RandomAgent, Seed: 5}

	picks := func(p game.Player) []game.Move {
		state, err := game.NewGameState(8, game.Players{})
		require.NoError(t, err)
		moves := make([]game.Move, 30)
		for i := range moves {
			moves[i], err = p.Think(context.Background(), state)
			require.NoError(t, err)
		}
		return moves
	}

	players, err := createPlayers(config, config, 3)
	require.NoError(t, err)
	black, white := picks(players.Black), picks(players.White)
	require.NotEqual(t, black, white, "Mirrored agents should not replay the same random stream")

	again, err := createPlayers(config, config, 3)
	require.NoError(t, err)
	require.Equal(t, black, picks(again.Black), "Seeded seats stay reproducible")
}
