package metrics

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "demo")
	require.NoError(t, err)

	rel, err := filepath.Rel(filepath.Join(root, "demo"), w.Dir())
	require.NoError(t, err)
	_, err = time.Parse(time.RFC3339, rel)
	require.NoError(t, err, "Results live in a timestamped directory")

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{
		{ID: 1, Kind: RandomAgent},
		{ID: 2, Kind: MonteCarloAgent, Repeat: 100, Goroutines: 8, Seed: 42},
	}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		ID:    1,
		Black: 2,
		White: 1,
		GameMetric: GameMetric{
			StartingPlayer: "Black",
			Winner:         "White",
			Black:          20,
			White:          44,
			TotalMoves:     61,
			Duration:       time.Second,
		},
	}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{
		Game: 1,
		MoveMetric: MoveMetric{
			Step:   1,
			Player: "Black",
			Move:   "(2,3)",
			SearchMetric: SearchMetric{
				Candidates: 4, Repeat: 100, Goroutines: 8, Rollouts: 400, FullPlayouts: 400,
			},
		},
	}}))

	read := func(name string) [][]string {
		f, err := os.Open(filepath.Join(w.Dir(), name))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		return rows
	}

	configs := read("agent_configs.csv")
	require.Equal(t, []string{"id", "kind", "repeat", "goroutines", "seed"}, configs[0])
	require.Equal(t, []string{"1", "random", "0", "0", "0"}, configs[1])
	require.Equal(t, []string{"2", "montecarlo", "100", "8", "42"}, configs[2])

	games := read("game_records.csv")
	require.Len(t, games, 2)
	require.Equal(t, []string{"1", "2", "1", "Black", "White", "20", "44", "61"}, games[1][:8])
	require.Equal(t, "1s", games[1][10])

	moves := read("move_records.csv")
	require.Len(t, moves, 2)
	require.Equal(t, []string{"1", "1", "Black", "(2,3)", "4", "100", "8", "400", "400"}, moves[1][:9])
}

type failingClose struct {
	bytes.Buffer
	err error
}

func (f *failingClose) Close() error {
	return f.err
}

func TestWriterReportsCloseErrors(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "close")
	require.NoError(t, err)

	diskFull := errors.New("no space left on device")
	file := &failingClose{err: diskFull}
	restore := create
	create = func(string) (io.WriteCloser, error) { return file, nil }
	t.Cleanup(func() { create = restore })

	err = w.WriteAgentConfigs([]AgentConfig{{ID: 1, Kind: RandomAgent}})
	require.ErrorIs(t, err, diskFull)
	require.Contains(t, file.String(), "id,kind", "Rows are flushed before the file is closed")
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(4, 10, 3)
	c.AddRollout()
	c.AddRollout()
	c.AddFullPlayout()

	m := c.Complete()
	require.Equal(t, 4, m.Goroutines)
	require.Equal(t, 10, m.Repeat)
	require.Equal(t, 3, m.Candidates)
	require.Equal(t, 2, m.Rollouts)
	require.Equal(t, 1, m.FullPlayouts)

	c.Start(1, 1, 1)
	require.Zero(t, c.Complete().Rollouts, "Start resets the counters")

	require.Equal(t, SearchMetric{}, NewDummyCollector().Complete())
}
