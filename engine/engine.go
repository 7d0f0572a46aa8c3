package engine

import (
	"othello/experiments/metrics"
	"othello/game"
)

// Update is a snapshot emitted after every ply. Step 0 is the starting
// position.
type Update struct {
	Step  int
	Color game.Cell // Side that just played
	Move  game.Move
	Board [][]game.Cell
	Turn  game.Cell // Side to move next
	Black int
	White int
	Hash  game.StateHash
	Legal []game.Move // Moves open to Turn, empty when it has to pass
}

type Result struct {
	Score  game.Score
	Winner game.Cell // Empty on a draw
	Game   metrics.GameMetric
	Moves  []metrics.MoveMetric
}

// Searcher is implemented by players that report search statistics.
type Searcher interface {
	LastSearch() metrics.SearchMetric
}
