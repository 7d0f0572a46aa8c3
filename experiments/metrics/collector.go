package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Repeat       int
	Candidates   int
	Rollouts     int
	FullPlayouts int
	Duration     time.Duration
}

type MoveMetric struct {
	Step   int
	Player string // Colour
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string // Colour
	Winner         string // Colour, "Empty" on a draw
	Black          int
	White          int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector gathers statistics for one think call. Counters may be bumped
// from several rollout goroutines at once.
type Collector interface {
	Start(goroutines, repeat, candidates int)
	AddRollout()
	AddFullPlayout()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	repeat       int
	candidates   int
	startTime    time.Time
	rollouts     atomic.Int32
	fullPlayouts atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, repeat, candidates int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.repeat = repeat
	m.candidates = candidates
	m.rollouts.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Repeat:       m.repeat,
		Candidates:   m.candidates,
		Rollouts:     int(m.rollouts.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Duration:     time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, repeat, candidates int) {}
func (m *dummyCollector) AddRollout()                              {}
func (m *dummyCollector) AddFullPlayout()                          {}
func (m *dummyCollector) Complete() SearchMetric                   { return SearchMetric{} }
