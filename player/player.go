package player

import (
	"context"
	"time"

	"othello/experiments/metrics"
	"othello/meta"

	"golang.org/x/exp/rand"
)

type options struct {
	rng        *rand.Rand
	delay      time.Duration
	repeat     int
	goroutines int
	minThink   time.Duration
	metrics    metrics.Collector
}

type Option func(o *options)

// WithSeed makes the player's random choices reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = newRand(seed)
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// WithDelay holds every answer back by d, for pacing a watching UI.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.delay = d
		}
	}
}

// WithRepeat sets the number of rollouts per candidate move.
func WithRepeat(repeat int) Option {
	return func(o *options) {
		if repeat > 0 {
			o.repeat = repeat
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(o *options) {
		if goroutines > 0 {
			o.goroutines = goroutines
		}
	}
}

// WithMinThinkTime keeps a search from answering sooner than d.
func WithMinThinkTime(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.minThink = d
		}
	}
}

func WithMetrics() Option {
	return func(o *options) {
		o.metrics = metrics.NewCollector()
	}
}

func buildOptions(opts []Option) options {
	o := options{ // Default values
		repeat:     meta.REPEAT,
		goroutines: meta.GO_ROUTINES,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = newRand(uint64(time.Now().UnixNano()))
	}
	return o
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// wait blocks for d unless ctx is done first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
