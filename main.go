package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"othello/engine"
	"othello/experiments"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"othello/player"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "match", "match, repeat or throughput")
	size := flag.Int("size", meta.BOARD_SIZE, "Board size (even, at least 4)")
	black := flag.String("black", metrics.MonteCarloAgent, "Black agent: random or montecarlo")
	white := flag.String("white", metrics.RandomAgent, "White agent: random or montecarlo")
	repeat := flag.Int("repeat", meta.REPEAT, "Number of rollouts per candidate move")
	goroutines := flag.Int("goroutines", meta.GO_ROUTINES, "Number of goroutines for parallel rollouts")
	seed := flag.Uint64("seed", 0, "Random seed, 0 seeds from the clock")
	delay := flag.Duration("delay", 0, "Minimum time per move")
	out := flag.String("out", "results", "Directory for experiment results")
	asJSON := flag.Bool("json", false, "Print the match result as JSON")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch *mode {
	case "match":
		configs := []metrics.AgentConfig{
			{ID: 1, Kind: *black, Repeat: *repeat, Goroutines: *goroutines, Seed: *seed},
			{ID: 2, Kind: *white, Repeat: *repeat, Goroutines: *goroutines, Seed: *seed},
		}
		err = runMatch(ctx, *size, configs, *delay, *asJSON)
	case "repeat":
		_, err = experiments.RunRepeatToStrength(ctx, *out, *size)
	case "throughput":
		_, err = experiments.RunThroughput(ctx, *out, *size)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed")
	}
}

func runMatch(ctx context.Context, size int, configs []metrics.AgentConfig, delay time.Duration, asJSON bool) error {
	var players [2]game.Player
	for i, config := range configs {
		// Different salts keep two seeded agents from mirroring each other
		p, err := experiments.CreatePlayer(config, uint64(i), paced(config.Kind, delay)...)
		if err != nil {
			return err
		}
		players[i] = p
	}

	e, err := engine.LocalEngine(size, game.Players{Black: players[0], White: players[1]},
		engine.WithObserver(printUpdate))
	if err != nil {
		return err
	}

	result, err := e.Run(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	if result.Winner == game.Empty {
		fmt.Printf("Draw %d-%d\n", result.Score.Black, result.Score.White)
	} else {
		fmt.Printf("%s wins %d-%d\n", result.Winner, result.Score.Black, result.Score.White)
	}
	return nil
}

func printUpdate(u engine.Update) {
	if u.Step == 0 {
		fmt.Printf("Start, %s to move\n", u.Turn)
	} else {
		fmt.Printf("Step %d: %s played %s (%d-%d)\n", u.Step, u.Color, u.Move, u.Black, u.White)
	}
	for _, row := range u.Board {
		line := make([]byte, len(row))
		for i, c := range row {
			line[i] = c.Symbol()
		}
		fmt.Println(string(line))
	}
}

// paced slows an agent down so a watcher can follow the game.
func paced(kind string, delay time.Duration) []player.Option {
	if delay <= 0 {
		return nil
	}
	if kind == metrics.RandomAgent {
		return []player.Option{player.WithDelay(delay)}
	}
	return []player.Option{player.WithMinThinkTime(delay)}
}
