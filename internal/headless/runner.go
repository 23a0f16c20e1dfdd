// Package headless runs game sessions without a terminal. A batch steps
// several seeded sessions in parallel under a scripted input policy and
// reports how each one ended, including a state checksum for determinism
// checks.
package headless

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/gravity-arcade/internal/core"
	"github.com/vovakirdan/gravity-arcade/internal/logging"
	"github.com/vovakirdan/gravity-arcade/internal/registry"
)

// Phase names reported per run.
const (
	PhaseRunning = "running"
	PhaseLost    = "lost"
	PhaseWon     = "won"
)

// ctxCheckEvery is how many ticks pass between cancellation checks.
const ctxCheckEvery = 256

// Options configures a batch.
type Options struct {
	GameID   string
	Runs     int
	Ticks    int   // upper bound per run; a run stops early when it ends
	Seed     int64 // run i uses Seed+i
	TickRate int
	Parallel int // concurrent runs; 0 means GOMAXPROCS
	Logger   *log.Logger
}

// Result is the outcome of one run.
type Result struct {
	Run      int
	Seed     int64
	Phase    string
	Score    int
	Ticks    int
	Checksum uint64
}

// Report is the outcome of a batch.
type Report struct {
	ID      string
	GameID  string
	Results []Result
}

// Run executes the batch. Results are ordered by run index regardless of
// completion order.
func Run(ctx context.Context, opts Options) (Report, error) {
	if !registry.Exists(opts.GameID) {
		return Report{}, fmt.Errorf("headless: %w: %q", registry.ErrUnknownGame, opts.GameID)
	}
	if opts.Runs <= 0 || opts.Ticks <= 0 {
		return Report{}, fmt.Errorf("headless: runs and ticks must be positive (runs=%d ticks=%d)", opts.Runs, opts.Ticks)
	}
	if opts.TickRate <= 0 {
		opts.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Parallel <= 0 {
		opts.Parallel = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	report := Report{
		ID:      uuid.NewString(),
		GameID:  opts.GameID,
		Results: make([]Result, opts.Runs),
	}
	logger.Info("batch started", "batch", report.ID, "game", opts.GameID, "runs", opts.Runs, "ticks", opts.Ticks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)
	for i := 0; i < opts.Runs; i++ {
		g.Go(func() error {
			res, err := runOne(ctx, opts, i)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			report.Results[i] = res
			logger.Debug("run finished", "batch", report.ID, "run", i, "phase", res.Phase, "score", res.Score, "ticks", res.Ticks)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

// runOne plays a single session to its end or the tick limit.
func runOne(ctx context.Context, opts Options, run int) (Result, error) {
	game, err := registry.Create(opts.GameID)
	if err != nil {
		return Result{}, err
	}

	cfg := core.DefaultConfig()
	cfg.TickRate = opts.TickRate
	cfg.Seed = opts.Seed + int64(run)
	game.Reset(cfg)

	policy := NewPolicy(cfg.Seed, cfg.ScreenW, cfg.ScreenH)
	res := Result{Run: run, Seed: cfg.Seed}
	state := game.State()
	for res.Ticks < opts.Ticks && !state.GameOver {
		if res.Ticks%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		state = game.Step(policy.Next()).State
		res.Ticks++
	}

	res.Score = state.Score
	res.Phase = phaseOf(state)
	if c, ok := game.(registry.Checksummer); ok {
		res.Checksum = c.Checksum()
	}
	return res, nil
}

func phaseOf(s core.GameState) string {
	switch {
	case s.GameOver && s.Won:
		return PhaseWon
	case s.GameOver:
		return PhaseLost
	}
	return PhaseRunning
}
