// Package eval runs policies against the grid world and collects
// per-episode statistics.
package eval

import (
	"context"
	"log/slog"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"gridmdp/internal/agent"
	"gridmdp/internal/config"
	"gridmdp/internal/env"
	"gridmdp/internal/logging"
)

// PolicyFactory builds a fresh policy for one episode from its own rng
type PolicyFactory func(rng *rand.Rand) agent.Policy

// Runner plays whole episodes. Each episode gets its own Environment and
// random sources, so episodes may run concurrently while every Environment
// is still driven by a single goroutine.
type Runner struct {
	grid          *env.Grid
	moveProb      float64
	defaultReward float64
	maxSteps      int
	workers       int
	baseSeed      int64
	newPolicy     PolicyFactory
	logger        *slog.Logger
}

// NewRunner creates a runner for the configured grid with a random policy
func NewRunner(cfg *config.Config, logger *slog.Logger) (*Runner, error) {
	grid, err := env.NewGrid(cfg.Env.Grid)
	if err != nil {
		return nil, err
	}
	// surface option errors once instead of per episode
	if _, err := env.New(grid, env.WithMoveProb(*cfg.Env.MoveProb)); err != nil {
		return nil, err
	}

	workers := cfg.Episodes.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &Runner{
		grid:          grid,
		moveProb:      *cfg.Env.MoveProb,
		defaultReward: *cfg.Env.DefaultReward,
		maxSteps:      cfg.Episodes.MaxSteps,
		workers:       workers,
		baseSeed:      cfg.Seed,
		newPolicy:     func(rng *rand.Rand) agent.Policy { return agent.NewRandom(rng) },
		logger:        logger,
	}, nil
}

// SetPolicy replaces the policy used for subsequent episodes
func (r *Runner) SetPolicy(f PolicyFactory) {
	r.newPolicy = f
}

// NewEnvironment builds an environment whose transitions are seeded by seed
func (r *Runner) NewEnvironment(seed int64) *env.Environment {
	e, _ := env.New(r.grid,
		env.WithMoveProb(r.moveProb),
		env.WithDefaultReward(r.defaultReward),
		env.WithRand(rand.New(rand.NewSource(seed))),
		env.WithLogger(r.logger),
	)
	return e
}

// policySeed derives the policy's seed from the episode seed so the two
// random streams never coincide
func policySeed(seed int64) int64 {
	return rand.New(rand.NewSource(seed)).Int63()
}

// RunEpisode plays one episode from reset until a terminal cell or the step cap
func (r *Runner) RunEpisode(episode int, seed int64) env.EpisodeStats {
	return r.play(episode, seed, nil)
}

// RunWithReplay plays one episode and records every action and landing cell
func (r *Runner) RunWithReplay(episode int, seed int64) (*env.Replay, env.EpisodeStats) {
	replay := env.NewReplay(seed)
	stats := r.play(episode, seed, replay)
	replay.SetFinalStats(stats)
	return replay, stats
}

func (r *Runner) play(episode int, seed int64, replay *env.Replay) env.EpisodeStats {
	e := r.NewEnvironment(seed)
	policy := r.newPolicy(rand.New(rand.NewSource(policySeed(seed))))

	stats := env.EpisodeStats{Episode: episode, Seed: seed}
	state := e.Reset()
	done := false
	for !done && stats.Steps < r.maxSteps {
		action := policy.Act(state)
		res := e.Step(action)
		if res.Halted {
			// started on a cell with no way out
			done = true
			break
		}
		if replay != nil {
			replay.Record(action, res.Next)
		}
		stats.Steps++
		stats.TotalReward += res.Reward
		state = res.Next
		done = res.Done
	}

	stats.Final = e.Current()
	if done {
		stats.Outcome = e.OutcomeOf(stats.Final)
	} else {
		stats.Outcome = env.OutcomeTruncated
	}

	r.logger.Debug("episode finished",
		"episode", episode,
		"seed", seed,
		"steps", stats.Steps,
		"reward", stats.TotalReward,
		"outcome", stats.Outcome,
	)
	return stats
}

// RunSeeds plays one episode per seed on a bounded worker pool. Results keep
// the order of seeds.
func (r *Runner) RunSeeds(ctx context.Context, seeds []int64) ([]env.EpisodeStats, error) {
	results := make([]env.EpisodeStats, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.RunEpisode(i+1, seed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Run plays count episodes seeded baseSeed, baseSeed+1, ...
func (r *Runner) Run(ctx context.Context, count int) ([]env.EpisodeStats, error) {
	seeds := make([]int64, count)
	for i := range seeds {
		seeds[i] = r.baseSeed + int64(i)
	}
	return r.RunSeeds(ctx, seeds)
}
