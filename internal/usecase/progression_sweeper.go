package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/Tejas544/gully-scorer/internal/domain/season"
	"github.com/Tejas544/gully-scorer/internal/platform/logging"
)

const defaultSweepWorkers = 4

type progressionChecker interface {
	Check(ctx context.Context, seasonID string) (ProgressionResult, error)
}

type SweepResult struct {
	Checked int
	Created int
	Failed  int
}

// ProgressionSweeper re-runs progression for every season so a lost completion event
// never leaves a season stuck.
type ProgressionSweeper struct {
	seasons     season.Repository
	progression progressionChecker
	workers     int
	logger      *logging.Logger
}

func NewProgressionSweeper(seasons season.Repository, progression progressionChecker, workers int, logger *logging.Logger) *ProgressionSweeper {
	if workers <= 0 {
		workers = defaultSweepWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ProgressionSweeper{
		seasons:     seasons,
		progression: progression,
		workers:     workers,
		logger:      logger,
	}
}

// Sweep checks every season once. Individual season failures are counted, not returned.
func (s *ProgressionSweeper) Sweep(ctx context.Context) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProgressionSweeper.Sweep")
	defer span.End()

	items, err := s.seasons.List(ctx)
	if err != nil {
		return SweepResult{}, classifyStoreError(fmt.Errorf("list seasons: %w", err))
	}
	if len(items) == 0 {
		return SweepResult{}, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return SweepResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var created atomic.Int32
	var failed atomic.Int32

	var workers sync.WaitGroup
	for _, item := range items {
		seasonID := item.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			result, err := s.progression.Check(ctx, seasonID)
			if err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "progression sweep failed", "season_id", seasonID, "error", err)
				return
			}
			if result.Created != nil {
				created.Add(1)
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return SweepResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	result := SweepResult{
		Checked: len(items),
		Created: int(created.Load()),
		Failed:  int(failed.Load()),
	}
	if result.Created > 0 || result.Failed > 0 {
		s.logger.InfoContext(ctx, "progression sweep finished",
			"checked", result.Checked,
			"created", result.Created,
			"failed", result.Failed,
		)
	}
	return result, nil
}

// Run sweeps on every tick until ctx is done.
func (s *ProgressionSweeper) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
				s.logger.WarnContext(ctx, "progression sweep aborted", "error", err)
			}
		}
	}
}
