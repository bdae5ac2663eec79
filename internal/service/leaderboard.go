package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua/internal/domain/entities"
)

// TopUsersLimit is the leaderboard size.
const TopUsersLimit = 10

// Leaderboard keeps a snapshot of the top users. The snapshot is rebuilt
// on a cron schedule and dropped whenever points change.
type Leaderboard struct {
	repo   UserProgressRepository
	logger *zap.Logger

	mu    sync.RWMutex
	top   []entities.LeaderboardEntry
	fresh bool
	// gen counts invalidations; a load started before one is not kept.
	gen uint64
}

// NewLeaderboard creates a new leaderboard over the progress repository.
func NewLeaderboard(repo UserProgressRepository, logger *zap.Logger) *Leaderboard {
	return &Leaderboard{repo: repo, logger: logger}
}

// Top returns the snapshot, loading it first when it is stale.
func (b *Leaderboard) Top(ctx context.Context) ([]entities.LeaderboardEntry, error) {
	b.mu.RLock()
	if b.fresh {
		top := slices.Clone(b.top)
		b.mu.RUnlock()
		return top, nil
	}
	b.mu.RUnlock()

	return b.Refresh(ctx)
}

// Refresh rebuilds the snapshot from the repository. A result loaded while
// the snapshot was invalidated is returned but not stored.
func (b *Leaderboard) Refresh(ctx context.Context) ([]entities.LeaderboardEntry, error) {
	b.mu.RLock()
	gen := b.gen
	b.mu.RUnlock()

	top, err := b.repo.TopByPoints(ctx, TopUsersLimit)
	if err != nil {
		return nil, fmt.Errorf("top by points: %w", err)
	}

	b.mu.Lock()
	if b.gen == gen {
		b.top = top
		b.fresh = true
	}
	b.mu.Unlock()

	return slices.Clone(top), nil
}

// Invalidate marks the snapshot stale so the next read reloads it.
func (b *Leaderboard) Invalidate() {
	b.mu.Lock()
	b.fresh = false
	b.gen++
	b.mu.Unlock()
}

// Start refreshes the snapshot on spec until ctx is cancelled.
func (b *Leaderboard) Start(ctx context.Context, spec string) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(spec, func() {
		if _, err := b.Refresh(ctx); err != nil {
			b.logger.Error("failed to refresh leaderboard", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add leaderboard cron job: %w", err)
	}

	c.Start()
	b.logger.Info("leaderboard refresher started", zap.String("spec", spec))

	<-ctx.Done()

	<-c.Stop().Done()
	b.logger.Info("leaderboard refresher stopped")
	return nil
}
