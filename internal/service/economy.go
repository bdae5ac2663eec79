package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/requestcache"
	"github.com/aliskhannn/lingua/internal/requestctx"
	"github.com/aliskhannn/lingua/internal/storage"
)

// HeartOutcome tells the caller what an answer did to the economy.
type HeartOutcome string

const (
	OutcomeReduced      HeartOutcome = "reduced"      // a heart was taken
	OutcomeCompleted    HeartOutcome = "completed"    // first correct answer
	OutcomePractice     HeartOutcome = "practice"     // challenge answered before
	OutcomeSubscription HeartOutcome = "subscription" // unlimited hearts
	OutcomeHearts       HeartOutcome = "hearts"       // out of hearts
)

// EconomyService applies heart and point changes. Every write runs in one
// transaction with the user's progress row locked.
type EconomyService struct {
	store  Store
	board  *Leaderboard
	logger *zap.Logger
	now    func() time.Time
}

// NewEconomyService creates a new economy service.
func NewEconomyService(store Store, board *Leaderboard, logger *zap.Logger) *EconomyService {
	return &EconomyService{
		store:  store,
		board:  board,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces the time source used for subscription checks.
func (s *EconomyService) SetClock(now func() time.Time) {
	s.now = now
}

// UpsertUserProgress makes courseID the caller's active course and
// refreshes the display fields, creating the progress row if needed.
func (s *EconomyService) UpsertUserProgress(ctx context.Context, courseID int64) error {
	id, ok := requestctx.IdentityFromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}

	course, err := s.store.Courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, storage.ErrCourseNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("get course: %w", err)
	}
	if course.IsEmpty() {
		return ErrCourseEmpty
	}

	err = s.store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.store.UserProgress.GetForUpdate(ctx, id.UserID)
		if errors.Is(err, storage.ErrUserProgressNotFound) {
			return s.store.UserProgress.Create(ctx, entities.NewUserProgress(id.UserID, id.Name, id.ImageSrc, courseID))
		}
		if err != nil {
			return err
		}

		existing.ActiveCourseID = &courseID
		existing.SetProfile(id.Name, id.ImageSrc)
		return s.store.UserProgress.UpdateProfile(ctx, existing)
	})
	if err != nil {
		return fmt.Errorf("upsert user progress: %w", err)
	}

	s.changed(ctx)
	s.logger.Info("active course set", zap.String("user_id", id.UserID), zap.Int64("course_id", courseID))
	return nil
}

// ReduceHearts takes a heart for a wrong answer unless the challenge is
// practice or the caller has an active subscription.
func (s *EconomyService) ReduceHearts(ctx context.Context, challengeID int64) (HeartOutcome, error) {
	userID := requestctx.UserIDFromContext(ctx)
	if userID == "" {
		return "", ErrUnauthorized
	}

	var outcome HeartOutcome
	err := s.store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.getChallenge(ctx, challengeID); err != nil {
			return err
		}

		existing, err := s.findProgress(ctx, userID, challengeID)
		if err != nil {
			return err
		}
		if existing != nil {
			outcome = OutcomePractice
			return nil
		}

		progress, err := s.lockProgress(ctx, userID)
		if err != nil {
			return err
		}

		active, err := s.hasActiveSubscription(ctx, userID)
		if err != nil {
			return err
		}
		if active {
			outcome = OutcomeSubscription
			return nil
		}

		if progress.Hearts == 0 {
			outcome = OutcomeHearts
			return nil
		}

		progress.LoseHeart()
		if err := s.store.UserProgress.UpdateEconomy(ctx, userID, progress.Hearts, progress.Points); err != nil {
			return err
		}
		outcome = OutcomeReduced
		return nil
	})
	if err != nil {
		return "", wrapUnlessDomain("reduce hearts", err)
	}

	if outcome == OutcomeReduced {
		requestcache.Reset(ctx)
	}
	return outcome, nil
}

// RefillHearts spends points to restore every heart.
func (s *EconomyService) RefillHearts(ctx context.Context) error {
	userID := requestctx.UserIDFromContext(ctx)
	if userID == "" {
		return ErrUnauthorized
	}

	err := s.store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		progress, err := s.lockProgress(ctx, userID)
		if err != nil {
			return err
		}
		if progress.HeartsFull() {
			return ErrHeartsFull
		}
		if progress.Points < entities.PointsToRefill {
			return ErrNotEnoughPoints
		}

		progress.Refill()
		return s.store.UserProgress.UpdateEconomy(ctx, userID, progress.Hearts, progress.Points)
	})
	if err != nil {
		return wrapUnlessDomain("refill hearts", err)
	}

	s.changed(ctx)
	return nil
}

// UpsertChallengeProgress records a correct answer. A repeated challenge
// is practice and restores a heart; a new one needs a heart to spare
// unless the caller has an active subscription.
func (s *EconomyService) UpsertChallengeProgress(ctx context.Context, challengeID int64) (HeartOutcome, error) {
	userID := requestctx.UserIDFromContext(ctx)
	if userID == "" {
		return "", ErrUnauthorized
	}

	var outcome HeartOutcome
	err := s.store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		progress, err := s.lockProgress(ctx, userID)
		if err != nil {
			return err
		}

		active, err := s.hasActiveSubscription(ctx, userID)
		if err != nil {
			return err
		}

		if _, err := s.getChallenge(ctx, challengeID); err != nil {
			return err
		}

		existing, err := s.findProgress(ctx, userID, challengeID)
		if err != nil {
			return err
		}

		if existing == nil && progress.Hearts == 0 && !active {
			outcome = OutcomeHearts
			return nil
		}

		progress.Points += entities.PointsPerChallenge

		if existing != nil {
			if err := s.store.ChallengeProgress.MarkCompleted(ctx, existing.ID); err != nil {
				return err
			}
			progress.GainHeart()
			outcome = OutcomePractice
		} else {
			err := s.store.ChallengeProgress.Create(ctx, &entities.ChallengeProgress{
				UserID:      userID,
				ChallengeID: challengeID,
				Completed:   true,
			})
			if err != nil {
				return err
			}
			outcome = OutcomeCompleted
		}

		return s.store.UserProgress.UpdateEconomy(ctx, userID, progress.Hearts, progress.Points)
	})
	if err != nil {
		return "", wrapUnlessDomain("upsert challenge progress", err)
	}

	if outcome != OutcomeHearts {
		s.changed(ctx)
		s.logger.Debug("challenge answered",
			zap.String("user_id", userID),
			zap.Int64("challenge_id", challengeID),
			zap.String("outcome", string(outcome)),
		)
	}
	return outcome, nil
}

func (s *EconomyService) getChallenge(ctx context.Context, id int64) (*entities.Challenge, error) {
	c, err := s.store.Challenges.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrChallengeNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	return c, nil
}

// findProgress returns nil without error when there is no row.
func (s *EconomyService) findProgress(ctx context.Context, userID string, challengeID int64) (*entities.ChallengeProgress, error) {
	p, err := s.store.ChallengeProgress.Get(ctx, userID, challengeID)
	if errors.Is(err, storage.ErrChallengeProgressNotFound) {
		return nil, nil
	}
	return p, err
}

func (s *EconomyService) lockProgress(ctx context.Context, userID string) (*entities.UserProgress, error) {
	p, err := s.store.UserProgress.GetForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserProgressNotFound) {
			return nil, ErrUserProgressNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *EconomyService) hasActiveSubscription(ctx context.Context, userID string) (bool, error) {
	sub, err := s.store.Subscriptions.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrSubscriptionNotFound) {
			return false, nil
		}
		return false, err
	}
	return sub.IsActive(s.now()), nil
}

// changed drops memoized reads and the leaderboard snapshot after a write.
func (s *EconomyService) changed(ctx context.Context) {
	requestcache.Reset(ctx)
	s.board.Invalidate()
}

var domainErrors = []error{
	ErrUnauthorized,
	ErrCourseNotFound,
	ErrCourseEmpty,
	ErrChallengeNotFound,
	ErrUserProgressNotFound,
	ErrHeartsFull,
	ErrNotEnoughPoints,
}

// wrapUnlessDomain returns domain sentinels as is and wraps anything else.
func wrapUnlessDomain(op string, err error) error {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
