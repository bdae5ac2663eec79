//go:build integration

package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/infra/postgres"
	"github.com/aliskhannn/lingua/internal/infra/postgres/repository"
	"github.com/aliskhannn/lingua/internal/service"
	"github.com/aliskhannn/lingua/internal/storage"
)

// Run with: LINGUA_TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infra/postgres/...
func newStore(t *testing.T) service.Store {
	t.Helper()

	dsn := os.Getenv("LINGUA_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("LINGUA_TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{MaxConns: 8})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `
		TRUNCATE courses, units, lessons, challenges, challenge_options,
			challenge_progress, user_progress, user_subscription
		RESTART IDENTITY CASCADE
	`)
	require.NoError(t, err)

	return repository.NewStore(pool)
}

func seedCourse(t *testing.T, s service.Store) (entities.Course, entities.Challenge) {
	t.Helper()
	ctx := context.Background()

	course := entities.Course{Title: "Spanish", ImageSrc: "/es.svg"}
	require.NoError(t, s.Courses.Create(ctx, &course))
	unit := entities.Unit{CourseID: course.ID, Title: "Unit 1", Order: 1}
	require.NoError(t, s.Units.Create(ctx, &unit))
	lesson := entities.Lesson{UnitID: unit.ID, Title: "Nouns", Order: 1}
	require.NoError(t, s.Lessons.Create(ctx, &lesson))
	challenge := entities.Challenge{LessonID: lesson.ID, Type: entities.ChallengeAssist, Question: "the man", Order: 1}
	require.NoError(t, s.Challenges.Create(ctx, &challenge))
	return course, challenge
}

func TestUserProgressRepository_GetForUpdateSerializesWriters(t *testing.T) {
	s := newStore(t)
	course, _ := seedCourse(t, s)
	ctx := context.Background()

	require.NoError(t, s.UserProgress.Create(ctx, entities.NewUserProgress("user_a", "Ana", "", course.ID)))

	const writers = 10
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
				p, err := s.UserProgress.GetForUpdate(ctx, "user_a")
				if err != nil {
					return err
				}
				return s.UserProgress.UpdateEconomy(ctx, "user_a", p.Hearts, p.Points+entities.PointsPerChallenge)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, err := s.UserProgress.Get(ctx, "user_a")
	require.NoError(t, err)
	assert.Equal(t, writers*entities.PointsPerChallenge, p.Points, "no update is lost")
	require.NotNil(t, p.ActiveCourse)
	assert.Equal(t, "Spanish", p.ActiveCourse.Title)
}

func TestSubscriptionRepository_UpsertKeepsRow(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	sub := entities.UserSubscription{
		UserID: "user_a", StripeCustomerID: "cus_1", StripeSubscriptionID: "sub_1",
		StripePriceID: "price_1", StripeCurrentPeriodEnd: &end,
	}
	require.NoError(t, s.Subscriptions.Upsert(ctx, &sub))
	firstID := sub.ID

	later := end.Add(30 * 24 * time.Hour)
	again := sub
	again.ID = 0
	again.StripeCurrentPeriodEnd = &later
	require.NoError(t, s.Subscriptions.Upsert(ctx, &again))
	assert.Equal(t, firstID, again.ID)

	got, err := s.Subscriptions.GetByUserID(ctx, "user_a")
	require.NoError(t, err)
	require.NotNil(t, got.StripeCurrentPeriodEnd)
	assert.True(t, later.Equal(*got.StripeCurrentPeriodEnd))

	other := entities.UserSubscription{
		UserID: "user_b", StripeCustomerID: "cus_2", StripeSubscriptionID: "sub_1", StripePriceID: "price_1",
	}
	assert.ErrorIs(t, s.Subscriptions.Upsert(ctx, &other), storage.ErrDuplicate)
}

func TestRepositories_MissingParent(t *testing.T) {
	s := newStore(t)
	_, challenge := seedCourse(t, s)
	ctx := context.Background()

	err := s.Units.Create(ctx, &entities.Unit{CourseID: 9999, Title: "orphan", Order: 1})
	assert.ErrorIs(t, err, storage.ErrMissingReference)

	err = s.Challenges.CreateOption(ctx, &entities.ChallengeOption{ChallengeID: 9999, Text: "x"})
	assert.ErrorIs(t, err, storage.ErrMissingReference)

	p := entities.ChallengeProgress{UserID: "user_a", ChallengeID: challenge.ID, Completed: true}
	require.NoError(t, s.ChallengeProgress.Create(ctx, &p))
	dup := entities.ChallengeProgress{UserID: "user_a", ChallengeID: challenge.ID}
	assert.ErrorIs(t, s.ChallengeProgress.Create(ctx, &dup), storage.ErrDuplicate)
}
