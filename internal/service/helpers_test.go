package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/infra/sqlite"
	"github.com/aliskhannn/lingua/internal/infra/sqlite/repository"
	"github.com/aliskhannn/lingua/internal/requestcache"
	"github.com/aliskhannn/lingua/internal/requestctx"
	"github.com/aliskhannn/lingua/internal/service"
)

var testNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

type env struct {
	store   service.Store
	board   *service.Leaderboard
	learn   *service.LearnService
	economy *service.EconomyService
	admin   *service.AdminService
	course  entities.Course
	// challenges of the first lesson, then of the second, in display order
	challenges []entities.Challenge
	lessons    []entities.Lesson
}

func newEnv(t *testing.T) *env {
	t.Helper()

	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	store := repository.NewStore(db)
	board := service.NewLeaderboard(store.UserProgress, zap.NewNop())

	e := &env{
		store:   store,
		board:   board,
		learn:   service.NewLearnService(store, board, []string{"admin"}),
		economy: service.NewEconomyService(store, board, zap.NewNop()),
		admin:   service.NewAdminService(store, board, []string{"admin"}),
	}
	e.learn.SetClock(func() time.Time { return testNow })
	e.economy.SetClock(func() time.Time { return testNow })

	e.seed(t)
	return e
}

// seed builds one course with a unit of two lessons, two challenges each.
func (e *env) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	e.course = entities.Course{Title: "Spanish", ImageSrc: "/es.svg"}
	require.NoError(t, e.store.Courses.Create(ctx, &e.course))

	unit := entities.Unit{CourseID: e.course.ID, Title: "Unit 1", Description: "Basics", Order: 1}
	require.NoError(t, e.store.Units.Create(ctx, &unit))

	for i := 1; i <= 2; i++ {
		lesson := entities.Lesson{UnitID: unit.ID, Title: "Lesson", Order: i}
		require.NoError(t, e.store.Lessons.Create(ctx, &lesson))
		e.lessons = append(e.lessons, lesson)

		for j := 1; j <= 2; j++ {
			c := entities.Challenge{
				LessonID: lesson.ID,
				Type:     entities.ChallengeAssist,
				Question: "the man",
				Order:    j,
			}
			require.NoError(t, e.store.Challenges.Create(ctx, &c))
			require.NoError(t, e.store.Challenges.CreateOption(ctx, &entities.ChallengeOption{
				ChallengeID: c.ID, Text: "el hombre", Correct: true,
			}))
			e.challenges = append(e.challenges, c)
		}
	}
}

// as returns a request context for the user with a fresh request cache.
func as(userID string) context.Context {
	ctx := requestcache.WithCache(context.Background())
	if userID == "" {
		return ctx
	}
	return requestctx.WithIdentity(ctx, requestctx.Identity{UserID: userID, Name: "Ana", ImageSrc: "/ana.png"})
}

// start enrolls the user in the seeded course.
func (e *env) start(t *testing.T, userID string) {
	t.Helper()
	require.NoError(t, e.economy.UpsertUserProgress(as(userID), e.course.ID))
}

func (e *env) setEconomy(t *testing.T, userID string, hearts, points int) {
	t.Helper()
	require.NoError(t, e.store.UserProgress.UpdateEconomy(context.Background(), userID, hearts, points))
}

func (e *env) subscribe(t *testing.T, userID string, periodEnd time.Time) {
	t.Helper()
	require.NoError(t, e.store.Subscriptions.Upsert(context.Background(), &entities.UserSubscription{
		UserID:                 userID,
		StripeCustomerID:       "cus_" + userID,
		StripeSubscriptionID:   "sub_" + userID,
		StripePriceID:          "price_monthly",
		StripeCurrentPeriodEnd: &periodEnd,
	}))
}
