package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/lingua/internal/infra/postgres"
	"github.com/aliskhannn/lingua/internal/service"
)

// NewStore wires every Postgres repository over one pool.
func NewStore(pool *pgxpool.Pool) service.Store {
	return service.Store{
		Tx:                postgres.NewTransactor(pool),
		Courses:           NewCourseRepository(pool),
		Units:             NewUnitRepository(pool),
		Lessons:           NewLessonRepository(pool),
		Challenges:        NewChallengeRepository(pool),
		ChallengeProgress: NewChallengeProgressRepository(pool),
		UserProgress:      NewUserProgressRepository(pool),
		Subscriptions:     NewSubscriptionRepository(pool),
	}
}
