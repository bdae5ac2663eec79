package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/aliskhannn/lingua/internal/infra/sqlite"
	"github.com/aliskhannn/lingua/internal/service"
)

// NewStore wires every SQLite repository over one connection.
func NewStore(db *sqlx.DB) service.Store {
	return service.Store{
		Tx:                sqlite.NewTransactor(db),
		Courses:           NewCourseRepository(db),
		Units:             NewUnitRepository(db),
		Lessons:           NewLessonRepository(db),
		Challenges:        NewChallengeRepository(db),
		ChallengeProgress: NewChallengeProgressRepository(db),
		UserProgress:      NewUserProgressRepository(db),
		Subscriptions:     NewSubscriptionRepository(db),
	}
}
