package service

import (
	"context"

	"github.com/aliskhannn/lingua/internal/domain/entities"
)

// Transactor runs fn inside a database transaction carried by ctx.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type CourseRepository interface {
	List(ctx context.Context) ([]entities.Course, error)
	// GetByID returns the course with its units and their lessons, both ordered.
	GetByID(ctx context.Context, id int64) (*entities.Course, error)
	Create(ctx context.Context, c *entities.Course) error
	Update(ctx context.Context, c *entities.Course) error
	Delete(ctx context.Context, id int64) error
}

type UnitRepository interface {
	// ListWithProgress returns the course units with ordered lessons,
	// ordered challenges and the user's progress rows.
	ListWithProgress(ctx context.Context, courseID int64, userID string) ([]entities.Unit, error)
	List(ctx context.Context) ([]entities.Unit, error)
	GetByID(ctx context.Context, id int64) (*entities.Unit, error)
	Create(ctx context.Context, u *entities.Unit) error
	Update(ctx context.Context, u *entities.Unit) error
	Delete(ctx context.Context, id int64) error
}

type LessonRepository interface {
	// GetWithChallenges returns the lesson with ordered challenges, their
	// options and the user's progress rows.
	GetWithChallenges(ctx context.Context, lessonID int64, userID string) (*entities.Lesson, error)
	List(ctx context.Context) ([]entities.Lesson, error)
	GetByID(ctx context.Context, id int64) (*entities.Lesson, error)
	Create(ctx context.Context, l *entities.Lesson) error
	Update(ctx context.Context, l *entities.Lesson) error
	Delete(ctx context.Context, id int64) error
}

type ChallengeRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Challenge, error)
	List(ctx context.Context) ([]entities.Challenge, error)
	Create(ctx context.Context, c *entities.Challenge) error
	Update(ctx context.Context, c *entities.Challenge) error
	Delete(ctx context.Context, id int64) error

	ListOptions(ctx context.Context) ([]entities.ChallengeOption, error)
	GetOption(ctx context.Context, id int64) (*entities.ChallengeOption, error)
	CreateOption(ctx context.Context, o *entities.ChallengeOption) error
	UpdateOption(ctx context.Context, o *entities.ChallengeOption) error
	DeleteOption(ctx context.Context, id int64) error
}

type ChallengeProgressRepository interface {
	Get(ctx context.Context, userID string, challengeID int64) (*entities.ChallengeProgress, error)
	Create(ctx context.Context, p *entities.ChallengeProgress) error
	MarkCompleted(ctx context.Context, id int64) error
}

type UserProgressRepository interface {
	// Get returns the progress with its active course attached.
	Get(ctx context.Context, userID string) (*entities.UserProgress, error)
	// GetForUpdate locks the row for the surrounding transaction.
	GetForUpdate(ctx context.Context, userID string) (*entities.UserProgress, error)
	Create(ctx context.Context, p *entities.UserProgress) error
	UpdateProfile(ctx context.Context, p *entities.UserProgress) error
	UpdateEconomy(ctx context.Context, userID string, hearts, points int) error
	TopByPoints(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error)
}

type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entities.UserSubscription, error)
	Upsert(ctx context.Context, s *entities.UserSubscription) error
}

// Store bundles one storage driver's repositories.
type Store struct {
	Tx                Transactor
	Courses           CourseRepository
	Units             UnitRepository
	Lessons           LessonRepository
	Challenges        ChallengeRepository
	ChallengeProgress ChallengeProgressRepository
	UserProgress      UserProgressRepository
	Subscriptions     SubscriptionRepository
}
