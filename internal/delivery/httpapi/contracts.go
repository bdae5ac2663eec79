package httpapi

import (
	"context"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/service"
)

type LearnService interface {
	GetUserProgress(ctx context.Context) (*entities.UserProgress, error)
	GetUnits(ctx context.Context) ([]entities.Unit, error)
	GetCourses(ctx context.Context) ([]entities.Course, error)
	GetCourseByID(ctx context.Context, id int64) (*entities.Course, error)
	GetCourseProgress(ctx context.Context) (*service.CourseProgress, error)
	GetLesson(ctx context.Context, id *int64) (*entities.Lesson, error)
	GetLessonPercentage(ctx context.Context) (int, error)
	GetUserSubscription(ctx context.Context) (*entities.SubscriptionStatus, error)
	GetTopTenUsers(ctx context.Context) ([]entities.LeaderboardEntry, error)
	GetQuests(ctx context.Context) ([]entities.QuestProgress, error)
	IsAdmin(ctx context.Context) bool
}

type EconomyService interface {
	UpsertUserProgress(ctx context.Context, courseID int64) error
	ReduceHearts(ctx context.Context, challengeID int64) (service.HeartOutcome, error)
	RefillHearts(ctx context.Context) error
	UpsertChallengeProgress(ctx context.Context, challengeID int64) (service.HeartOutcome, error)
}

type AdminService interface {
	ListCourses(ctx context.Context) ([]entities.Course, error)
	GetCourse(ctx context.Context, id int64) (*entities.Course, error)
	CreateCourse(ctx context.Context, c *entities.Course) error
	UpdateCourse(ctx context.Context, c *entities.Course) error
	DeleteCourse(ctx context.Context, id int64) error

	ListUnits(ctx context.Context) ([]entities.Unit, error)
	GetUnit(ctx context.Context, id int64) (*entities.Unit, error)
	CreateUnit(ctx context.Context, u *entities.Unit) error
	UpdateUnit(ctx context.Context, u *entities.Unit) error
	DeleteUnit(ctx context.Context, id int64) error

	ListLessons(ctx context.Context) ([]entities.Lesson, error)
	GetLesson(ctx context.Context, id int64) (*entities.Lesson, error)
	CreateLesson(ctx context.Context, l *entities.Lesson) error
	UpdateLesson(ctx context.Context, l *entities.Lesson) error
	DeleteLesson(ctx context.Context, id int64) error

	ListChallenges(ctx context.Context) ([]entities.Challenge, error)
	GetChallenge(ctx context.Context, id int64) (*entities.Challenge, error)
	CreateChallenge(ctx context.Context, c *entities.Challenge) error
	UpdateChallenge(ctx context.Context, c *entities.Challenge) error
	DeleteChallenge(ctx context.Context, id int64) error

	ListChallengeOptions(ctx context.Context) ([]entities.ChallengeOption, error)
	GetChallengeOption(ctx context.Context, id int64) (*entities.ChallengeOption, error)
	CreateChallengeOption(ctx context.Context, o *entities.ChallengeOption) error
	UpdateChallengeOption(ctx context.Context, o *entities.ChallengeOption) error
	DeleteChallengeOption(ctx context.Context, id int64) error

	UpsertSubscription(ctx context.Context, sub *entities.UserSubscription) error
}
