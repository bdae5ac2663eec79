package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/requestcache"
	"github.com/aliskhannn/lingua/internal/requestctx"
	"github.com/aliskhannn/lingua/internal/storage"
)

// CourseProgress points at the lesson the user should continue with.
type CourseProgress struct {
	ActiveLesson   *entities.Lesson `json:"activeLesson"`
	ActiveLessonID *int64           `json:"activeLessonId"`
}

// LearnService answers read queries for the caller in ctx. Every query is
// memoized for the lifetime of the request cache.
type LearnService struct {
	store  Store
	board  *Leaderboard
	admins adminSet
	now    func() time.Time
}

// NewLearnService creates a new learn service.
func NewLearnService(store Store, board *Leaderboard, adminIDs []string) *LearnService {
	return &LearnService{
		store:  store,
		board:  board,
		admins: newAdminSet(adminIDs),
		now:    time.Now,
	}
}

// SetClock replaces the time source used for subscription checks.
func (s *LearnService) SetClock(now func() time.Time) {
	s.now = now
}

// GetUserProgress returns the caller's progress with the active course,
// or nil when the caller is anonymous or has not started.
func (s *LearnService) GetUserProgress(ctx context.Context) (*entities.UserProgress, error) {
	userID := requestctx.UserIDFromContext(ctx)
	if userID == "" {
		return nil, nil
	}

	return requestcache.Do(ctx, "user_progress:"+userID, func(ctx context.Context) (*entities.UserProgress, error) {
		p, err := s.store.UserProgress.Get(ctx, userID)
		if err != nil {
			if errors.Is(err, storage.ErrUserProgressNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("get user progress: %w", err)
		}
		return p, nil
	})
}

// GetUnits returns the active course's units with the caller's progress.
func (s *LearnService) GetUnits(ctx context.Context) ([]entities.Unit, error) {
	userID := requestctx.UserIDFromContext(ctx)
	if userID == "" {
		return []entities.Unit{}, nil
	}

	return requestcache.Do(ctx, "units:"+userID, func(ctx context.Context) ([]entities.Unit, error) {
		progress, err := s.GetUserProgress(ctx)
		if err != nil {
			return nil, err
		}
		if !progress.HasActiveCourse() {
			return []entities.Unit{}, nil
		}

		units, err := s.store.Units.ListWithProgress(ctx, *progress.ActiveCourseID, userID)
		if err != nil {
			return nil, fmt.Errorf("list units: %w", err)
		}
		return units, nil
	})
}

// GetCourses returns every course.
func (s *LearnService) GetCourses(ctx context.Context) ([]entities.Course, error) {
	return requestcache.Do(ctx, "courses", func(ctx context.Context) ([]entities.Course, error) {
		courses, err := s.store.Courses.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list courses: %w", err)
		}
		return courses, nil
	})
}

// GetCourseByID returns the course with units and lessons, or nil.
func (s *LearnService) GetCourseByID(ctx context.Context, id int64) (*entities.Course, error) {
	key := "course:" + strconv.FormatInt(id, 10)
	return requestcache.Do(ctx, key, func(ctx context.Context) (*entities.Course, error) {
		c, err := s.store.Courses.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrCourseNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("get course: %w", err)
		}
		return c, nil
	})
}

// GetCourseProgress finds the first lesson with an uncompleted challenge.
// It returns nil when the caller is anonymous or has no active course.
func (s *LearnService) GetCourseProgress(ctx context.Context) (*CourseProgress, error) {
	userID := requestctx.UserIDFromContext(ctx)
	if userID == "" {
		return nil, nil
	}

	return requestcache.Do(ctx, "course_progress:"+userID, func(ctx context.Context) (*CourseProgress, error) {
		progress, err := s.GetUserProgress(ctx)
		if err != nil {
			return nil, err
		}
		if !progress.HasActiveCourse() {
			return nil, nil
		}

		units, err := s.store.Units.ListWithProgress(ctx, *progress.ActiveCourseID, userID)
		if err != nil {
			return nil, fmt.Errorf("list units: %w", err)
		}

		out := &CourseProgress{}
		if lesson := entities.FirstUncompletedLesson(units); lesson != nil {
			out.ActiveLesson = lesson
			id := lesson.ID
			out.ActiveLessonID = &id
		}
		return out, nil
	})
}

// GetLesson returns a lesson with options and the caller's progress.
// A nil id selects the active lesson. The result is nil when there is no
// such lesson.
func (s *LearnService) GetLesson(ctx context.Context, id *int64) (*entities.Lesson, error) {
	userID := requestctx.UserIDFromContext(ctx)
	if userID == "" {
		return nil, nil
	}

	lessonID := id
	if lessonID == nil {
		cp, err := s.GetCourseProgress(ctx)
		if err != nil {
			return nil, err
		}
		if cp == nil || cp.ActiveLessonID == nil {
			return nil, nil
		}
		lessonID = cp.ActiveLessonID
	}

	key := "lesson:" + userID + ":" + strconv.FormatInt(*lessonID, 10)
	return requestcache.Do(ctx, key, func(ctx context.Context) (*entities.Lesson, error) {
		lesson, err := s.store.Lessons.GetWithChallenges(ctx, *lessonID, userID)
		if err != nil {
			if errors.Is(err, storage.ErrLessonNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("get lesson: %w", err)
		}
		return lesson, nil
	})
}

// GetLessonPercentage returns the active lesson's completion, 0 if none.
func (s *LearnService) GetLessonPercentage(ctx context.Context) (int, error) {
	lesson, err := s.GetLesson(ctx, nil)
	if err != nil {
		return 0, err
	}
	if lesson == nil {
		return 0, nil
	}
	return lesson.Percentage(), nil
}

// GetUserSubscription returns the caller's subscription with its derived
// state, or nil when there is none.
func (s *LearnService) GetUserSubscription(ctx context.Context) (*entities.SubscriptionStatus, error) {
	userID := requestctx.UserIDFromContext(ctx)
	if userID == "" {
		return nil, nil
	}

	return requestcache.Do(ctx, "subscription:"+userID, func(ctx context.Context) (*entities.SubscriptionStatus, error) {
		sub, err := s.store.Subscriptions.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, storage.ErrSubscriptionNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("get subscription: %w", err)
		}
		return &entities.SubscriptionStatus{
			UserSubscription: *sub,
			IsActive:         sub.IsActive(s.now()),
		}, nil
	})
}

// GetTopTenUsers returns the leaderboard. Anonymous callers get nothing.
func (s *LearnService) GetTopTenUsers(ctx context.Context) ([]entities.LeaderboardEntry, error) {
	if requestctx.UserIDFromContext(ctx) == "" {
		return []entities.LeaderboardEntry{}, nil
	}
	return requestcache.Do(ctx, "top_ten", s.board.Top)
}

// GetQuests evaluates the quest list against the caller's points.
func (s *LearnService) GetQuests(ctx context.Context) ([]entities.QuestProgress, error) {
	progress, err := s.GetUserProgress(ctx)
	if err != nil {
		return nil, err
	}
	points := 0
	if progress != nil {
		points = progress.Points
	}
	return entities.EvaluateQuests(points), nil
}

// IsAdmin reports whether the caller is a configured administrator.
func (s *LearnService) IsAdmin(ctx context.Context) bool {
	return s.admins.contains(ctx)
}
