package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/requestcache"
	"github.com/aliskhannn/lingua/internal/storage"
)

// AdminService manages course content and subscription records.
// Every method requires the caller to be a configured administrator.
type AdminService struct {
	store  Store
	board  *Leaderboard
	admins adminSet
}

// NewAdminService creates a new admin service.
func NewAdminService(store Store, board *Leaderboard, adminIDs []string) *AdminService {
	return &AdminService{
		store:  store,
		board:  board,
		admins: newAdminSet(adminIDs),
	}
}

func (s *AdminService) authorize(ctx context.Context) error {
	if !s.admins.contains(ctx) {
		return ErrForbidden
	}
	return nil
}

// ListCourses returns every course.
func (s *AdminService) ListCourses(ctx context.Context) ([]entities.Course, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	return s.store.Courses.List(ctx)
}

// GetCourse returns a course with its units and lessons.
func (s *AdminService) GetCourse(ctx context.Context, id int64) (*entities.Course, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	c, err := s.store.Courses.GetByID(ctx, id)
	return c, notFound(err)
}

// CreateCourse validates and inserts a course.
func (s *AdminService) CreateCourse(ctx context.Context, c *entities.Course) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	if err := validateCourse(c); err != nil {
		return err
	}
	return s.mutated(ctx, s.store.Courses.Create(ctx, c))
}

// UpdateCourse validates and overwrites a course.
func (s *AdminService) UpdateCourse(ctx context.Context, c *entities.Course) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	if err := validateCourse(c); err != nil {
		return err
	}
	return s.mutated(ctx, s.store.Courses.Update(ctx, c))
}

// DeleteCourse removes a course and everything under it.
func (s *AdminService) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	return s.mutated(ctx, s.store.Courses.Delete(ctx, id))
}

// ListUnits returns every unit.
func (s *AdminService) ListUnits(ctx context.Context) ([]entities.Unit, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	return s.store.Units.List(ctx)
}

// GetUnit returns a unit.
func (s *AdminService) GetUnit(ctx context.Context, id int64) (*entities.Unit, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	u, err := s.store.Units.GetByID(ctx, id)
	return u, notFound(err)
}

// CreateUnit validates and inserts a unit.
func (s *AdminService) CreateUnit(ctx context.Context, u *entities.Unit) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	if err := validateUnit(u); err != nil {
		return err
	}
	return s.mutated(ctx, s.store.Units.Create(ctx, u))
}

// UpdateUnit validates and overwrites a unit.
func (s *AdminService) UpdateUnit(ctx context.Context, u *entities.Unit) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	if err := validateUnit(u); err != nil {
		return err
	}
	return s.mutated(ctx, s.store.Units.Update(ctx, u))
}

// DeleteUnit removes a unit and everything under it.
func (s *AdminService) DeleteUnit(ctx context.Context, id int64) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	return s.mutated(ctx, s.store.Units.Delete(ctx, id))
}

// ListLessons returns every lesson.
func (s *AdminService) ListLessons(ctx context.Context) ([]entities.Lesson, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	return s.store.Lessons.List(ctx)
}

// GetLesson returns a lesson without its challenges.
func (s *AdminService) GetLesson(ctx context.Context, id int64) (*entities.Lesson, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	l, err := s.store.Lessons.GetByID(ctx, id)
	return l, notFound(err)
}

// CreateLesson validates and inserts a lesson.
func (s *AdminService) CreateLesson(ctx context.Context, l *entities.Lesson) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	if err := validateLesson(l); err != nil {
		return err
	}
	return s.mutated(ctx, s.store.Lessons.Create(ctx, l))
}

// UpdateLesson validates and overwrites a lesson.
func (s *AdminService) UpdateLesson(ctx context.Context, l *entities.Lesson) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	if err := validateLesson(l); err != nil {
		return err
	}
	return s.mutated(ctx, s.store.Lessons.Update(ctx, l))
}

// DeleteLesson removes a lesson and its challenges.
func (s *AdminService) DeleteLesson(ctx context.Context, id int64) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	return s.mutated(ctx, s.store.Lessons.Delete(ctx, id))
}

// ListChallenges returns every challenge.
func (s *AdminService) ListChallenges(ctx context.Context) ([]entities.Challenge, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	return s.store.Challenges.List(ctx)
}

// GetChallenge returns a challenge.
func (s *AdminService) GetChallenge(ctx context.Context, id int64) (*entities.Challenge, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	c, err := s.store.Challenges.GetByID(ctx, id)
	return c, notFound(err)
}

// CreateChallenge validates and inserts a challenge.
func (s *AdminService) CreateChallenge(ctx context.Context, c *entities.Challenge) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	if err := validateChallenge(c); err != nil {
		return err
	}
	return s.mutated(ctx, s.store.Challenges.Create(ctx, c))
}

// UpdateChallenge validates and overwrites a challenge.
func (s *AdminService) UpdateChallenge(ctx context.Context, c *entities.Challenge) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	if err := validateChallenge(c); err != nil {
		return err
	}
	return s.mutated(ctx, s.store.Challenges.Update(ctx, c))
}

// DeleteChallenge removes a challenge with its options and progress.
func (s *AdminService) DeleteChallenge(ctx context.Context, id int64) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	return s.mutated(ctx, s.store.Challenges.Delete(ctx, id))
}

// ListChallengeOptions returns every option.
func (s *AdminService) ListChallengeOptions(ctx context.Context) ([]entities.ChallengeOption, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	return s.store.Challenges.ListOptions(ctx)
}

// GetChallengeOption returns an option.
func (s *AdminService) GetChallengeOption(ctx context.Context, id int64) (*entities.ChallengeOption, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	o, err := s.store.Challenges.GetOption(ctx, id)
	return o, notFound(err)
}

// CreateChallengeOption validates and inserts an option.
func (s *AdminService) CreateChallengeOption(ctx context.Context, o *entities.ChallengeOption) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	if err := validateOption(o); err != nil {
		return err
	}
	return s.mutated(ctx, s.store.Challenges.CreateOption(ctx, o))
}

// UpdateChallengeOption validates and overwrites an option.
func (s *AdminService) UpdateChallengeOption(ctx context.Context, o *entities.ChallengeOption) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	if err := validateOption(o); err != nil {
		return err
	}
	return s.mutated(ctx, s.store.Challenges.UpdateOption(ctx, o))
}

// DeleteChallengeOption removes an option.
func (s *AdminService) DeleteChallengeOption(ctx context.Context, id int64) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	return s.mutated(ctx, s.store.Challenges.DeleteOption(ctx, id))
}

// UpsertSubscription stores the billing provider's view of a user's
// subscription.
func (s *AdminService) UpsertSubscription(ctx context.Context, sub *entities.UserSubscription) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	if sub.UserID == "" || sub.StripeCustomerID == "" || sub.StripeSubscriptionID == "" {
		return fmt.Errorf("%w: user, customer and subscription ids are required", ErrInvalidInput)
	}
	return s.mutated(ctx, s.store.Subscriptions.Upsert(ctx, sub))
}

// mutated resets request state after a successful write.
func (s *AdminService) mutated(ctx context.Context, err error) error {
	if err != nil {
		return notFound(err)
	}
	requestcache.Reset(ctx)
	s.board.Invalidate()
	return nil
}

var notFoundErrors = []error{
	storage.ErrCourseNotFound,
	storage.ErrUnitNotFound,
	storage.ErrLessonNotFound,
	storage.ErrChallengeNotFound,
	storage.ErrChallengeOptionNotFound,
	storage.ErrSubscriptionNotFound,
}

// notFound tags storage lookups that missed with ErrNotFound, and
// constraint violations caused by the payload with ErrInvalidInput or
// ErrConflict.
func notFound(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, storage.ErrMissingReference):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, storage.ErrDuplicate):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
	}
	return err
}

func validateCourse(c *entities.Course) error {
	if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.ImageSrc) == "" {
		return fmt.Errorf("%w: course title and image are required", ErrInvalidInput)
	}
	return nil
}

func validateUnit(u *entities.Unit) error {
	if u.CourseID == 0 || strings.TrimSpace(u.Title) == "" {
		return fmt.Errorf("%w: unit course and title are required", ErrInvalidInput)
	}
	return nil
}

func validateLesson(l *entities.Lesson) error {
	if l.UnitID == 0 || strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("%w: lesson unit and title are required", ErrInvalidInput)
	}
	return nil
}

func validateChallenge(c *entities.Challenge) error {
	if c.LessonID == 0 || strings.TrimSpace(c.Question) == "" {
		return fmt.Errorf("%w: challenge lesson and question are required", ErrInvalidInput)
	}
	if _, err := entities.ParseChallengeType(string(c.Type)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

func validateOption(o *entities.ChallengeOption) error {
	if o.ChallengeID == 0 || strings.TrimSpace(o.Text) == "" {
		return fmt.Errorf("%w: option challenge and text are required", ErrInvalidInput)
	}
	return nil
}
