package repository

import (
	"database/sql"
	"time"

	"github.com/aliskhannn/lingua/internal/domain/entities"
)

// Row types mirror table columns for sqlx scanning.

type courseRow struct {
	ID       int64  `db:"id"`
	Title    string `db:"title"`
	ImageSrc string `db:"image_src"`
}

func (r courseRow) entity() entities.Course {
	return entities.Course{ID: r.ID, Title: r.Title, ImageSrc: r.ImageSrc}
}

type unitRow struct {
	ID          int64  `db:"id"`
	CourseID    int64  `db:"course_id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	SortOrder   int    `db:"sort_order"`
}

func (r unitRow) entity() entities.Unit {
	return entities.Unit{
		ID:          r.ID,
		CourseID:    r.CourseID,
		Title:       r.Title,
		Description: r.Description,
		Order:       r.SortOrder,
	}
}

type lessonRow struct {
	ID        int64  `db:"id"`
	UnitID    int64  `db:"unit_id"`
	Title     string `db:"title"`
	SortOrder int    `db:"sort_order"`
}

func (r lessonRow) entity() entities.Lesson {
	return entities.Lesson{ID: r.ID, UnitID: r.UnitID, Title: r.Title, Order: r.SortOrder}
}

type challengeRow struct {
	ID        int64  `db:"id"`
	LessonID  int64  `db:"lesson_id"`
	Type      string `db:"type"`
	Question  string `db:"question"`
	SortOrder int    `db:"sort_order"`
}

func (r challengeRow) entity() entities.Challenge {
	return entities.Challenge{
		ID:       r.ID,
		LessonID: r.LessonID,
		Type:     entities.ChallengeType(r.Type),
		Question: r.Question,
		Order:    r.SortOrder,
	}
}

type optionRow struct {
	ID          int64  `db:"id"`
	ChallengeID int64  `db:"challenge_id"`
	Text        string `db:"text"`
	Correct     bool   `db:"correct"`
	ImageSrc    string `db:"image_src"`
	AudioSrc    string `db:"audio_src"`
}

func (r optionRow) entity() entities.ChallengeOption {
	return entities.ChallengeOption{
		ID:          r.ID,
		ChallengeID: r.ChallengeID,
		Text:        r.Text,
		Correct:     r.Correct,
		ImageSrc:    r.ImageSrc,
		AudioSrc:    r.AudioSrc,
	}
}

type progressRow struct {
	ID          int64  `db:"id"`
	UserID      string `db:"user_id"`
	ChallengeID int64  `db:"challenge_id"`
	Completed   bool   `db:"completed"`
}

func (r progressRow) entity() entities.ChallengeProgress {
	return entities.ChallengeProgress{
		ID:          r.ID,
		UserID:      r.UserID,
		ChallengeID: r.ChallengeID,
		Completed:   r.Completed,
	}
}

type userProgressRow struct {
	UserID         string         `db:"user_id"`
	UserName       string         `db:"user_name"`
	UserImageSrc   string         `db:"user_image_src"`
	ActiveCourseID sql.NullInt64  `db:"active_course_id"`
	Hearts         int            `db:"hearts"`
	Points         int            `db:"points"`
	CourseTitle    sql.NullString `db:"course_title"`
	CourseImageSrc sql.NullString `db:"course_image_src"`
}

func (r userProgressRow) entity() *entities.UserProgress {
	p := &entities.UserProgress{
		UserID:       r.UserID,
		UserName:     r.UserName,
		UserImageSrc: r.UserImageSrc,
		Hearts:       r.Hearts,
		Points:       r.Points,
	}
	if r.ActiveCourseID.Valid {
		id := r.ActiveCourseID.Int64
		p.ActiveCourseID = &id
		if r.CourseTitle.Valid {
			p.ActiveCourse = &entities.Course{ID: id, Title: r.CourseTitle.String, ImageSrc: r.CourseImageSrc.String}
		}
	}
	return p
}

type subscriptionRow struct {
	ID                   int64         `db:"id"`
	UserID               string        `db:"user_id"`
	StripeCustomerID     string        `db:"stripe_customer_id"`
	StripeSubscriptionID string        `db:"stripe_subscription_id"`
	StripePriceID        string        `db:"stripe_price_id"`
	PeriodEndMs          sql.NullInt64 `db:"stripe_current_period_end_ms"`
}

func (r subscriptionRow) entity() *entities.UserSubscription {
	s := &entities.UserSubscription{
		ID:                   r.ID,
		UserID:               r.UserID,
		StripeCustomerID:     r.StripeCustomerID,
		StripeSubscriptionID: r.StripeSubscriptionID,
		StripePriceID:        r.StripePriceID,
	}
	if r.PeriodEndMs.Valid {
		t := time.UnixMilli(r.PeriodEndMs.Int64).UTC()
		s.StripeCurrentPeriodEnd = &t
	}
	return s
}

func mapRows[R any, E any](rows []R, fn func(R) E) []E {
	out := make([]E, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func nullableMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}
