package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/infra/sqlite"
	"github.com/aliskhannn/lingua/internal/storage"
)

// UserProgressRepository handles database operations for user progress.
type UserProgressRepository struct {
	db sqlite.DBTX
}

// NewUserProgressRepository creates a new repository instance.
func NewUserProgressRepository(db sqlite.DBTX) *UserProgressRepository {
	return &UserProgressRepository{db: db}
}

// Get returns the user's progress joined with the active course.
func (r *UserProgressRepository) Get(ctx context.Context, userID string) (*entities.UserProgress, error) {
	var row userProgressRow
	err := sqlite.Conn(ctx, r.db).GetContext(ctx, &row, `
		SELECT up.user_id, up.user_name, up.user_image_src, up.active_course_id,
		       up.hearts, up.points, c.title AS course_title, c.image_src AS course_image_src
		FROM user_progress up
		LEFT JOIN courses c ON c.id = up.active_course_id
		WHERE up.user_id = ?
	`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserProgressNotFound
		}
		return nil, fmt.Errorf("get user progress: %w", err)
	}
	return row.entity(), nil
}

// GetForUpdate returns the user's progress. The single connection already
// serializes transactions, so no row lock is taken.
func (r *UserProgressRepository) GetForUpdate(ctx context.Context, userID string) (*entities.UserProgress, error) {
	var row userProgressRow
	err := sqlite.Conn(ctx, r.db).GetContext(ctx, &row, `
		SELECT user_id, user_name, user_image_src, active_course_id, hearts, points
		FROM user_progress
		WHERE user_id = ?
	`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserProgressNotFound
		}
		return nil, fmt.Errorf("get user progress for update: %w", err)
	}
	p := row.entity()
	p.ActiveCourse = nil
	return p, nil
}

// Create inserts a new progress row.
func (r *UserProgressRepository) Create(ctx context.Context, p *entities.UserProgress) error {
	_, err := sqlite.Conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO user_progress (user_id, user_name, user_image_src, active_course_id, hearts, points)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.UserID, p.UserName, p.UserImageSrc, nullableID(p.ActiveCourseID), p.Hearts, p.Points)
	if err != nil {
		return fmt.Errorf("create user progress: %w", constraintError(err))
	}
	return nil
}

// UpdateProfile sets the active course and display fields.
func (r *UserProgressRepository) UpdateProfile(ctx context.Context, p *entities.UserProgress) error {
	res, err := sqlite.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE user_progress
		SET active_course_id = ?, user_name = ?, user_image_src = ?
		WHERE user_id = ?
	`, nullableID(p.ActiveCourseID), p.UserName, p.UserImageSrc, p.UserID)
	if err != nil {
		return fmt.Errorf("update user profile: %w", constraintError(err))
	}
	return expectAffected(res, storage.ErrUserProgressNotFound)
}

// UpdateEconomy sets hearts and points.
func (r *UserProgressRepository) UpdateEconomy(ctx context.Context, userID string, hearts, points int) error {
	res, err := sqlite.Conn(ctx, r.db).ExecContext(ctx,
		`UPDATE user_progress SET hearts = ?, points = ? WHERE user_id = ?`,
		hearts, points, userID,
	)
	if err != nil {
		return fmt.Errorf("update user economy: %w", constraintError(err))
	}
	return expectAffected(res, storage.ErrUserProgressNotFound)
}

// TopByPoints returns the highest scoring users, best first.
func (r *UserProgressRepository) TopByPoints(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error) {
	var rows []struct {
		UserID       string `db:"user_id"`
		UserName     string `db:"user_name"`
		UserImageSrc string `db:"user_image_src"`
		Points       int    `db:"points"`
	}
	err := sqlite.Conn(ctx, r.db).SelectContext(ctx, &rows, `
		SELECT user_id, user_name, user_image_src, points
		FROM user_progress
		ORDER BY points DESC, user_id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("top by points: %w", err)
	}

	entries := make([]entities.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, entities.LeaderboardEntry(row))
	}
	return entries, nil
}
