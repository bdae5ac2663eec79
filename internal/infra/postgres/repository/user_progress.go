package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/infra/postgres"
	"github.com/aliskhannn/lingua/internal/storage"
)

// UserProgressRepository provides access to per-user hearts, points and active course.
type UserProgressRepository struct {
	db postgres.DBTX
}

// NewUserProgressRepository creates a new UserProgressRepository with the provided database pool.
func NewUserProgressRepository(db postgres.DBTX) *UserProgressRepository {
	return &UserProgressRepository{db: db}
}

// Get retrieves the user's progress joined with the active course.
func (r *UserProgressRepository) Get(ctx context.Context, userID string) (*entities.UserProgress, error) {
	query := `
		SELECT up.user_id, up.user_name, up.user_image_src, up.active_course_id,
		       up.hearts, up.points, c.id, c.title, c.image_src
		FROM user_progress up
		LEFT JOIN courses c ON c.id = up.active_course_id
		WHERE up.user_id = $1
	`

	var (
		p           entities.UserProgress
		courseID    *int64
		courseTitle *string
		courseImage *string
	)
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.UserName,
		&p.UserImageSrc,
		&p.ActiveCourseID,
		&p.Hearts,
		&p.Points,
		&courseID,
		&courseTitle,
		&courseImage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrUserProgressNotFound
		}
		return nil, fmt.Errorf("get user progress: %w", err)
	}

	if courseID != nil {
		p.ActiveCourse = &entities.Course{ID: *courseID, Title: *courseTitle, ImageSrc: *courseImage}
	}

	return &p, nil
}

// GetForUpdate retrieves the user's progress and locks the row until the
// surrounding transaction ends.
func (r *UserProgressRepository) GetForUpdate(ctx context.Context, userID string) (*entities.UserProgress, error) {
	query := `
		SELECT user_id, user_name, user_image_src, active_course_id, hearts, points
		FROM user_progress
		WHERE user_id = $1
		FOR UPDATE
	`

	var p entities.UserProgress
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.UserName, &p.UserImageSrc, &p.ActiveCourseID, &p.Hearts, &p.Points,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrUserProgressNotFound
		}
		return nil, fmt.Errorf("get user progress for update: %w", err)
	}

	return &p, nil
}

// Create inserts a new progress row.
func (r *UserProgressRepository) Create(ctx context.Context, p *entities.UserProgress) error {
	query := `
		INSERT INTO user_progress (user_id, user_name, user_image_src, active_course_id, hearts, points)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := postgres.Conn(ctx, r.db).Exec(ctx, query,
		p.UserID, p.UserName, p.UserImageSrc, p.ActiveCourseID, p.Hearts, p.Points,
	)
	if err != nil {
		return fmt.Errorf("create user progress: %w", constraintError(err))
	}
	return nil
}

// UpdateProfile sets the active course and display fields.
func (r *UserProgressRepository) UpdateProfile(ctx context.Context, p *entities.UserProgress) error {
	query := `
		UPDATE user_progress
		SET active_course_id = $2, user_name = $3, user_image_src = $4
		WHERE user_id = $1
	`

	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, query, p.UserID, p.ActiveCourseID, p.UserName, p.UserImageSrc)
	if err != nil {
		return fmt.Errorf("update user profile: %w", constraintError(err))
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrUserProgressNotFound
	}
	return nil
}

// UpdateEconomy sets hearts and points.
func (r *UserProgressRepository) UpdateEconomy(ctx context.Context, userID string, hearts, points int) error {
	query := `UPDATE user_progress SET hearts = $2, points = $3 WHERE user_id = $1`

	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, query, userID, hearts, points)
	if err != nil {
		return fmt.Errorf("update user economy: %w", constraintError(err))
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrUserProgressNotFound
	}
	return nil
}

// TopByPoints returns the highest scoring users, best first.
func (r *UserProgressRepository) TopByPoints(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error) {
	query := `
		SELECT user_id, user_name, user_image_src, points
		FROM user_progress
		ORDER BY points DESC, user_id
		LIMIT $1
	`

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top by points: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e entities.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.UserName, &e.UserImageSrc, &e.Points); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}

	return entries, nil
}
