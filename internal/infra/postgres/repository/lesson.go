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

// LessonRepository provides access to lessons and their challenges.
type LessonRepository struct {
	db postgres.DBTX
}

// NewLessonRepository creates a new LessonRepository with the provided database pool.
func NewLessonRepository(db postgres.DBTX) *LessonRepository {
	return &LessonRepository{db: db}
}

// GetWithChallenges loads a lesson with options and the user's progress.
func (r *LessonRepository) GetWithChallenges(ctx context.Context, lessonID int64, userID string) (*entities.Lesson, error) {
	db := postgres.Conn(ctx, r.db)

	lesson, err := r.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, `
		SELECT id, lesson_id, type, question, sort_order
		FROM challenges
		WHERE lesson_id = $1
		ORDER BY sort_order, id
	`, lessonID)
	if err != nil {
		return nil, fmt.Errorf("select challenges: %w", err)
	}
	challenges, err := scanChallenges(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	rows, err = db.Query(ctx, `
		SELECT o.id, o.challenge_id, o.text, o.correct, o.image_src, o.audio_src
		FROM challenge_options o
		JOIN challenges c ON c.id = o.challenge_id
		WHERE c.lesson_id = $1
		ORDER BY o.id
	`, lessonID)
	if err != nil {
		return nil, fmt.Errorf("select challenge options: %w", err)
	}
	options, err := scanOptions(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	rows, err = db.Query(ctx, `
		SELECT cp.id, cp.user_id, cp.challenge_id, cp.completed
		FROM challenge_progress cp
		JOIN challenges c ON c.id = cp.challenge_id
		WHERE c.lesson_id = $1 AND cp.user_id = $2
		ORDER BY cp.id
	`, lessonID, userID)
	if err != nil {
		return nil, fmt.Errorf("select challenge progress: %w", err)
	}
	progress, err := scanProgress(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	challenges = storage.AttachOptions(challenges, options)
	lesson.Challenges = storage.AttachProgress(challenges, progress)
	return lesson, nil
}

// List returns every lesson.
func (r *LessonRepository) List(ctx context.Context) ([]entities.Lesson, error) {
	rows, err := postgres.Conn(ctx, r.db).Query(ctx,
		`SELECT id, unit_id, title, sort_order FROM lessons ORDER BY unit_id, sort_order, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	lessons := make([]entities.Lesson, 0)
	for rows.Next() {
		var l entities.Lesson
		if err := rows.Scan(&l.ID, &l.UnitID, &l.Title, &l.Order); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, l)
	}

	return lessons, rows.Err()
}

// GetByID retrieves a single lesson without children.
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*entities.Lesson, error) {
	query := `SELECT id, unit_id, title, sort_order FROM lessons WHERE id = $1`

	var l entities.Lesson
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(&l.ID, &l.UnitID, &l.Title, &l.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrLessonNotFound
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}

	return &l, nil
}

// Create inserts a lesson and sets its id.
func (r *LessonRepository) Create(ctx context.Context, l *entities.Lesson) error {
	query := `INSERT INTO lessons (unit_id, title, sort_order) VALUES ($1, $2, $3) RETURNING id`

	if err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, l.UnitID, l.Title, l.Order).Scan(&l.ID); err != nil {
		return fmt.Errorf("create lesson: %w", constraintError(err))
	}
	return nil
}

// Update overwrites a lesson.
func (r *LessonRepository) Update(ctx context.Context, l *entities.Lesson) error {
	query := `UPDATE lessons SET unit_id = $2, title = $3, sort_order = $4 WHERE id = $1`

	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, query, l.ID, l.UnitID, l.Title, l.Order)
	if err != nil {
		return fmt.Errorf("update lesson: %w", constraintError(err))
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrLessonNotFound
	}
	return nil
}

// Delete removes a lesson.
func (r *LessonRepository) Delete(ctx context.Context, id int64) error {
	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrLessonNotFound
	}
	return nil
}
