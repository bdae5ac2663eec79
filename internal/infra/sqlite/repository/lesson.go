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

// LessonRepository handles database operations for lessons.
type LessonRepository struct {
	db sqlite.DBTX
}

// NewLessonRepository creates a new repository instance.
func NewLessonRepository(db sqlite.DBTX) *LessonRepository {
	return &LessonRepository{db: db}
}

// GetWithChallenges loads a lesson with options and the user's progress.
func (r *LessonRepository) GetWithChallenges(ctx context.Context, lessonID int64, userID string) (*entities.Lesson, error) {
	db := sqlite.Conn(ctx, r.db)

	lesson, err := r.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	var challengeRows []challengeRow
	err = db.SelectContext(ctx, &challengeRows, `
		SELECT id, lesson_id, type, question, sort_order
		FROM challenges
		WHERE lesson_id = ?
		ORDER BY sort_order, id
	`, lessonID)
	if err != nil {
		return nil, fmt.Errorf("select challenges: %w", err)
	}

	var optionRows []optionRow
	err = db.SelectContext(ctx, &optionRows, `
		SELECT o.id, o.challenge_id, o.text, o.correct, o.image_src, o.audio_src
		FROM challenge_options o
		JOIN challenges c ON c.id = o.challenge_id
		WHERE c.lesson_id = ?
		ORDER BY o.id
	`, lessonID)
	if err != nil {
		return nil, fmt.Errorf("select challenge options: %w", err)
	}

	var progressRows []progressRow
	err = db.SelectContext(ctx, &progressRows, `
		SELECT cp.id, cp.user_id, cp.challenge_id, cp.completed
		FROM challenge_progress cp
		JOIN challenges c ON c.id = cp.challenge_id
		WHERE c.lesson_id = ? AND cp.user_id = ?
		ORDER BY cp.id
	`, lessonID, userID)
	if err != nil {
		return nil, fmt.Errorf("select challenge progress: %w", err)
	}

	challenges := storage.AttachOptions(
		mapRows(challengeRows, challengeRow.entity),
		mapRows(optionRows, optionRow.entity),
	)
	lesson.Challenges = storage.AttachProgress(challenges, mapRows(progressRows, progressRow.entity))
	return lesson, nil
}

// List returns every lesson.
func (r *LessonRepository) List(ctx context.Context) ([]entities.Lesson, error) {
	var rows []lessonRow
	err := sqlite.Conn(ctx, r.db).SelectContext(ctx, &rows,
		`SELECT id, unit_id, title, sort_order FROM lessons ORDER BY unit_id, sort_order, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return mapRows(rows, lessonRow.entity), nil
}

// GetByID returns a single lesson without children.
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*entities.Lesson, error) {
	var row lessonRow
	err := sqlite.Conn(ctx, r.db).GetContext(ctx, &row,
		`SELECT id, unit_id, title, sort_order FROM lessons WHERE id = ?`, id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrLessonNotFound
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	l := row.entity()
	return &l, nil
}

// Create inserts a lesson and sets its id.
func (r *LessonRepository) Create(ctx context.Context, l *entities.Lesson) error {
	err := sqlite.Conn(ctx, r.db).QueryRowContext(ctx,
		`INSERT INTO lessons (unit_id, title, sort_order) VALUES (?, ?, ?) RETURNING id`,
		l.UnitID, l.Title, l.Order,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("create lesson: %w", constraintError(err))
	}
	return nil
}

// Update overwrites a lesson.
func (r *LessonRepository) Update(ctx context.Context, l *entities.Lesson) error {
	res, err := sqlite.Conn(ctx, r.db).ExecContext(ctx,
		`UPDATE lessons SET unit_id = ?, title = ?, sort_order = ? WHERE id = ?`,
		l.UnitID, l.Title, l.Order, l.ID,
	)
	if err != nil {
		return fmt.Errorf("update lesson: %w", constraintError(err))
	}
	return expectAffected(res, storage.ErrLessonNotFound)
}

// Delete removes a lesson.
func (r *LessonRepository) Delete(ctx context.Context, id int64) error {
	res, err := sqlite.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM lessons WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	return expectAffected(res, storage.ErrLessonNotFound)
}
