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

// ChallengeRepository handles database operations for challenges and options.
type ChallengeRepository struct {
	db sqlite.DBTX
}

// NewChallengeRepository creates a new repository instance.
func NewChallengeRepository(db sqlite.DBTX) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

// GetByID returns a challenge without options or progress.
func (r *ChallengeRepository) GetByID(ctx context.Context, id int64) (*entities.Challenge, error) {
	var row challengeRow
	err := sqlite.Conn(ctx, r.db).GetContext(ctx, &row,
		`SELECT id, lesson_id, type, question, sort_order FROM challenges WHERE id = ?`, id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("get challenge: %w", err)
	}
	c := row.entity()
	return &c, nil
}

// List returns every challenge.
func (r *ChallengeRepository) List(ctx context.Context) ([]entities.Challenge, error) {
	var rows []challengeRow
	err := sqlite.Conn(ctx, r.db).SelectContext(ctx, &rows, `
		SELECT id, lesson_id, type, question, sort_order
		FROM challenges
		ORDER BY lesson_id, sort_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	return mapRows(rows, challengeRow.entity), nil
}

// Create inserts a challenge and sets its id.
func (r *ChallengeRepository) Create(ctx context.Context, c *entities.Challenge) error {
	err := sqlite.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO challenges (lesson_id, type, question, sort_order)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`, c.LessonID, string(c.Type), c.Question, c.Order).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("create challenge: %w", constraintError(err))
	}
	return nil
}

// Update overwrites a challenge.
func (r *ChallengeRepository) Update(ctx context.Context, c *entities.Challenge) error {
	res, err := sqlite.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE challenges SET lesson_id = ?, type = ?, question = ?, sort_order = ?
		WHERE id = ?
	`, c.LessonID, string(c.Type), c.Question, c.Order, c.ID)
	if err != nil {
		return fmt.Errorf("update challenge: %w", constraintError(err))
	}
	return expectAffected(res, storage.ErrChallengeNotFound)
}

// Delete removes a challenge.
func (r *ChallengeRepository) Delete(ctx context.Context, id int64) error {
	res, err := sqlite.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM challenges WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	return expectAffected(res, storage.ErrChallengeNotFound)
}

// ListOptions returns every challenge option.
func (r *ChallengeRepository) ListOptions(ctx context.Context) ([]entities.ChallengeOption, error) {
	var rows []optionRow
	err := sqlite.Conn(ctx, r.db).SelectContext(ctx, &rows, `
		SELECT id, challenge_id, text, correct, image_src, audio_src
		FROM challenge_options
		ORDER BY challenge_id, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list challenge options: %w", err)
	}
	return mapRows(rows, optionRow.entity), nil
}

// GetOption returns a single challenge option.
func (r *ChallengeRepository) GetOption(ctx context.Context, id int64) (*entities.ChallengeOption, error) {
	var row optionRow
	err := sqlite.Conn(ctx, r.db).GetContext(ctx, &row, `
		SELECT id, challenge_id, text, correct, image_src, audio_src
		FROM challenge_options
		WHERE id = ?
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrChallengeOptionNotFound
		}
		return nil, fmt.Errorf("get challenge option: %w", err)
	}
	o := row.entity()
	return &o, nil
}

// CreateOption inserts a challenge option and sets its id.
func (r *ChallengeRepository) CreateOption(ctx context.Context, o *entities.ChallengeOption) error {
	err := sqlite.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO challenge_options (challenge_id, text, correct, image_src, audio_src)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, o.ChallengeID, o.Text, o.Correct, o.ImageSrc, o.AudioSrc).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("create challenge option: %w", constraintError(err))
	}
	return nil
}

// UpdateOption overwrites a challenge option.
func (r *ChallengeRepository) UpdateOption(ctx context.Context, o *entities.ChallengeOption) error {
	res, err := sqlite.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE challenge_options
		SET challenge_id = ?, text = ?, correct = ?, image_src = ?, audio_src = ?
		WHERE id = ?
	`, o.ChallengeID, o.Text, o.Correct, o.ImageSrc, o.AudioSrc, o.ID)
	if err != nil {
		return fmt.Errorf("update challenge option: %w", constraintError(err))
	}
	return expectAffected(res, storage.ErrChallengeOptionNotFound)
}

// DeleteOption removes a challenge option.
func (r *ChallengeRepository) DeleteOption(ctx context.Context, id int64) error {
	res, err := sqlite.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM challenge_options WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete challenge option: %w", err)
	}
	return expectAffected(res, storage.ErrChallengeOptionNotFound)
}
