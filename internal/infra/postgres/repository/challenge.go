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

// ChallengeRepository provides access to challenges and their options.
type ChallengeRepository struct {
	db postgres.DBTX
}

// NewChallengeRepository creates a new ChallengeRepository with the provided database pool.
func NewChallengeRepository(db postgres.DBTX) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

// GetByID retrieves a challenge without options or progress.
func (r *ChallengeRepository) GetByID(ctx context.Context, id int64) (*entities.Challenge, error) {
	query := `SELECT id, lesson_id, type, question, sort_order FROM challenges WHERE id = $1`

	var c entities.Challenge
	var typ string
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(&c.ID, &c.LessonID, &typ, &c.Question, &c.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("get challenge: %w", err)
	}
	c.Type = entities.ChallengeType(typ)

	return &c, nil
}

// List returns every challenge.
func (r *ChallengeRepository) List(ctx context.Context) ([]entities.Challenge, error) {
	rows, err := postgres.Conn(ctx, r.db).Query(ctx, `
		SELECT id, lesson_id, type, question, sort_order
		FROM challenges
		ORDER BY lesson_id, sort_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	defer rows.Close()

	challenges, err := scanChallenges(rows)
	if err != nil {
		return nil, err
	}
	if challenges == nil {
		challenges = []entities.Challenge{}
	}
	return challenges, nil
}

// Create inserts a challenge and sets its id.
func (r *ChallengeRepository) Create(ctx context.Context, c *entities.Challenge) error {
	query := `
		INSERT INTO challenges (lesson_id, type, question, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, c.LessonID, string(c.Type), c.Question, c.Order).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("create challenge: %w", constraintError(err))
	}
	return nil
}

// Update overwrites a challenge.
func (r *ChallengeRepository) Update(ctx context.Context, c *entities.Challenge) error {
	query := `
		UPDATE challenges
		SET lesson_id = $2, type = $3, question = $4, sort_order = $5
		WHERE id = $1
	`

	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, query, c.ID, c.LessonID, string(c.Type), c.Question, c.Order)
	if err != nil {
		return fmt.Errorf("update challenge: %w", constraintError(err))
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrChallengeNotFound
	}
	return nil
}

// Delete removes a challenge.
func (r *ChallengeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, `DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrChallengeNotFound
	}
	return nil
}

// ListOptions returns every challenge option.
func (r *ChallengeRepository) ListOptions(ctx context.Context) ([]entities.ChallengeOption, error) {
	rows, err := postgres.Conn(ctx, r.db).Query(ctx, `
		SELECT id, challenge_id, text, correct, image_src, audio_src
		FROM challenge_options
		ORDER BY challenge_id, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list challenge options: %w", err)
	}
	defer rows.Close()

	options, err := scanOptions(rows)
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = []entities.ChallengeOption{}
	}
	return options, nil
}

// GetOption retrieves a single challenge option.
func (r *ChallengeRepository) GetOption(ctx context.Context, id int64) (*entities.ChallengeOption, error) {
	query := `
		SELECT id, challenge_id, text, correct, image_src, audio_src
		FROM challenge_options
		WHERE id = $1
	`

	var o entities.ChallengeOption
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&o.ID, &o.ChallengeID, &o.Text, &o.Correct, &o.ImageSrc, &o.AudioSrc,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrChallengeOptionNotFound
		}
		return nil, fmt.Errorf("get challenge option: %w", err)
	}

	return &o, nil
}

// CreateOption inserts a challenge option and sets its id.
func (r *ChallengeRepository) CreateOption(ctx context.Context, o *entities.ChallengeOption) error {
	query := `
		INSERT INTO challenge_options (challenge_id, text, correct, image_src, audio_src)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query,
		o.ChallengeID, o.Text, o.Correct, o.ImageSrc, o.AudioSrc,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("create challenge option: %w", constraintError(err))
	}
	return nil
}

// UpdateOption overwrites a challenge option.
func (r *ChallengeRepository) UpdateOption(ctx context.Context, o *entities.ChallengeOption) error {
	query := `
		UPDATE challenge_options
		SET challenge_id = $2, text = $3, correct = $4, image_src = $5, audio_src = $6
		WHERE id = $1
	`

	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, query,
		o.ID, o.ChallengeID, o.Text, o.Correct, o.ImageSrc, o.AudioSrc,
	)
	if err != nil {
		return fmt.Errorf("update challenge option: %w", constraintError(err))
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrChallengeOptionNotFound
	}
	return nil
}

// DeleteOption removes a challenge option.
func (r *ChallengeRepository) DeleteOption(ctx context.Context, id int64) error {
	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, `DELETE FROM challenge_options WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete challenge option: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrChallengeOptionNotFound
	}
	return nil
}
