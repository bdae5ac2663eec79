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

// ChallengeProgressRepository tracks which challenges a user has answered.
type ChallengeProgressRepository struct {
	db postgres.DBTX
}

// NewChallengeProgressRepository creates a new ChallengeProgressRepository.
func NewChallengeProgressRepository(db postgres.DBTX) *ChallengeProgressRepository {
	return &ChallengeProgressRepository{db: db}
}

// Get retrieves the user's progress row for a challenge.
// Returns storage.ErrChallengeProgressNotFound if the challenge was never answered.
func (r *ChallengeProgressRepository) Get(ctx context.Context, userID string, challengeID int64) (*entities.ChallengeProgress, error) {
	query := `
		SELECT id, user_id, challenge_id, completed
		FROM challenge_progress
		WHERE user_id = $1 AND challenge_id = $2
	`

	var p entities.ChallengeProgress
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID, challengeID).Scan(
		&p.ID, &p.UserID, &p.ChallengeID, &p.Completed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrChallengeProgressNotFound
		}
		return nil, fmt.Errorf("get challenge progress: %w", err)
	}

	return &p, nil
}

// Create inserts a progress row and sets its id.
func (r *ChallengeProgressRepository) Create(ctx context.Context, p *entities.ChallengeProgress) error {
	query := `
		INSERT INTO challenge_progress (user_id, challenge_id, completed)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, p.UserID, p.ChallengeID, p.Completed).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create challenge progress: %w", constraintError(err))
	}
	return nil
}

// MarkCompleted sets completed on an existing progress row.
func (r *ChallengeProgressRepository) MarkCompleted(ctx context.Context, id int64) error {
	tag, err := postgres.Conn(ctx, r.db).Exec(ctx,
		`UPDATE challenge_progress SET completed = TRUE WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("mark challenge progress completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrChallengeProgressNotFound
	}
	return nil
}
