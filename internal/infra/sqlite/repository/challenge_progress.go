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

// ChallengeProgressRepository handles database operations for answered challenges.
type ChallengeProgressRepository struct {
	db sqlite.DBTX
}

// NewChallengeProgressRepository creates a new repository instance.
func NewChallengeProgressRepository(db sqlite.DBTX) *ChallengeProgressRepository {
	return &ChallengeProgressRepository{db: db}
}

// Get returns the user's progress row for a challenge.
func (r *ChallengeProgressRepository) Get(ctx context.Context, userID string, challengeID int64) (*entities.ChallengeProgress, error) {
	var row progressRow
	err := sqlite.Conn(ctx, r.db).GetContext(ctx, &row, `
		SELECT id, user_id, challenge_id, completed
		FROM challenge_progress
		WHERE user_id = ? AND challenge_id = ?
	`, userID, challengeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrChallengeProgressNotFound
		}
		return nil, fmt.Errorf("get challenge progress: %w", err)
	}
	p := row.entity()
	return &p, nil
}

// Create inserts a progress row and sets its id.
func (r *ChallengeProgressRepository) Create(ctx context.Context, p *entities.ChallengeProgress) error {
	err := sqlite.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO challenge_progress (user_id, challenge_id, completed)
		VALUES (?, ?, ?)
		RETURNING id
	`, p.UserID, p.ChallengeID, p.Completed).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create challenge progress: %w", constraintError(err))
	}
	return nil
}

// MarkCompleted sets completed on an existing progress row.
func (r *ChallengeProgressRepository) MarkCompleted(ctx context.Context, id int64) error {
	res, err := sqlite.Conn(ctx, r.db).ExecContext(ctx,
		`UPDATE challenge_progress SET completed = TRUE WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("mark challenge progress completed: %w", err)
	}
	return expectAffected(res, storage.ErrChallengeProgressNotFound)
}
