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

// UnitRepository provides access to units and the learning tree below them.
type UnitRepository struct {
	db postgres.DBTX
}

// NewUnitRepository creates a new UnitRepository with the provided database pool.
func NewUnitRepository(db postgres.DBTX) *UnitRepository {
	return &UnitRepository{db: db}
}

// ListWithProgress loads the whole course tree with the user's progress rows.
func (r *UnitRepository) ListWithProgress(ctx context.Context, courseID int64, userID string) ([]entities.Unit, error) {
	db := postgres.Conn(ctx, r.db)

	units, err := selectUnits(ctx, db, courseID)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return []entities.Unit{}, nil
	}

	lessons, err := selectLessonsByCourse(ctx, db, courseID)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, `
		SELECT c.id, c.lesson_id, c.type, c.question, c.sort_order
		FROM challenges c
		JOIN lessons l ON l.id = c.lesson_id
		JOIN units u ON u.id = l.unit_id
		WHERE u.course_id = $1
		ORDER BY c.sort_order, c.id
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("select challenges: %w", err)
	}
	challenges, err := scanChallenges(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	rows, err = db.Query(ctx, `
		SELECT cp.id, cp.user_id, cp.challenge_id, cp.completed
		FROM challenge_progress cp
		JOIN challenges c ON c.id = cp.challenge_id
		JOIN lessons l ON l.id = c.lesson_id
		JOIN units u ON u.id = l.unit_id
		WHERE u.course_id = $1 AND cp.user_id = $2
		ORDER BY cp.id
	`, courseID, userID)
	if err != nil {
		return nil, fmt.Errorf("select challenge progress: %w", err)
	}
	progress, err := scanProgress(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	return storage.AssembleUnits(units, lessons, challenges, progress), nil
}

// List returns every unit.
func (r *UnitRepository) List(ctx context.Context) ([]entities.Unit, error) {
	query := `
		SELECT id, course_id, title, description, sort_order
		FROM units
		ORDER BY course_id, sort_order, id
	`

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	units := make([]entities.Unit, 0)
	for rows.Next() {
		var u entities.Unit
		if err := rows.Scan(&u.ID, &u.CourseID, &u.Title, &u.Description, &u.Order); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, u)
	}

	return units, rows.Err()
}

// GetByID retrieves a single unit without children.
func (r *UnitRepository) GetByID(ctx context.Context, id int64) (*entities.Unit, error) {
	query := `SELECT id, course_id, title, description, sort_order FROM units WHERE id = $1`

	var u entities.Unit
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&u.ID, &u.CourseID, &u.Title, &u.Description, &u.Order,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrUnitNotFound
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}

	return &u, nil
}

// Create inserts a unit and sets its id.
func (r *UnitRepository) Create(ctx context.Context, u *entities.Unit) error {
	query := `
		INSERT INTO units (course_id, title, description, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, u.CourseID, u.Title, u.Description, u.Order).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("create unit: %w", constraintError(err))
	}
	return nil
}

// Update overwrites a unit.
func (r *UnitRepository) Update(ctx context.Context, u *entities.Unit) error {
	query := `
		UPDATE units
		SET course_id = $2, title = $3, description = $4, sort_order = $5
		WHERE id = $1
	`

	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, query, u.ID, u.CourseID, u.Title, u.Description, u.Order)
	if err != nil {
		return fmt.Errorf("update unit: %w", constraintError(err))
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrUnitNotFound
	}
	return nil
}

// Delete removes a unit.
func (r *UnitRepository) Delete(ctx context.Context, id int64) error {
	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrUnitNotFound
	}
	return nil
}
