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

// UnitRepository handles database operations for units.
type UnitRepository struct {
	db sqlite.DBTX
}

// NewUnitRepository creates a new repository instance.
func NewUnitRepository(db sqlite.DBTX) *UnitRepository {
	return &UnitRepository{db: db}
}

// ListWithProgress loads the whole course tree with the user's progress rows.
func (r *UnitRepository) ListWithProgress(ctx context.Context, courseID int64, userID string) ([]entities.Unit, error) {
	db := sqlite.Conn(ctx, r.db)

	units, err := selectUnits(ctx, db, courseID)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return units, nil
	}

	lessons, err := selectLessonsByCourse(ctx, db, courseID)
	if err != nil {
		return nil, err
	}

	var challengeRows []challengeRow
	err = db.SelectContext(ctx, &challengeRows, `
		SELECT c.id, c.lesson_id, c.type, c.question, c.sort_order
		FROM challenges c
		JOIN lessons l ON l.id = c.lesson_id
		JOIN units u ON u.id = l.unit_id
		WHERE u.course_id = ?
		ORDER BY c.sort_order, c.id
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("select challenges: %w", err)
	}

	var progressRows []progressRow
	err = db.SelectContext(ctx, &progressRows, `
		SELECT cp.id, cp.user_id, cp.challenge_id, cp.completed
		FROM challenge_progress cp
		JOIN challenges c ON c.id = cp.challenge_id
		JOIN lessons l ON l.id = c.lesson_id
		JOIN units u ON u.id = l.unit_id
		WHERE u.course_id = ? AND cp.user_id = ?
		ORDER BY cp.id
	`, courseID, userID)
	if err != nil {
		return nil, fmt.Errorf("select challenge progress: %w", err)
	}

	return storage.AssembleUnits(
		units,
		lessons,
		mapRows(challengeRows, challengeRow.entity),
		mapRows(progressRows, progressRow.entity),
	), nil
}

// List returns every unit.
func (r *UnitRepository) List(ctx context.Context) ([]entities.Unit, error) {
	var rows []unitRow
	err := sqlite.Conn(ctx, r.db).SelectContext(ctx, &rows, `
		SELECT id, course_id, title, description, sort_order
		FROM units
		ORDER BY course_id, sort_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return mapRows(rows, unitRow.entity), nil
}

// GetByID returns a single unit without children.
func (r *UnitRepository) GetByID(ctx context.Context, id int64) (*entities.Unit, error) {
	var row unitRow
	err := sqlite.Conn(ctx, r.db).GetContext(ctx, &row,
		`SELECT id, course_id, title, description, sort_order FROM units WHERE id = ?`, id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUnitNotFound
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	u := row.entity()
	return &u, nil
}

// Create inserts a unit and sets its id.
func (r *UnitRepository) Create(ctx context.Context, u *entities.Unit) error {
	err := sqlite.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO units (course_id, title, description, sort_order)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`, u.CourseID, u.Title, u.Description, u.Order).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("create unit: %w", constraintError(err))
	}
	return nil
}

// Update overwrites a unit.
func (r *UnitRepository) Update(ctx context.Context, u *entities.Unit) error {
	res, err := sqlite.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE units SET course_id = ?, title = ?, description = ?, sort_order = ?
		WHERE id = ?
	`, u.CourseID, u.Title, u.Description, u.Order, u.ID)
	if err != nil {
		return fmt.Errorf("update unit: %w", constraintError(err))
	}
	return expectAffected(res, storage.ErrUnitNotFound)
}

// Delete removes a unit.
func (r *UnitRepository) Delete(ctx context.Context, id int64) error {
	res, err := sqlite.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM units WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	return expectAffected(res, storage.ErrUnitNotFound)
}
