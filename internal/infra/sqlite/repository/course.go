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

// CourseRepository handles database operations for courses.
type CourseRepository struct {
	db sqlite.DBTX
}

// NewCourseRepository creates a new repository instance.
func NewCourseRepository(db sqlite.DBTX) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns every course ordered by id.
func (r *CourseRepository) List(ctx context.Context) ([]entities.Course, error) {
	var rows []courseRow
	if err := sqlite.Conn(ctx, r.db).SelectContext(ctx, &rows, `SELECT id, title, image_src FROM courses ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return mapRows(rows, courseRow.entity), nil
}

// GetByID returns a course with its units and lessons.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*entities.Course, error) {
	db := sqlite.Conn(ctx, r.db)

	var row courseRow
	err := db.GetContext(ctx, &row, `SELECT id, title, image_src FROM courses WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	units, err := selectUnits(ctx, db, id)
	if err != nil {
		return nil, err
	}

	lessons, err := selectLessonsByCourse(ctx, db, id)
	if err != nil {
		return nil, err
	}

	c := row.entity()
	c.Units = storage.AssembleUnits(units, lessons, nil, nil)
	return &c, nil
}

// Create inserts a course and sets its id.
func (r *CourseRepository) Create(ctx context.Context, c *entities.Course) error {
	err := sqlite.Conn(ctx, r.db).QueryRowContext(ctx,
		`INSERT INTO courses (title, image_src) VALUES (?, ?) RETURNING id`,
		c.Title, c.ImageSrc,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("create course: %w", constraintError(err))
	}
	return nil
}

// Update overwrites a course.
func (r *CourseRepository) Update(ctx context.Context, c *entities.Course) error {
	res, err := sqlite.Conn(ctx, r.db).ExecContext(ctx,
		`UPDATE courses SET title = ?, image_src = ? WHERE id = ?`,
		c.Title, c.ImageSrc, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update course: %w", constraintError(err))
	}
	return expectAffected(res, storage.ErrCourseNotFound)
}

// Delete removes a course and, by cascade, everything under it.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	res, err := sqlite.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return expectAffected(res, storage.ErrCourseNotFound)
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
