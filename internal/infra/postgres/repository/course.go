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

// CourseRepository provides access to courses in the database.
type CourseRepository struct {
	db postgres.DBTX
}

// NewCourseRepository creates a new CourseRepository with the provided database pool.
func NewCourseRepository(db postgres.DBTX) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns every course ordered by id.
func (r *CourseRepository) List(ctx context.Context) ([]entities.Course, error) {
	query := `SELECT id, title, image_src FROM courses ORDER BY id`

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]entities.Course, 0)
	for rows.Next() {
		var c entities.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.ImageSrc); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}

	return courses, nil
}

// GetByID retrieves a course with its units and lessons.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*entities.Course, error) {
	db := postgres.Conn(ctx, r.db)

	var c entities.Course
	err := db.QueryRow(ctx,
		`SELECT id, title, image_src FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.ImageSrc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

	c.Units = storage.AssembleUnits(units, lessons, nil, nil)
	return &c, nil
}

// Create inserts a course and sets its id.
func (r *CourseRepository) Create(ctx context.Context, c *entities.Course) error {
	query := `INSERT INTO courses (title, image_src) VALUES ($1, $2) RETURNING id`

	if err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, c.Title, c.ImageSrc).Scan(&c.ID); err != nil {
		return fmt.Errorf("create course: %w", constraintError(err))
	}
	return nil
}

// Update overwrites a course.
func (r *CourseRepository) Update(ctx context.Context, c *entities.Course) error {
	query := `UPDATE courses SET title = $2, image_src = $3 WHERE id = $1`

	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, query, c.ID, c.Title, c.ImageSrc)
	if err != nil {
		return fmt.Errorf("update course: %w", constraintError(err))
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course and, by cascade, everything under it.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrCourseNotFound
	}
	return nil
}
