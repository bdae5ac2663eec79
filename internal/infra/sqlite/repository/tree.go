package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/infra/sqlite"
)

func selectUnits(ctx context.Context, db sqlite.DBTX, courseID int64) ([]entities.Unit, error) {
	var rows []unitRow
	err := db.SelectContext(ctx, &rows, `
		SELECT id, course_id, title, description, sort_order
		FROM units
		WHERE course_id = ?
		ORDER BY sort_order, id
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("select units: %w", err)
	}
	return mapRows(rows, unitRow.entity), nil
}

func selectLessonsByCourse(ctx context.Context, db sqlite.DBTX, courseID int64) ([]entities.Lesson, error) {
	var rows []lessonRow
	err := db.SelectContext(ctx, &rows, `
		SELECT l.id, l.unit_id, l.title, l.sort_order
		FROM lessons l
		JOIN units u ON u.id = l.unit_id
		WHERE u.course_id = ?
		ORDER BY l.sort_order, l.id
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("select lessons: %w", err)
	}
	return mapRows(rows, lessonRow.entity), nil
}
