package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/infra/postgres"
)

// The select helpers below return rows in display order so that
// repository.AssembleUnits can nest them without sorting.

func selectUnits(ctx context.Context, db postgres.DBTX, courseID int64) ([]entities.Unit, error) {
	query := `
		SELECT id, course_id, title, description, sort_order
		FROM units
		WHERE course_id = $1
		ORDER BY sort_order, id
	`

	rows, err := db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("select units: %w", err)
	}
	defer rows.Close()

	var units []entities.Unit
	for rows.Next() {
		var u entities.Unit
		if err := rows.Scan(&u.ID, &u.CourseID, &u.Title, &u.Description, &u.Order); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, u)
	}

	return units, rows.Err()
}

func selectLessonsByCourse(ctx context.Context, db postgres.DBTX, courseID int64) ([]entities.Lesson, error) {
	query := `
		SELECT l.id, l.unit_id, l.title, l.sort_order
		FROM lessons l
		JOIN units u ON u.id = l.unit_id
		WHERE u.course_id = $1
		ORDER BY l.sort_order, l.id
	`

	rows, err := db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("select lessons: %w", err)
	}
	defer rows.Close()

	var lessons []entities.Lesson
	for rows.Next() {
		var l entities.Lesson
		if err := rows.Scan(&l.ID, &l.UnitID, &l.Title, &l.Order); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, l)
	}

	return lessons, rows.Err()
}

func scanChallenges(rows pgx.Rows) ([]entities.Challenge, error) {
	var challenges []entities.Challenge
	for rows.Next() {
		var c entities.Challenge
		var typ string
		if err := rows.Scan(&c.ID, &c.LessonID, &typ, &c.Question, &c.Order); err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		c.Type = entities.ChallengeType(typ)
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

func scanProgress(rows pgx.Rows) ([]entities.ChallengeProgress, error) {
	var progress []entities.ChallengeProgress
	for rows.Next() {
		var p entities.ChallengeProgress
		if err := rows.Scan(&p.ID, &p.UserID, &p.ChallengeID, &p.Completed); err != nil {
			return nil, fmt.Errorf("scan challenge progress: %w", err)
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}

func scanOptions(rows pgx.Rows) ([]entities.ChallengeOption, error) {
	var options []entities.ChallengeOption
	for rows.Next() {
		var o entities.ChallengeOption
		if err := rows.Scan(&o.ID, &o.ChallengeID, &o.Text, &o.Correct, &o.ImageSrc, &o.AudioSrc); err != nil {
			return nil, fmt.Errorf("scan challenge option: %w", err)
		}
		options = append(options, o)
	}
	return options, rows.Err()
}
