package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/service"
)

func TestAdminService_RequiresAdmin(t *testing.T) {
	e := newEnv(t)

	_, err := e.admin.ListCourses(as("user_a"))
	assert.ErrorIs(t, err, service.ErrForbidden)

	err = e.admin.CreateCourse(as(""), &entities.Course{Title: "x", ImageSrc: "/x.svg"})
	assert.ErrorIs(t, err, service.ErrForbidden)

	assert.ErrorIs(t, e.admin.DeleteChallenge(as("user_a"), e.challenges[0].ID), service.ErrForbidden)
}

func TestAdminService_ContentLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := as("admin")

	course := entities.Course{Title: "Italian", ImageSrc: "/it.svg"}
	require.NoError(t, e.admin.CreateCourse(ctx, &course))

	unit := entities.Unit{CourseID: course.ID, Title: "Unit 1", Description: "Basics", Order: 1}
	require.NoError(t, e.admin.CreateUnit(ctx, &unit))

	lesson := entities.Lesson{UnitID: unit.ID, Title: "Nouns", Order: 1}
	require.NoError(t, e.admin.CreateLesson(ctx, &lesson))

	challenge := entities.Challenge{LessonID: lesson.ID, Type: entities.ChallengeSelect, Question: "Which one is \"the man\"?", Order: 1}
	require.NoError(t, e.admin.CreateChallenge(ctx, &challenge))

	option := entities.ChallengeOption{ChallengeID: challenge.ID, Text: "l'uomo", Correct: true}
	require.NoError(t, e.admin.CreateChallengeOption(ctx, &option))

	option.Text = "l'uomo!"
	require.NoError(t, e.admin.UpdateChallengeOption(ctx, &option))
	got, err := e.admin.GetChallengeOption(ctx, option.ID)
	require.NoError(t, err)
	assert.Equal(t, "l'uomo!", got.Text)

	full, err := e.admin.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, full.Units, 1)
	assert.Len(t, full.Units[0].Lessons, 1)

	require.NoError(t, e.admin.DeleteCourse(ctx, course.ID))

	_, err = e.admin.GetLesson(ctx, lesson.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = e.admin.GetChallenge(ctx, challenge.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAdminService_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := as("admin")

	err := e.admin.CreateCourse(ctx, &entities.Course{Title: " "})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	err = e.admin.CreateChallenge(ctx, &entities.Challenge{LessonID: e.lessons[0].ID, Type: "TYPE", Question: "q"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	err = e.admin.CreateChallengeOption(ctx, &entities.ChallengeOption{ChallengeID: e.challenges[0].ID})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	err = e.admin.UpdateUnit(ctx, &entities.Unit{ID: 999, CourseID: e.course.ID, Title: "ghost"})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAdminService_UpsertSubscription(t *testing.T) {
	e := newEnv(t)
	ctx := as("admin")

	err := e.admin.UpsertSubscription(ctx, &entities.UserSubscription{UserID: "user_a"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	end := testNow.Add(30 * 24 * time.Hour)
	require.NoError(t, e.admin.UpsertSubscription(ctx, &entities.UserSubscription{
		UserID:                 "user_a",
		StripeCustomerID:       "cus_1",
		StripeSubscriptionID:   "sub_1",
		StripePriceID:          "price_1",
		StripeCurrentPeriodEnd: &end,
	}))

	sub, err := e.learn.GetUserSubscription(as("user_a"))
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.True(t, sub.IsActive)
}

func TestAdminService_RejectsMissingParent(t *testing.T) {
	e := newEnv(t)
	ctx := as("admin")

	err := e.admin.CreateUnit(ctx, &entities.Unit{CourseID: 9999, Title: "x"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	err = e.admin.CreateLesson(ctx, &entities.Lesson{UnitID: 9999, Title: "x"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	err = e.admin.CreateChallenge(ctx, &entities.Challenge{LessonID: 9999, Type: entities.ChallengeAssist, Question: "q"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestAdminService_SubscriptionIDsAreUnique(t *testing.T) {
	e := newEnv(t)
	ctx := as("admin")

	require.NoError(t, e.admin.UpsertSubscription(ctx, &entities.UserSubscription{
		UserID: "user_a", StripeCustomerID: "cus_1", StripeSubscriptionID: "sub_1", StripePriceID: "price_1",
	}))

	err := e.admin.UpsertSubscription(ctx, &entities.UserSubscription{
		UserID: "user_b", StripeCustomerID: "cus_2", StripeSubscriptionID: "sub_1", StripePriceID: "price_1",
	})
	assert.ErrorIs(t, err, service.ErrConflict)
}
