package telegram

import (
	"context"
	"errors"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/service"
)

func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.send(newHTMLMessage(chatID, msgWelcome)); err != nil {
			return err
		}
		return h.handleCourses()(ctx, chatID)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		return h.send(newHTMLMessage(chatID, msgHelp))
	}
}

func (h *Handler) handleUnknown() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		return h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

// handleCourses lists courses as buttons, marking the active one.
func (h *Handler) handleCourses() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		courses, err := h.learn.GetCourses(ctx)
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			return h.send(newHTMLMessage(chatID, msgNoCourses))
		}

		progress, err := h.learn.GetUserProgress(ctx)
		if err != nil {
			return err
		}

		var activeID *int64
		if progress.HasActiveCourse() {
			activeID = progress.ActiveCourseID
		}

		msg := newHTMLMessage(chatID, msgPickCourse)
		msg.ReplyMarkup = buildCoursesKeyboard(courses, activeID)
		return h.send(msg)
	}
}

// handleLearn shows the active course map.
func (h *Handler) handleLearn() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		progress, err := h.learn.GetUserProgress(ctx)
		if err != nil {
			return err
		}
		if !progress.HasActiveCourse() {
			return h.send(newHTMLMessage(chatID, msgNoActiveCourse))
		}

		units, err := h.learn.GetUnits(ctx)
		if err != nil {
			return err
		}

		pct, err := h.learn.GetLessonPercentage(ctx)
		if err != nil {
			return err
		}

		title := ""
		if progress.ActiveCourse != nil {
			title = progress.ActiveCourse.Title
		}
		return h.send(newHTMLMessage(chatID, formatUnits(title, units, pct)))
	}
}

func (h *Handler) handleLesson() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.sendNextChallenge(ctx, chatID)
	}
}

func (h *Handler) handleHearts() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		progress, err := h.learn.GetUserProgress(ctx)
		if err != nil {
			return err
		}
		if progress == nil {
			return h.send(newHTMLMessage(chatID, msgNoActiveCourse))
		}

		sub, err := h.learn.GetUserSubscription(ctx)
		if err != nil {
			return err
		}
		return h.send(newHTMLMessage(chatID, formatStatus(progress, sub)))
	}
}

func (h *Handler) handleRefill() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := h.economy.RefillHearts(ctx)
		switch {
		case errors.Is(err, service.ErrHeartsFull):
			return h.send(newHTMLMessage(chatID, msgHeartsFull))
		case errors.Is(err, service.ErrNotEnoughPoints):
			return h.send(newHTMLMessage(chatID, msgNotEnoughPoints))
		case errors.Is(err, service.ErrUserProgressNotFound):
			return h.send(newHTMLMessage(chatID, msgNoActiveCourse))
		case err != nil:
			return err
		}

		msg := newHTMLMessage(chatID, msgRefilled)
		msg.ReplyMarkup = buildContinueKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleLeaderboard() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		top, err := h.learn.GetTopTenUsers(ctx)
		if err != nil {
			return err
		}
		return h.send(newHTMLMessage(chatID, formatLeaderboard(top)))
	}
}

func (h *Handler) handleQuests() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		quests, err := h.learn.GetQuests(ctx)
		if err != nil {
			return err
		}
		return h.send(newHTMLMessage(chatID, formatQuests(quests)))
	}
}

// handleTypedAnswer checks free text against the chat's pending challenge.
func (h *Handler) handleTypedAnswer(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		p, ok := h.pending.Get(chatID)
		if !ok {
			return h.send(newHTMLMessage(chatID, msgNoPendingQuestion))
		}
		correct := h.validator.Validate(text, p.Answer)
		return h.answer(ctx, chatID, p.LessonID, p.ChallengeID, correct, p.Answer)
	}
}

// sendNextChallenge shows the first uncompleted challenge of the active
// lesson and remembers it for typed answers.
func (h *Handler) sendNextChallenge(ctx context.Context, chatID int64) error {
	progress, err := h.learn.GetUserProgress(ctx)
	if err != nil {
		return err
	}
	if !progress.HasActiveCourse() {
		return h.send(newHTMLMessage(chatID, msgNoActiveCourse))
	}

	lesson, err := h.learn.GetLesson(ctx, nil)
	if err != nil {
		return err
	}
	challenge := nextChallenge(lesson)
	if challenge == nil {
		h.pending.Delete(chatID)
		return h.send(newHTMLMessage(chatID, msgAllDone))
	}

	sub, err := h.learn.GetUserSubscription(ctx)
	if err != nil {
		return err
	}

	msg := newHTMLMessage(chatID, formatChallenge(lesson, challenge, progress.Hearts, sub != nil && sub.IsActive))
	msg.ReplyMarkup = buildChallengeKeyboard(challenge)
	if err := h.send(msg); err != nil {
		return err
	}

	h.pending.Put(chatID, challenge)
	return nil
}

// answer applies a correct or wrong answer and moves on.
func (h *Handler) answer(ctx context.Context, chatID int64, lessonID, challengeID int64, correct bool, correctText string) error {
	h.pending.Delete(chatID)

	var (
		outcome service.HeartOutcome
		err     error
	)
	if correct {
		outcome, err = h.economy.UpsertChallengeProgress(ctx, challengeID)
	} else {
		outcome, err = h.economy.ReduceHearts(ctx, challengeID)
	}
	switch {
	case errors.Is(err, service.ErrUserProgressNotFound):
		return h.send(newHTMLMessage(chatID, msgNoActiveCourse))
	case errors.Is(err, service.ErrChallengeNotFound):
		return h.send(newHTMLMessage(chatID, msgNoPendingQuestion))
	case err != nil:
		return err
	}

	if outcome == service.OutcomeHearts {
		msg := newHTMLMessage(chatID, msgOutOfHearts)
		msg.ReplyMarkup = buildOutOfHeartsKeyboard()
		return h.send(msg)
	}

	if !correct {
		if err := h.send(newHTMLMessage(chatID, formatWrong(correctText))); err != nil {
			return err
		}
		out, err := h.outOfHearts(ctx)
		if err != nil {
			return err
		}
		if out {
			msg := newHTMLMessage(chatID, msgOutOfHearts)
			msg.ReplyMarkup = buildOutOfHeartsKeyboard()
			return h.send(msg)
		}
		return h.sendNextChallenge(ctx, chatID)
	}

	text := formatOutcome(outcome)
	lesson, err := h.learn.GetLesson(ctx, &lessonID)
	if err != nil {
		return err
	}
	if lesson != nil && lesson.Completed() && outcome == service.OutcomeCompleted {
		text += "\n\n" + msgLessonComplete
	}
	if err := h.send(newHTMLMessage(chatID, text)); err != nil {
		return err
	}

	return h.sendNextChallenge(ctx, chatID)
}

// outOfHearts reports whether the caller can no longer answer new challenges.
func (h *Handler) outOfHearts(ctx context.Context) (bool, error) {
	progress, err := h.learn.GetUserProgress(ctx)
	if err != nil || progress == nil {
		return false, err
	}
	if progress.Hearts > 0 {
		return false, nil
	}
	sub, err := h.learn.GetUserSubscription(ctx)
	if err != nil {
		return false, err
	}
	return sub == nil || !sub.IsActive, nil
}

// nextChallenge returns the first challenge still to be completed.
func nextChallenge(lesson *entities.Lesson) *entities.Challenge {
	if lesson == nil {
		return nil
	}
	for i := range lesson.Challenges {
		if !lesson.Challenges[i].Completed() {
			return &lesson.Challenges[i]
		}
	}
	return nil
}
