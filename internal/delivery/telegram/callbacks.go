package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock".
	defer func() {
		if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			h.logger.Warn("callback answer error", zap.Error(err))
		}
	}()

	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	var fn HandlerFunc
	switch data.Action {
	case actionCourse:
		fn = h.handleCourseCallback(data, cb.Message.MessageID)
	case actionAnswer:
		fn = h.handleAnswerCallback(data, cb.Message.MessageID)
	case actionLesson:
		fn = h.handleLesson()
	case actionRefill:
		fn = h.handleRefill()
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) handleCourseCallback(data callbackData, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		ids, err := data.int64Params(1)
		if err != nil {
			return err
		}

		err = h.economy.UpsertUserProgress(ctx, ids[0])
		switch {
		case errors.Is(err, service.ErrCourseEmpty):
			return h.send(newHTMLMessage(chatID, msgCourseEmpty))
		case errors.Is(err, service.ErrCourseNotFound):
			return h.send(newHTMLMessage(chatID, msgNoCourses))
		case err != nil:
			return err
		}
		h.pending.Delete(chatID)

		progress, err := h.learn.GetUserProgress(ctx)
		if err != nil {
			return err
		}
		if progress == nil || progress.ActiveCourse == nil {
			return h.send(newHTMLMessage(chatID, msgNoActiveCourse))
		}

		edit := newHTMLEdit(chatID, messageID, formatCourseSelected(*progress.ActiveCourse))
		kb := buildContinueKeyboard()
		edit.ReplyMarkup = &kb
		return h.send(edit)
	}
}

func (h *Handler) handleAnswerCallback(data callbackData, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		ids, err := data.int64Params(3)
		if err != nil {
			return err
		}
		lessonID, challengeID, optionID := ids[0], ids[1], ids[2]

		lesson, err := h.learn.GetLesson(ctx, &lessonID)
		if err != nil {
			return err
		}
		if lesson == nil {
			return h.send(newHTMLMessage(chatID, msgNoPendingQuestion))
		}

		var correctText string
		var chosenCorrect, found bool
		for i := range lesson.Challenges {
			c := &lesson.Challenges[i]
			if c.ID != challengeID {
				continue
			}
			option := c.Option(optionID)
			if option == nil {
				break
			}
			found = true
			chosenCorrect = option.Correct
			if correct := c.CorrectOption(); correct != nil {
				correctText = correct.Text
			}
		}
		if !found {
			return h.send(newHTMLMessage(chatID, msgNoPendingQuestion))
		}

		// Drop the buttons so the question cannot be answered twice. send
		// logs a failure; the answer is recorded either way.
		strip := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
		})
		_ = h.send(strip)

		return h.answer(ctx, chatID, lessonID, challengeID, chosenCorrect, correctText)
	}
}
