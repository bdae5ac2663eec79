package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/lingua/internal/domain/entities"
)

// buildCoursesKeyboard builds one button per course.
func buildCoursesKeyboard(courses []entities.Course, activeID *int64) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(courses))
	for _, c := range courses {
		label := c.Title
		if activeID != nil && *activeID == c.ID {
			label = "✅ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildCourseCallback(c.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildChallengeKeyboard builds one button per answer option.
func buildChallengeKeyboard(c *entities.Challenge) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(c.Options))
	for _, o := range c.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(o.Text, buildAnswerCallback(c.LessonID, c.ID, o.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildContinueKeyboard offers the next question.
func buildContinueKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Continue", buildLessonCallback()),
		),
	)
}

// buildOutOfHeartsKeyboard offers a refill.
func buildOutOfHeartsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❤️ Refill for 10 XP", buildRefillCallback()),
		),
	)
}
