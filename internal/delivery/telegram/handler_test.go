package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/infra/sqlite"
	"github.com/aliskhannn/lingua/internal/infra/sqlite/repository"
	"github.com/aliskhannn/lingua/internal/service"
)

const (
	testChatID = int64(42)
	testUserID = int64(7)
)

type fakeBot struct {
	updates chan tgbotapi.Update

	// failMarkupEdits rejects keyboard edits, as Telegram does for old messages.
	failMarkupEdits bool

	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := c.(tgbotapi.EditMessageReplyMarkupConfig); ok && b.failMarkupEdits {
		return tgbotapi.Message{}, errors.New("message can't be edited")
	}
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// texts returns the text of every message and edit sent so far.
func (b *fakeBot) texts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []string
	for _, c := range b.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, m.Text)
		case tgbotapi.EditMessageTextConfig:
			out = append(out, m.Text)
		}
	}
	return out
}

type botEnv struct {
	bot     *fakeBot
	handler *Handler
	store   service.Store
	course  entities.Course
	lesson  entities.Lesson
	// first challenge with its correct and wrong options
	challenge     entities.Challenge
	correctOption entities.ChallengeOption
	wrongOption   entities.ChallengeOption
}

func newBotEnv(t *testing.T) *botEnv {
	t.Helper()

	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	store := repository.NewStore(db)
	board := service.NewLeaderboard(store.UserProgress, zap.NewNop())

	e := &botEnv{
		bot:   &fakeBot{updates: make(chan tgbotapi.Update, 16)},
		store: store,
	}
	e.handler = NewHandler(
		e.bot,
		zap.NewNop(),
		service.NewLearnService(store, board, nil),
		service.NewEconomyService(store, board, zap.NewNop()),
		service.NewAnswerValidator(),
		NewPendingStore(),
	)

	e.course = entities.Course{Title: "Spanish", ImageSrc: "/es.svg"}
	require.NoError(t, store.Courses.Create(ctx, &e.course))
	unit := entities.Unit{CourseID: e.course.ID, Title: "Unit 1", Description: "Basics", Order: 1}
	require.NoError(t, store.Units.Create(ctx, &unit))
	e.lesson = entities.Lesson{UnitID: unit.ID, Title: "Nouns", Order: 1}
	require.NoError(t, store.Lessons.Create(ctx, &e.lesson))

	for i, q := range []string{"the man", "the woman"} {
		c := entities.Challenge{LessonID: e.lesson.ID, Type: entities.ChallengeAssist, Question: q, Order: i + 1}
		require.NoError(t, store.Challenges.Create(ctx, &c))
		right := entities.ChallengeOption{ChallengeID: c.ID, Text: "el hombre", Correct: true}
		wrong := entities.ChallengeOption{ChallengeID: c.ID, Text: "la mujer"}
		require.NoError(t, store.Challenges.CreateOption(ctx, &right))
		require.NoError(t, store.Challenges.CreateOption(ctx, &wrong))
		if i == 0 {
			e.challenge, e.correctOption, e.wrongOption = c, right, wrong
		}
	}
	return e
}

// run feeds the updates to the handler and waits until all are processed.
func (e *botEnv) run(t *testing.T, updates ...tgbotapi.Update) {
	t.Helper()
	e.bot.updates = make(chan tgbotapi.Update, len(updates))
	for _, u := range updates {
		e.bot.updates <- u
	}
	close(e.bot.updates)
	require.NoError(t, e.handler.Run(context.Background()))
}

func command(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: testChatID},
		From: &tgbotapi.User{ID: testUserID, FirstName: "Ana"},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])},
		},
	}}
}

func typed(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: testChatID},
		From: &tgbotapi.User{ID: testUserID, FirstName: "Ana"},
	}}
}

func callback(data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb-1",
		From: &tgbotapi.User{ID: testUserID, FirstName: "Ana"},
		Message: &tgbotapi.Message{
			MessageID: 100,
			Chat:      &tgbotapi.Chat{ID: testChatID},
		},
		Data: data,
	}}
}

func TestStartListsCourses(t *testing.T) {
	e := newBotEnv(t)
	e.run(t, command("/start"))

	texts := e.bot.texts()
	require.Len(t, texts, 2)
	assert.Equal(t, msgWelcome, texts[0])
	assert.Equal(t, msgPickCourse, texts[1])

	msg := e.bot.sent[1].(tgbotapi.MessageConfig)
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 1)
	assert.Equal(t, "Spanish", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, buildCourseCallback(e.course.ID), *kb.InlineKeyboard[0][0].CallbackData)
}

func TestLessonWithoutCourse(t *testing.T) {
	e := newBotEnv(t)
	e.run(t, command("/lesson"), command("/learn"), typed("el hombre"))

	assert.Equal(t, []string{msgNoActiveCourse, msgNoActiveCourse, msgNoPendingQuestion}, e.bot.texts())
}

func TestPickCourseAndAnswerByTyping(t *testing.T) {
	e := newBotEnv(t)
	e.run(t,
		callback(buildCourseCallback(e.course.ID)),
		command("/lesson"),
		typed("El Hombre!"),
	)

	texts := e.bot.texts()
	require.Len(t, texts, 4)
	assert.Contains(t, texts[0], "Active course: <b>Spanish</b>")
	assert.Contains(t, texts[1], "the man")
	assert.Equal(t, msgCorrect, texts[2])
	assert.Contains(t, texts[3], "the woman")

	require.Len(t, e.bot.requests, 1)
	assert.Equal(t, "cb-1", e.bot.requests[0].(tgbotapi.CallbackConfig).CallbackQueryID)

	p, err := e.store.UserProgress.Get(context.Background(), userID(testUserID))
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.UserName)
	assert.Equal(t, entities.PointsPerChallenge, p.Points)
}

func TestWrongOptionCostsHeart(t *testing.T) {
	e := newBotEnv(t)
	e.run(t,
		callback(buildCourseCallback(e.course.ID)),
		callback(buildAnswerCallback(e.lesson.ID, e.challenge.ID, e.wrongOption.ID)),
	)

	texts := e.bot.texts()
	require.Len(t, texts, 3)
	assert.Equal(t, formatWrong("el hombre"), texts[1])
	assert.Contains(t, texts[2], "the man", "the failed challenge is asked again")

	p, err := e.store.UserProgress.Get(context.Background(), userID(testUserID))
	require.NoError(t, err)
	assert.Equal(t, entities.MaxHearts-1, p.Hearts)
}

func TestAnswerRecordedWhenKeyboardEditFails(t *testing.T) {
	e := newBotEnv(t)
	e.bot.failMarkupEdits = true
	e.run(t,
		callback(buildCourseCallback(e.course.ID)),
		callback(buildAnswerCallback(e.lesson.ID, e.challenge.ID, e.correctOption.ID)),
	)

	texts := e.bot.texts()
	require.Len(t, texts, 3)
	assert.Equal(t, msgCorrect, texts[1])
	assert.Contains(t, texts[2], "the woman")

	p, err := e.store.UserProgress.Get(context.Background(), userID(testUserID))
	require.NoError(t, err)
	assert.Equal(t, entities.PointsPerChallenge, p.Points)
}

func TestLastHeartLost(t *testing.T) {
	e := newBotEnv(t)
	e.run(t, callback(buildCourseCallback(e.course.ID)))
	require.NoError(t, e.store.UserProgress.UpdateEconomy(context.Background(), userID(testUserID), 1, 0))

	e.run(t, callback(buildAnswerCallback(e.lesson.ID, e.challenge.ID, e.wrongOption.ID)))
	texts := e.bot.texts()
	assert.Equal(t, msgOutOfHearts, texts[len(texts)-1])

	e.run(t, callback(buildAnswerCallback(e.lesson.ID, e.challenge.ID, e.correctOption.ID)))
	texts = e.bot.texts()
	assert.Equal(t, msgOutOfHearts, texts[len(texts)-1], "a new challenge cannot be completed without hearts")

	e.run(t, command("/refill"))
	texts = e.bot.texts()
	assert.Equal(t, msgNotEnoughPoints, texts[len(texts)-1])
}

func TestRefillHeartsFull(t *testing.T) {
	e := newBotEnv(t)
	e.run(t, callback(buildCourseCallback(e.course.ID)), command("/refill"))

	texts := e.bot.texts()
	assert.Equal(t, msgHeartsFull, texts[len(texts)-1])
}

func TestMalformedCallbackReportsError(t *testing.T) {
	e := newBotEnv(t)
	e.run(t, callback("answer:1:x"), callback("bogus"))

	assert.Equal(t, []string{msgInternalError}, e.bot.texts())
	assert.Len(t, e.bot.requests, 2, "every callback is answered")
}

func TestUnknownCommandAndLeaderboard(t *testing.T) {
	e := newBotEnv(t)
	e.run(t, command("/dance"), command("/leaderboard"))

	assert.Equal(t, []string{msgUnknownCommand, msgEmptyLeaderboard}, e.bot.texts())
}
