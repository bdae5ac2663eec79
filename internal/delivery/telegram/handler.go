// Package telegram is a chat front-end over the learning services.
package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/requestcache"
	"github.com/aliskhannn/lingua/internal/requestctx"
	"github.com/aliskhannn/lingua/internal/service"
)

// Bot is the part of the Telegram client the handler uses.
type Bot interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type LearnService interface {
	GetUserProgress(ctx context.Context) (*entities.UserProgress, error)
	GetUnits(ctx context.Context) ([]entities.Unit, error)
	GetCourses(ctx context.Context) ([]entities.Course, error)
	GetLesson(ctx context.Context, id *int64) (*entities.Lesson, error)
	GetLessonPercentage(ctx context.Context) (int, error)
	GetUserSubscription(ctx context.Context) (*entities.SubscriptionStatus, error)
	GetTopTenUsers(ctx context.Context) ([]entities.LeaderboardEntry, error)
	GetQuests(ctx context.Context) ([]entities.QuestProgress, error)
}

type EconomyService interface {
	UpsertUserProgress(ctx context.Context, courseID int64) error
	ReduceHearts(ctx context.Context, challengeID int64) (service.HeartOutcome, error)
	RefillHearts(ctx context.Context) error
	UpsertChallengeProgress(ctx context.Context, challengeID int64) (service.HeartOutcome, error)
}

type AnswerValidator interface {
	Validate(userAnswer, correctAnswer string) bool
}

type Handler struct {
	bot       Bot
	logger    *zap.Logger
	learn     LearnService
	economy   EconomyService
	validator AnswerValidator
	pending   *PendingStore
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	learn LearnService,
	economy EconomyService,
	validator AnswerValidator,
	pending *PendingStore,
) *Handler {
	return &Handler{
		bot:       bot,
		logger:    logger,
		learn:     learn,
		economy:   economy,
		validator: validator,
		pending:   pending,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		from := update.CallbackQuery.From
		h.logger.Debug("callback received",
			zap.Int64("user_id", from.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(withUser(ctx, from), update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	ctx = withUser(ctx, update.Message.From)

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if !update.Message.IsCommand() {
		_ = h.withErrorHandling(h.handleTypedAnswer(update.Message.Text))(ctx, chatID)
		return
	}

	var fn HandlerFunc
	switch update.Message.Command() {
	case "start":
		fn = h.handleStart()
	case "courses":
		fn = h.handleCourses()
	case "learn":
		fn = h.handleLearn()
	case "lesson":
		fn = h.handleLesson()
	case "hearts":
		fn = h.handleHearts()
	case "refill":
		fn = h.handleRefill()
	case "leaderboard":
		fn = h.handleLeaderboard()
	case "quests":
		fn = h.handleQuests()
	case "help":
		fn = h.handleHelp()
	default:
		fn = h.handleUnknown()
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

// withUser attaches the Telegram user as caller and a fresh read cache.
func withUser(ctx context.Context, from *tgbotapi.User) context.Context {
	ctx = requestcache.WithCache(ctx)
	if from == nil {
		return ctx
	}
	return requestctx.WithIdentity(ctx, requestctx.Identity{
		UserID: userID(from.ID),
		Name:   from.FirstName,
	})
}

func userID(telegramID int64) string {
	return "tg:" + strconv.FormatInt(telegramID, 10)
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}
