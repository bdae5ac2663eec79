package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/lingua/internal/delivery/telegram"
	"github.com/aliskhannn/lingua/internal/service"
)

var errMissingTelegramToken = errors.New("TELEGRAM_API_TOKEN is required")

var botCommands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Start learning"},
	{Command: "courses", Description: "Pick a course"},
	{Command: "learn", Description: "Show units and lessons"},
	{Command: "lesson", Description: "Continue the active lesson"},
	{Command: "hearts", Description: "Hearts and XP"},
	{Command: "refill", Description: "Refill hearts for 10 XP"},
	{Command: "leaderboard", Description: "Top ten learners"},
	{Command: "quests", Description: "XP milestones"},
	{Command: "help", Description: "Help"},
}

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram front-end",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.TelegramAPIToken == "" {
			return errMissingTelegramToken
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
		if err != nil {
			return err
		}
		bot.Debug = cfg.Env != "production"
		log.Info("authorized on account", zap.String("username", bot.Self.UserName))

		if _, err := bot.Request(tgbotapi.NewSetMyCommands(botCommands...)); err != nil {
			log.Warn("failed to set bot commands", zap.Error(err))
		}

		store, closeStore, err := openStore(ctx, cfg.DB, migrateOnStart)
		if err != nil {
			return err
		}
		defer closeStore()

		board := service.NewLeaderboard(store.UserProgress, log)
		handler := telegram.NewHandler(
			bot,
			log,
			service.NewLearnService(store, board, cfg.Auth.AdminIDs),
			service.NewEconomyService(store, board, log),
			service.NewAnswerValidator(),
			telegram.NewPendingStore(),
		)

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			defer stop()
			defer bot.StopReceivingUpdates()
			err := handler.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
		g.Go(func() error {
			return board.Start(ctx, cfg.Leaderboard.RefreshSpec)
		})

		return g.Wait()
	},
}
