package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lashon-study/lashon/internal/telegram"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Serve the daily quiz over Telegram",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.cfg.ValidateBot(); err != nil {
			return err
		}

		api, err := tgbotapi.NewBotAPI(e.cfg.Telegram.Token)
		if err != nil {
			return fmt.Errorf("connect to telegram: %w", err)
		}
		api.Debug = e.cfg.Telegram.Debug
		e.log.Info("authorized on telegram", zap.String("username", api.Self.UserName))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		u := tgbotapi.NewUpdate(0)
		u.Timeout = e.cfg.Telegram.PollTimeout
		updates := api.GetUpdatesChan(u)
		defer api.StopReceivingUpdates()

		h := telegram.NewHandler(api, e.log, e.pool, e.recorder, telegram.Options{
			AllowedChatID: e.cfg.Telegram.AllowedChatID,
			QuizCount:     e.cfg.Quiz.DailyCount,
		})
		if err := h.Run(ctx, updates); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		e.log.Info("shutdown signal received")
		return nil
	},
}
