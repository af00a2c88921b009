package serve

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	nanobot "github.com/ttracx/sales-marketing-nanobot-swarm"
)

// TelegramBot handles incoming Telegram messages via long polling. Each text
// message is treated as a goal: it is routed to a team, dispatched, and the
// result is sent back. Runs are recorded like HTTP runs.
type TelegramBot struct {
	bot *tgbotapi.BotAPI
	srv *Server
}

// NewTelegramBot creates a TelegramBot connected to the given token.
func NewTelegramBot(token string, srv *Server) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	bot.Debug = false
	return &TelegramBot{bot: bot, srv: srv}, nil
}

// Start runs the long-polling loop until ctx is cancelled.
func (t *TelegramBot) Start(ctx context.Context) {
	slog.Info("telegram bridge started", "bot", t.bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return
			}
			go t.handle(ctx, update)
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			return
		}
	}
}

// handle processes a single Telegram update.
func (t *TelegramBot) handle(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	goal := update.Message.Text
	if goal == "" {
		return
	}
	chatID := update.Message.Chat.ID

	t0 := time.Now()
	team := nanobot.DetectTeam(goal)
	messages := swarmMessages(team, goal, nil)

	result, err := t.srv.dispatcher.Dispatch(ctx, messages, swarmRunTemperature, swarmRunMaxTokens)
	if err != nil {
		slog.Error("telegram: dispatch failed", "team", team, "error", err)
		t.srv.recordRun("telegram", goal, team, "", RunFailed, err.Error(), time.Since(t0))
		t.bot.Send(tgbotapi.NewMessage(chatID, "Error: "+err.Error()))
		return
	}

	t.srv.recordRun("telegram", goal, team, result.Backend, RunCompleted, "", time.Since(t0))

	if _, err := t.bot.Send(tgbotapi.NewMessage(chatID, result.Content)); err != nil {
		slog.Warn("telegram: failed to send message", "error", err)
	}
}
