// Package telegram sends notification messages through the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v4"
)

// Config holds the settings for the Telegram sender
type Config struct {
	Token  string
	ChatID int64
	// Offline skips the token check against the Bot API; used in tests
	Offline bool
}

// botAPI is the slice of telebot the sender uses, substitutable in tests
type botAPI interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Sender posts messages to a single configured chat
type Sender struct {
	bot  botAPI
	chat *tele.Chat
}

// New creates a Sender for the configured bot token and chat
func New(config *Config) (*Sender, error) {
	if config.Token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if config.ChatID == 0 {
		return nil, fmt.Errorf("telegram chat ID is required")
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:   config.Token,
		Offline: config.Offline,
		Poller:  &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	return &Sender{
		bot:  bot,
		chat: &tele.Chat{ID: config.ChatID},
	}, nil
}

// NewWithBot wires a Sender to an existing bot implementation; tests use
// this to capture outgoing messages.
func NewWithBot(bot botAPI, chatID int64) *Sender {
	return &Sender{bot: bot, chat: &tele.Chat{ID: chatID}}
}

// SendPhoto posts a photo from a local file with a Markdown caption
func (s *Sender) SendPhoto(ctx context.Context, photoPath, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	photo := &tele.Photo{
		File:    tele.FromDisk(photoPath),
		Caption: caption,
	}
	if _, err := s.bot.Send(s.chat, photo, &tele.SendOptions{ParseMode: tele.ModeMarkdown}); err != nil {
		return fmt.Errorf("sending photo message: %w", err)
	}
	return nil
}

// SendMessage posts a plain Markdown message without an attachment
func (s *Sender) SendMessage(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.bot.Send(s.chat, text, &tele.SendOptions{ParseMode: tele.ModeMarkdown}); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}
