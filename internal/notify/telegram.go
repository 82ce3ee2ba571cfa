package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram delivers reminders as bot messages, for owners who want
// them on their phone instead of the desktop.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("authorize telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Supported() bool {
	return t.bot != nil && t.chatID != 0
}

func (t *Telegram) RequestPermission(context.Context) error {
	// Authorization happened at construction; a configured chat is the
	// permission grant.
	if !t.Supported() {
		return ErrPermissionDenied
	}
	return nil
}

func (t *Telegram) Show(_ context.Context, n Notification) error {
	if !t.Supported() {
		return nil
	}
	msg := tgbotapi.NewMessage(t.chatID, fmt.Sprintf("%s\n%s", n.Title, n.Body))
	_, err := t.bot.Send(msg)
	return err
}
