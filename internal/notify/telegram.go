package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram sends notification payloads as messages to an operator chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram creates a Telegram notifier for the given bot token and chat.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

// Send delivers the payload as a formatted chat message.
func (t *Telegram) Send(_ context.Context, p Payload) error {
	text := fmt.Sprintf(
		"New booking %s\n\nType: %s\nRoom/Service: %s\nDates: %s → %s\nGuests: %s\nName: %s\nPhone: %s\nEmail: %s\nTotal: %s",
		p["booking_id"], p["booking_type"], p["room"],
		dashIfEmpty(p["checkin"]), dashIfEmpty(p["checkout"]),
		p["guests"], p["fullname"], p["phone"], p["email"], p["total"],
	)

	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
