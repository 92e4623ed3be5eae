// Package notify pushes high-priority opportunities to Telegram.
package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/oppbot/oppbot/internal/metrics"
	"github.com/oppbot/oppbot/internal/retry"
	"github.com/oppbot/oppbot/internal/store"
)

// Notifier sends Telegram messages for opportunities that cross the
// priority threshold. A nil Notifier is safe and sends nothing.
type Notifier struct {
	bot       *tgbotapi.BotAPI
	chatID    int64
	threshold float64
}

// New connects to the Telegram bot API. threshold gates HighPriority.
func New(token string, chatID int64, threshold float64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("notify: init telegram bot: %w", err)
	}
	return &Notifier{bot: bot, chatID: chatID, threshold: threshold}, nil
}

// HighPriority sends an alert when the opportunity scores at or above
// the threshold. Below-threshold records are silently skipped.
func (n *Notifier) HighPriority(opp store.Opportunity) error {
	if n == nil || opp.PriorityScore < n.threshold {
		return nil
	}
	text := fmt.Sprintf(
		"🔥 <b>%s</b>\n"+
			"📂 %s\n"+
			"⭐ %.1f/10",
		html.EscapeString(opp.Title),
		opp.Category,
		opp.PriorityScore,
	)
	if opp.Deadline != "" {
		text += fmt.Sprintf("\n⏰ deadline %s", opp.Deadline)
	}
	if opp.Compensation != "" {
		text += fmt.Sprintf("\n💰 %s", html.EscapeString(opp.Compensation))
	}
	return n.send(text)
}

// DeadlineSoon alerts about an opportunity whose deadline is now close.
func (n *Notifier) DeadlineSoon(opp store.Opportunity, days int) error {
	if n == nil {
		return nil
	}
	text := fmt.Sprintf(
		"⏰ <b>%s</b>\ndeadline %s (%d days left)",
		html.EscapeString(opp.Title), opp.Deadline, days)
	return n.send(text)
}

func (n *Notifier) send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "HTML"
	_, err := retry.Do(context.Background(), retry.Default, func() (tgbotapi.Message, error) {
		return n.bot.Send(msg)
	})
	if err != nil {
		slog.Warn("notify: telegram send failed", slog.Any("error", err))
		return fmt.Errorf("notify: send: %w", err)
	}
	metrics.IncrNotifySent()
	return nil
}
