package infrastructure

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramClient wraps the bot API for outbound sends. The reply path goes
// through the router; Notify is the fire-and-forget side-channel, throttled
// per destination chat.
type TelegramClient struct {
	Bot     *tgbotapi.BotAPI
	limiter *NotifyLimiter
}

func NewTelegramClient(token string, limiter *NotifyLimiter) (*TelegramClient, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return &TelegramClient{Bot: bot, limiter: limiter}, nil
}

// Notify sends an unsolicited message to a chat.
func (c *TelegramClient) Notify(chatID int64, text string) error {
	if c.limiter != nil && !c.limiter.Allow(chatID) {
		return fmt.Errorf("notification to %d dropped: rate limit", chatID)
	}
	_, err := c.Bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
