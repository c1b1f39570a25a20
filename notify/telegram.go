package notify

import (
	"badminton-bot/types"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// TelegramNotifier pushes the same digest to a static list of chats.
// Optional channel, enabled when a bot token and chat IDs are configured.
type TelegramNotifier struct {
	bot     *tgbotapi.BotAPI
	chatIDs []int64
}

func NewTelegramNotifier(token string, chatIDs []int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Printf("🤖 Telegram notifier authorized on account %s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, chatIDs: chatIDs}, nil
}

func (n *TelegramNotifier) Notify(hits []types.SlotHit) error {
	if len(hits) == 0 {
		return nil
	}

	text := Digest(hits)
	var lastErr error
	for _, chatID := range n.chatIDs {
		if _, err := n.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			log.Printf("⚠️ Telegram send failed for chat %d: %v", chatID, err)
			lastErr = err
		}
	}
	return lastErr
}
