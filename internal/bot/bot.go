// Package bot is the Telegram boundary: it receives chat commands,
// translates them into registry and progress operations, and delivers
// the scheduled messages back to the chats.
package bot

import (
	"context"
	"fmt"
	"log"

	"github.com/ViacheslavMelnichenko/constant-learning/internal/database"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API client together with the storage it needs
// to serve chat commands
type Bot struct {
	api     *tgbotapi.BotAPI
	chats   *database.ChatRegistrationRepository
	learned *database.LearnedWordRepository
	config  *Config
}

// New creates and authorizes a bot instance
func New(config *Config, chats *database.ChatRegistrationRepository, learned *database.LearnedWordRepository) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(config.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %v", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:     api,
		chats:   chats,
		learned: learned,
		config:  config,
	}, nil
}

// Send delivers a Markdown-formatted message to a chat
func (b *Bot) Send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %v", chatID, err)
	}
	return nil
}

// Start runs the long-polling update loop until the context is cancelled
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	log.Println("Bot started, listening for commands")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Println("Bot stopped")
			return
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}
