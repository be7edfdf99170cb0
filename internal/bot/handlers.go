package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ViacheslavMelnichenko/constant-learning/internal/database"
	"github.com/ViacheslavMelnichenko/constant-learning/internal/messages"
	"github.com/ViacheslavMelnichenko/constant-learning/internal/scheduler"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleUpdate dispatches a single incoming update to its command handler
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID
	command, args := splitCommand(update.Message.Text)
	if command == "" {
		return
	}

	switch command {
	case "start_learning":
		b.handleStartLearning(ctx, chatID, update.Message.Chat.Title)
	case "stop_learning":
		b.handleStopLearning(ctx, chatID)
	case "restart_progress":
		b.handleRestartProgress(ctx, chatID)
	case "set_repetition_time":
		b.handleSetRepetitionTime(ctx, chatID, args)
	case "set_new_words_time":
		b.handleSetNewWordsTime(ctx, chatID, args)
	case "set_words_count":
		b.handleSetWordsCount(ctx, chatID, args)
	case "help", "start":
		b.reply(chatID, messages.Get(messages.Help))
	}
}

// splitCommand normalizes a message into a command name and arguments.
// It strips the leading slash and any @botname suffix, lowercases the
// name, and accepts hyphens as an alternative spelling for underscores.
func splitCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}

	name := fields[0]
	if !strings.HasPrefix(name, "/") {
		return "", nil
	}
	name = strings.TrimPrefix(name, "/")
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "-", "_")

	return name, fields[1:]
}

func (b *Bot) handleStartLearning(ctx context.Context, chatID int64, title string) {
	active, err := b.chats.IsActive(ctx, chatID)
	if err != nil {
		log.Printf("Error checking registration for chat %d: %v", chatID, err)
		b.reply(chatID, messages.Get(messages.CommandFailed))
		return
	}
	if active {
		b.reply(chatID, messages.Get(messages.ChatAlreadyRegistered))
		return
	}

	reg, err := b.chats.Register(ctx, chatID, title)
	if err != nil {
		log.Printf("Error registering chat %d: %v", chatID, err)
		b.reply(chatID, messages.Get(messages.CommandFailed))
		return
	}

	log.Printf("Chat %d registered for learning", chatID)
	b.reply(chatID, messages.Get(messages.ChatRegistered, reg.NewWordsTime, reg.RepetitionTime))
}

func (b *Bot) handleStopLearning(ctx context.Context, chatID int64) {
	active, err := b.chats.IsActive(ctx, chatID)
	if err != nil {
		log.Printf("Error checking registration for chat %d: %v", chatID, err)
		b.reply(chatID, messages.Get(messages.CommandFailed))
		return
	}
	if !active {
		b.reply(chatID, messages.Get(messages.ChatNotRegistered))
		return
	}

	if err := b.chats.Deactivate(ctx, chatID); err != nil {
		log.Printf("Error deactivating chat %d: %v", chatID, err)
		b.reply(chatID, messages.Get(messages.CommandFailed))
		return
	}

	log.Printf("Chat %d stopped learning", chatID)
	b.reply(chatID, messages.Get(messages.LearningStopped))
}

func (b *Bot) handleRestartProgress(ctx context.Context, chatID int64) {
	active, err := b.chats.IsActive(ctx, chatID)
	if err != nil {
		log.Printf("Error checking registration for chat %d: %v", chatID, err)
		b.reply(chatID, messages.Get(messages.CommandFailed))
		return
	}
	if !active {
		b.reply(chatID, messages.Get(messages.ChatNotRegistered))
		return
	}

	removed, err := b.learned.ResetProgress(ctx, chatID)
	if err != nil {
		log.Printf("Error resetting progress for chat %d: %v", chatID, err)
		b.reply(chatID, messages.Get(messages.CommandFailed))
		return
	}

	log.Printf("Chat %d restarted progress, %d words removed", chatID, removed)
	b.reply(chatID, messages.Get(messages.ProgressRestarted, removed))
}

func (b *Bot) handleSetRepetitionTime(ctx context.Context, chatID int64, args []string) {
	normalized, ok := parseTimeArg(args)
	if !ok {
		b.reply(chatID, messages.Get(messages.InvalidTimeFormat))
		return
	}

	if err := b.chats.UpdateRepetitionTime(ctx, chatID, normalized); err != nil {
		b.replyUpdateError(chatID, "repetition time", err)
		return
	}
	b.reply(chatID, messages.Get(messages.RepetitionTimeSet, normalized))
}

func (b *Bot) handleSetNewWordsTime(ctx context.Context, chatID int64, args []string) {
	normalized, ok := parseTimeArg(args)
	if !ok {
		b.reply(chatID, messages.Get(messages.InvalidTimeFormat))
		return
	}

	if err := b.chats.UpdateNewWordsTime(ctx, chatID, normalized); err != nil {
		b.replyUpdateError(chatID, "new words time", err)
		return
	}
	b.reply(chatID, messages.Get(messages.NewWordsTimeSet, normalized))
}

func (b *Bot) handleSetWordsCount(ctx context.Context, chatID int64, args []string) {
	newCount, repCount, ok := parseWordsCountArgs(args)
	if !ok {
		b.reply(chatID, messages.Get(messages.InvalidWordsCountFormat))
		return
	}

	if err := b.chats.UpdateWordsCount(ctx, chatID, newCount, repCount); err != nil {
		b.replyUpdateError(chatID, "words count", err)
		return
	}
	b.reply(chatID, messages.Get(messages.WordsCountSet, newCount, repCount))
}

// replyUpdateError distinguishes the expected not-registered case from
// real storage failures
func (b *Bot) replyUpdateError(chatID int64, what string, err error) {
	if errors.Is(err, database.ErrNotRegistered) {
		b.reply(chatID, messages.Get(messages.ChatNotRegistered))
		return
	}
	log.Printf("Error updating %s for chat %d: %v", what, chatID, err)
	b.reply(chatID, messages.Get(messages.CommandFailed))
}

func (b *Bot) reply(chatID int64, text string) {
	if err := b.Send(chatID, text); err != nil {
		log.Printf("Failed to reply to chat %d: %v", chatID, err)
	}
}

// parseTimeArg validates a single HH:MM argument and returns it in
// normalized zero-padded form
func parseTimeArg(args []string) (string, bool) {
	if len(args) != 1 {
		return "", false
	}
	hour, minute, err := scheduler.ParseClock(args[0])
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// parseWordsCountArgs validates the two positive batch-size arguments
func parseWordsCountArgs(args []string) (newCount, repCount int, ok bool) {
	if len(args) != 2 {
		return 0, 0, false
	}
	newCount, err := strconv.Atoi(args[0])
	if err != nil || newCount <= 0 {
		return 0, 0, false
	}
	repCount, err = strconv.Atoi(args[1])
	if err != nil || repCount <= 0 {
		return 0, 0, false
	}
	return newCount, repCount, true
}
