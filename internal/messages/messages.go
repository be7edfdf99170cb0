// Package messages holds every user-facing text the bot can send.
// Message keys form a closed enumeration so a missing text is a
// programming error, not a runtime lookup failure.
package messages

import "fmt"

// Key identifies one canned bot message
type Key int

const (
	// Registration
	ChatRegistered Key = iota
	ChatAlreadyRegistered
	ChatNotRegistered
	LearningStopped

	// Progress
	ProgressRestarted

	// Schedule configuration
	InvalidTimeFormat
	RepetitionTimeSet
	NewWordsTimeSet
	InvalidWordsCountFormat
	WordsCountSet

	// Generic
	CommandFailed
	Help

	// Flow headers and outcomes
	NewWordsHeader
	NoNewWords
	AllWordsLearned
	RepetitionHeader
	NoRepetitionWords
	AnswersHeader
)

var catalog = map[Key]string{
	ChatRegistered:        "✅ Learning started!\n\nNew words at %s, repetition at %s.\nUse /help to see all commands.",
	ChatAlreadyRegistered: "This chat is already registered. Learning is on! 🎓",
	ChatNotRegistered:     "This chat is not registered. Send /start_learning first.",
	LearningStopped:       "🛑 Learning stopped. Your progress is kept.\nSend /start_learning to resume.",

	ProgressRestarted: "✅ Progress restarted!\n\nRemoved %d learned words.\nStarting from scratch! 🎯",

	InvalidTimeFormat:       "❌ Invalid time format. Use HH:MM, for example 09:30.",
	RepetitionTimeSet:       "⏰ Repetition time set to %s.",
	NewWordsTimeSet:         "⏰ New words time set to %s.",
	InvalidWordsCountFormat: "❌ Usage: /set_words_count <new> <repetition>, both positive numbers.",
	WordsCountSet:           "🔢 Words count set: %d new, %d for repetition.",

	CommandFailed: "❌ Something went wrong. Please try again later.",
	Help: `📚 *Language Learning Bot*

🔹 Available commands:
• /start_learning - Start learning in this chat
• /stop_learning - Stop learning
• /restart_progress - Reset learning progress
• /set_new_words_time HH:MM - When to send new words
• /set_repetition_time HH:MM - When to repeat learned words
• /set_words_count N M - Batch sizes (new / repetition)

📝 After registration, the bot automatically sends:
• Repetition of learned words
• New words to learn`,

	NewWordsHeader:    "🆕 New words:",
	NoNewWords:        "No new words to learn.",
	AllWordsLearned:   "All words already learned! 🎉",
	RepetitionHeader:  "📚 Repetition! Recall the translation:",
	NoRepetitionWords: "No words for repetition.",
	AnswersHeader:     "✅ Answers:",
}

// Get resolves a message key, applying fmt arguments when present
func Get(key Key, args ...interface{}) string {
	text, ok := catalog[key]
	if !ok {
		return fmt.Sprintf("[message not found: %d]", key)
	}
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}
