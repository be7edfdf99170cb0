package bot

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ViacheslavMelnichenko/constant-learning/internal/scheduler"
)

// Config holds the bot token and the process-wide learning defaults
type Config struct {
	Token                string
	NewWordsCount        int
	RepetitionWordsCount int
	AnswerDelay          time.Duration
	WordsFile            string
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		NewWordsCount:        scheduler.DefaultNewWordsCount,
		RepetitionWordsCount: scheduler.DefaultRepetitionWordsCount,
		AnswerDelay:          scheduler.DefaultAnswerDelay,
	}
}

// ConfigFromEnv builds configuration from environment variables.
// TELEGRAM_BOT_TOKEN is required; everything else falls back to defaults.
func ConfigFromEnv() (*Config, error) {
	config := DefaultConfig()

	config.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	if config.Token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	if v := os.Getenv("NEW_WORDS_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid NEW_WORDS_COUNT value: %q", v)
		}
		config.NewWordsCount = n
	}

	if v := os.Getenv("REPETITION_WORDS_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid REPETITION_WORDS_COUNT value: %q", v)
		}
		config.RepetitionWordsCount = n
	}

	if v := os.Getenv("ANSWER_DELAY_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid ANSWER_DELAY_SECONDS value: %q", v)
		}
		config.AnswerDelay = time.Duration(n) * time.Second
	}

	config.WordsFile = os.Getenv("WORDS_FILE")

	return config, nil
}
