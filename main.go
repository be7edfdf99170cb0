package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ViacheslavMelnichenko/constant-learning/internal/bot"
	"github.com/ViacheslavMelnichenko/constant-learning/internal/database"
	"github.com/ViacheslavMelnichenko/constant-learning/internal/importer"
	"github.com/ViacheslavMelnichenko/constant-learning/internal/scheduler"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config, err := bot.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	chats := database.NewChatRegistrationRepository(database.DB)
	words := database.NewWordRepository(database.DB)
	learned := database.NewLearnedWordRepository(database.DB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if config.WordsFile != "" {
		if _, err := importer.Run(ctx, words, importer.DefaultConfig(config.WordsFile)); err != nil {
			log.Fatalf("Failed to import words: %v", err)
		}
	}

	b, err := bot.New(config, chats, learned)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	dispatcher := scheduler.New(chats, words, learned, b, scheduler.Config{
		NewWordsCount:        config.NewWordsCount,
		RepetitionWordsCount: config.RepetitionWordsCount,
		AnswerDelay:          config.AnswerDelay,
	})
	if err := dispatcher.Start(ctx); err != nil {
		log.Fatalf("Failed to start dispatcher: %v", err)
	}
	defer dispatcher.Stop()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	b.Start(ctx)
}
