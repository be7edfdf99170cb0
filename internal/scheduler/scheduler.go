// Package scheduler runs the minute-granularity dispatch loop that
// decides, for every active chat, whether "now" matches its configured
// new-words or repetition time and runs the matching flow exactly once.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ViacheslavMelnichenko/constant-learning/internal/messages"
	"github.com/ViacheslavMelnichenko/constant-learning/pkg/models"
	"github.com/go-co-op/gocron"
)

// Default learning parameters, used when neither the environment nor the
// chat registration overrides them
const (
	DefaultNewWordsCount        = 3
	DefaultRepetitionWordsCount = 10
	DefaultAnswerDelay          = 60 * time.Second
)

// Flow identifies one of the two per-chat units of scheduled work
type Flow string

const (
	FlowNewWords   Flow = "new-words"
	FlowRepetition Flow = "repetition"
)

// Notifier delivers a formatted message to a chat
type Notifier interface {
	Send(chatID int64, text string) error
}

// ChatRegistry is the slice of registration storage the dispatcher needs
type ChatRegistry interface {
	ListActiveIDs(ctx context.Context) ([]int64, error)
	Get(ctx context.Context, chatID int64) (*models.ChatRegistration, error)
}

// WordStore selects the words for both flows
type WordStore interface {
	GetNewWords(ctx context.Context, chatID int64, count int) ([]models.Word, error)
	GetRandomLearnedWords(ctx context.Context, chatID int64, count int) ([]models.Word, error)
}

// ProgressTracker mutates the per-chat learned set
type ProgressTracker interface {
	MarkLearned(ctx context.Context, chatID int64, wordIDs []int) error
	RecordRepetition(ctx context.Context, chatID int64, wordIDs []int) error
}

// Config carries the process-wide learning defaults
type Config struct {
	NewWordsCount        int
	RepetitionWordsCount int
	AnswerDelay          time.Duration
}

type flightKey struct {
	chatID int64
	flow   Flow
}

// Dispatcher evaluates every active chat once per minute and runs the
// matching flow. Each tick is a complete, independent pass; there is no
// catch-up for minutes missed while the process was down.
type Dispatcher struct {
	scheduler *gocron.Scheduler
	chats     ChatRegistry
	words     WordStore
	progress  ProgressTracker
	notifier  Notifier
	config    Config

	// Guards against re-triggering a chat+flow that is still running,
	// e.g. a repetition flow whose answer delay spans the next tick.
	mu       sync.Mutex
	inFlight map[flightKey]bool

	now func() time.Time
}

// New creates a dispatcher. Zero config values fall back to the defaults.
func New(chats ChatRegistry, words WordStore, progress ProgressTracker, notifier Notifier, config Config) *Dispatcher {
	if config.NewWordsCount <= 0 {
		config.NewWordsCount = DefaultNewWordsCount
	}
	if config.RepetitionWordsCount <= 0 {
		config.RepetitionWordsCount = DefaultRepetitionWordsCount
	}
	if config.AnswerDelay < 0 {
		config.AnswerDelay = 0
	}

	return &Dispatcher{
		chats:    chats,
		words:    words,
		progress: progress,
		notifier: notifier,
		config:   config,
		inFlight: make(map[flightKey]bool),
		now:      time.Now,
	}
}

// Start schedules both flows to run every minute on the local clock
func (d *Dispatcher) Start(ctx context.Context) error {
	s := gocron.NewScheduler(time.Local)

	if _, err := s.Cron("* * * * *").SingletonMode().Do(func() {
		if err := d.RunTick(ctx, FlowNewWords); err != nil {
			log.Printf("New words tick failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule new words job: %v", err)
	}

	if _, err := s.Cron("* * * * *").SingletonMode().Do(func() {
		if err := d.RunTick(ctx, FlowRepetition); err != nil {
			log.Printf("Repetition tick failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule repetition job: %v", err)
	}

	s.StartAsync()
	d.scheduler = s
	log.Println("Dispatcher started, checking chats every minute")
	return nil
}

// Stop terminates the periodic trigger
func (d *Dispatcher) Stop() {
	if d.scheduler != nil {
		d.scheduler.Stop()
	}
}

// RunTick runs one complete dispatch pass for the given flow. A failure
// for one chat is logged and does not abort the pass for the others; a
// failure to list the active chats aborts the whole tick.
func (d *Dispatcher) RunTick(ctx context.Context, flow Flow) error {
	chatIDs, err := d.chats.ListActiveIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active chats: %v", err)
	}
	if len(chatIDs) == 0 {
		return nil
	}

	// Captured once so every chat in this tick compares against the
	// same minute.
	now := d.now()
	nowHour, nowMinute := now.Hour(), now.Minute()

	processed := 0
	for _, chatID := range chatIDs {
		reg, err := d.chats.Get(ctx, chatID)
		if err != nil {
			log.Printf("Error loading registration for chat %d: %v", chatID, err)
			continue
		}
		if reg == nil {
			// Deactivated since the listing
			continue
		}

		configured := reg.NewWordsTime
		if flow == FlowRepetition {
			configured = reg.RepetitionTime
		}

		hour, minute, err := ParseClock(configured)
		if err != nil {
			log.Printf("Chat %d has malformed %s time %q, skipping: %v", chatID, flow, configured, err)
			continue
		}
		if hour != nowHour || minute != nowMinute {
			continue
		}

		if err := d.runFlow(ctx, flow, reg); err != nil {
			log.Printf("Error running %s flow for chat %d: %v", flow, chatID, err)
			continue
		}
		processed++
	}

	if processed > 0 {
		log.Printf("%s check completed, processed %d chat(s)", flow, processed)
	}
	return nil
}

// runFlow executes one flow for one chat under the in-flight guard
func (d *Dispatcher) runFlow(ctx context.Context, flow Flow, reg *models.ChatRegistration) error {
	key := flightKey{chatID: reg.ChatID, flow: flow}

	d.mu.Lock()
	if d.inFlight[key] {
		d.mu.Unlock()
		log.Printf("Skipping %s for chat %d: previous run still in flight", flow, reg.ChatID)
		return nil
	}
	d.inFlight[key] = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		delete(d.inFlight, key)
		d.mu.Unlock()
	}()

	if flow == FlowNewWords {
		return d.sendNewWords(ctx, reg)
	}
	return d.sendRepetition(ctx, reg)
}

// sendNewWords introduces the next batch of unlearned words to the chat
// and marks them learned. Delivery failures are logged but the marks are
// still committed: the batch was handed off.
func (d *Dispatcher) sendNewWords(ctx context.Context, reg *models.ChatRegistration) error {
	count := reg.NewWordsCount
	if count <= 0 {
		count = d.config.NewWordsCount
	}

	words, err := d.words.GetNewWords(ctx, reg.ChatID, count)
	if err != nil {
		return fmt.Errorf("failed to select new words: %v", err)
	}

	if len(words) == 0 {
		if err := d.notifier.Send(reg.ChatID, messages.Get(messages.AllWordsLearned)); err != nil {
			log.Printf("Failed to send completion message to chat %d: %v", reg.ChatID, err)
		}
		return nil
	}

	if err := d.notifier.Send(reg.ChatID, messages.FormatNewWords(words)); err != nil {
		log.Printf("Failed to deliver new words to chat %d: %v", reg.ChatID, err)
	}

	if err := d.progress.MarkLearned(ctx, reg.ChatID, wordIDs(words)); err != nil {
		return fmt.Errorf("failed to mark words as learned: %v", err)
	}

	log.Printf("New words completed for chat %d, %d word(s) introduced", reg.ChatID, len(words))
	return nil
}

// sendRepetition quizzes the chat on a random sample of learned words:
// questions first, then the answers after a delay. A shutdown during the
// delay abandons the flow without touching the counters.
func (d *Dispatcher) sendRepetition(ctx context.Context, reg *models.ChatRegistration) error {
	count := reg.RepetitionWordsCount
	if count <= 0 {
		count = d.config.RepetitionWordsCount
	}

	words, err := d.words.GetRandomLearnedWords(ctx, reg.ChatID, count)
	if err != nil {
		return fmt.Errorf("failed to select learned words: %v", err)
	}
	if len(words) == 0 {
		// Nothing learned yet
		return nil
	}

	if err := d.notifier.Send(reg.ChatID, messages.FormatRepetitionQuestions(words)); err != nil {
		log.Printf("Failed to deliver questions to chat %d: %v", reg.ChatID, err)
	}

	select {
	case <-time.After(d.config.AnswerDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	// Counters are only incremented once the answers went out; a failed
	// delivery abandons the flow so the next run cannot double-count.
	if err := d.notifier.Send(reg.ChatID, messages.FormatRepetitionAnswers(words)); err != nil {
		return fmt.Errorf("failed to deliver answers: %v", err)
	}

	if err := d.progress.RecordRepetition(ctx, reg.ChatID, wordIDs(words)); err != nil {
		return fmt.Errorf("failed to record repetition: %v", err)
	}

	log.Printf("Repetition completed for chat %d, %d word(s) repeated", reg.ChatID, len(words))
	return nil
}

func wordIDs(words []models.Word) []int {
	ids := make([]int, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}
	return ids
}

// ParseClock parses a wall-clock "HH:MM" string into hour and minute
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	return t.Hour(), t.Minute(), nil
}
