package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ViacheslavMelnichenko/constant-learning/pkg/models"
	"github.com/jmoiron/sqlx"
)

// ErrNotRegistered is returned by update operations when the chat has no
// active registration. Schedule edits must not apply to inactive chats.
var ErrNotRegistered = errors.New("chat is not registered or not active")

// ChatRegistrationRepository handles database operations for chat registrations
type ChatRegistrationRepository struct {
	db *sqlx.DB
}

// NewChatRegistrationRepository creates a new repository instance
func NewChatRegistrationRepository(db *sqlx.DB) *ChatRegistrationRepository {
	return &ChatRegistrationRepository{db: db}
}

// IsActive reports whether the chat has an active registration
func (r *ChatRegistrationRepository) IsActive(ctx context.Context, chatID int64) (bool, error) {
	var count int
	query := r.db.Rebind("SELECT COUNT(*) FROM chat_registrations WHERE chat_id = ? AND is_active")
	if err := r.db.GetContext(ctx, &count, query, chatID); err != nil {
		return false, fmt.Errorf("failed to check chat registration: %v", err)
	}
	return count > 0, nil
}

// Register activates learning for a chat. Registering an already active
// chat returns the existing record unchanged; an inactive registration is
// reactivated with a refreshed title; otherwise a new record is created
// with the default schedule (new words 20:00, repetition 09:00, batch
// sizes 0 = process-wide defaults). The conditional upsert keeps
// concurrent calls for the same chat from creating duplicate rows.
func (r *ChatRegistrationRepository) Register(ctx context.Context, chatID int64, title string) (*models.ChatRegistration, error) {
	query := r.db.Rebind(`
		INSERT INTO chat_registrations (chat_id, chat_title, is_active, registered_at)
		VALUES (?, ?, TRUE, ?)
		ON CONFLICT (chat_id) DO UPDATE SET
			is_active = TRUE,
			chat_title = excluded.chat_title
		WHERE chat_registrations.is_active = FALSE
	`)
	if _, err := r.db.ExecContext(ctx, query, chatID, title, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to register chat %d: %v", chatID, err)
	}

	var reg models.ChatRegistration
	query = r.db.Rebind("SELECT * FROM chat_registrations WHERE chat_id = ?")
	if err := r.db.GetContext(ctx, &reg, query, chatID); err != nil {
		return nil, fmt.Errorf("failed to load registration for chat %d: %v", chatID, err)
	}
	return &reg, nil
}

// Deactivate stops learning for a chat but keeps its history.
// Unknown chats are a no-op.
func (r *ChatRegistrationRepository) Deactivate(ctx context.Context, chatID int64) error {
	query := r.db.Rebind("UPDATE chat_registrations SET is_active = FALSE WHERE chat_id = ?")
	if _, err := r.db.ExecContext(ctx, query, chatID); err != nil {
		return fmt.Errorf("failed to deactivate chat %d: %v", chatID, err)
	}
	return nil
}

// ListActiveIDs returns the chat ids of all active registrations
func (r *ChatRegistrationRepository) ListActiveIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, "SELECT chat_id FROM chat_registrations WHERE is_active"); err != nil {
		return nil, fmt.Errorf("failed to list active chats: %v", err)
	}
	return ids, nil
}

// Get returns the registration for an active chat, or nil if the chat is
// unknown or inactive
func (r *ChatRegistrationRepository) Get(ctx context.Context, chatID int64) (*models.ChatRegistration, error) {
	var reg models.ChatRegistration
	query := r.db.Rebind("SELECT * FROM chat_registrations WHERE chat_id = ? AND is_active")
	err := r.db.GetContext(ctx, &reg, query, chatID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration for chat %d: %v", chatID, err)
	}
	return &reg, nil
}

// UpdateRepetitionTime sets the daily repetition time for an active chat
func (r *ChatRegistrationRepository) UpdateRepetitionTime(ctx context.Context, chatID int64, timeOfDay string) error {
	query := r.db.Rebind("UPDATE chat_registrations SET repetition_time = ? WHERE chat_id = ? AND is_active")
	return r.updateActive(ctx, query, timeOfDay, chatID)
}

// UpdateNewWordsTime sets the daily new-words time for an active chat
func (r *ChatRegistrationRepository) UpdateNewWordsTime(ctx context.Context, chatID int64, timeOfDay string) error {
	query := r.db.Rebind("UPDATE chat_registrations SET new_words_time = ? WHERE chat_id = ? AND is_active")
	return r.updateActive(ctx, query, timeOfDay, chatID)
}

// UpdateWordsCount sets the per-chat batch sizes for both flows
func (r *ChatRegistrationRepository) UpdateWordsCount(ctx context.Context, chatID int64, newWordsCount, repetitionWordsCount int) error {
	query := r.db.Rebind("UPDATE chat_registrations SET new_words_count = ?, repetition_words_count = ? WHERE chat_id = ? AND is_active")
	return r.updateActive(ctx, query, newWordsCount, repetitionWordsCount, chatID)
}

// updateActive runs an update that targets a single active registration
// and maps "no row matched" to ErrNotRegistered
func (r *ChatRegistrationRepository) updateActive(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update registration: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return ErrNotRegistered
	}
	return nil
}
