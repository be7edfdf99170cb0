package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ViacheslavMelnichenko/constant-learning/pkg/models"
	"github.com/jmoiron/sqlx"
)

// LearnedWordRepository is the only writer of per-chat learned marks
type LearnedWordRepository struct {
	db *sqlx.DB
}

// NewLearnedWordRepository creates a new repository instance
func NewLearnedWordRepository(db *sqlx.DB) *LearnedWordRepository {
	return &LearnedWordRepository{db: db}
}

// MarkLearned records that the words were introduced to the chat. Ids
// that already have a mark keep their original timestamps and counter,
// so calling twice with overlapping ids is safe.
func (r *LearnedWordRepository) MarkLearned(ctx context.Context, chatID int64, wordIDs []int) error {
	if len(wordIDs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	query := tx.Rebind(`
		INSERT INTO learned_words (chat_id, word_id, learned_at, last_repeated_at, repetition_count)
		VALUES (?, ?, ?, ?, 0)
		ON CONFLICT (chat_id, word_id) DO NOTHING
	`)
	for _, wordID := range wordIDs {
		if _, err := tx.ExecContext(ctx, query, chatID, wordID, now, now); err != nil {
			return fmt.Errorf("failed to mark word %d as learned: %v", wordID, err)
		}
	}

	return tx.Commit()
}

// RecordRepetition bumps the repetition counter and last-repeated
// timestamp for each marked word. Ids without a mark are skipped.
func (r *LearnedWordRepository) RecordRepetition(ctx context.Context, chatID int64, wordIDs []int) error {
	if len(wordIDs) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`
		UPDATE learned_words
		SET last_repeated_at = ?, repetition_count = repetition_count + 1
		WHERE chat_id = ? AND word_id IN (?)
	`, time.Now().UTC(), chatID, wordIDs)
	if err != nil {
		return fmt.Errorf("failed to build repetition query: %v", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to record repetition: %v", err)
	}
	return nil
}

// ResetProgress deletes every learned mark for the chat in one statement
// and returns how many were removed
func (r *LearnedWordRepository) ResetProgress(ctx context.Context, chatID int64) (int, error) {
	query := r.db.Rebind("DELETE FROM learned_words WHERE chat_id = ?")
	result, err := r.db.ExecContext(ctx, query, chatID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset progress for chat %d: %v", chatID, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %v", err)
	}
	return int(removed), nil
}

// Get returns the learned mark for a chat/word pair, or nil if none exists
func (r *LearnedWordRepository) Get(ctx context.Context, chatID int64, wordID int) (*models.LearnedWord, error) {
	var mark models.LearnedWord
	query := r.db.Rebind("SELECT * FROM learned_words WHERE chat_id = ? AND word_id = ?")
	err := r.db.GetContext(ctx, &mark, query, chatID, wordID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learned word: %v", err)
	}
	return &mark, nil
}

// CountForChat returns the size of the chat's learned set
func (r *LearnedWordRepository) CountForChat(ctx context.Context, chatID int64) (int, error) {
	var count int
	query := r.db.Rebind("SELECT COUNT(*) FROM learned_words WHERE chat_id = ?")
	if err := r.db.GetContext(ctx, &count, query, chatID); err != nil {
		return 0, fmt.Errorf("failed to count learned words: %v", err)
	}
	return count, nil
}
