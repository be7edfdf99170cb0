package database

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/ViacheslavMelnichenko/constant-learning/pkg/models"
	"github.com/jmoiron/sqlx"
)

// WordRepository handles database operations for words
type WordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates a new repository instance
func NewWordRepository(db *sqlx.DB) *WordRepository {
	return &WordRepository{db: db}
}

// Count returns the number of words in the vocabulary
func (r *WordRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM words"); err != nil {
		return 0, fmt.Errorf("failed to count words: %v", err)
	}
	return count, nil
}

// GetNewWords returns up to count words the chat has not learned yet,
// most frequent first (ties broken by id). Fewer than count words means
// the corpus is nearly exhausted; an empty result means the chat has
// learned everything available.
func (r *WordRepository) GetNewWords(ctx context.Context, chatID int64, count int) ([]models.Word, error) {
	query := r.db.Rebind(`
		SELECT * FROM words
		WHERE id NOT IN (SELECT word_id FROM learned_words WHERE chat_id = ?)
		ORDER BY frequency_rank ASC, id ASC
		LIMIT ?
	`)

	var words []models.Word
	if err := r.db.SelectContext(ctx, &words, query, chatID, count); err != nil {
		return nil, fmt.Errorf("failed to get new words: %v", err)
	}
	return words, nil
}

// GetRandomLearnedWords returns a uniform random sample (no duplicates)
// of words the chat has already learned, capped at the learned-set size.
// An empty result means there is nothing to repeat yet.
func (r *WordRepository) GetRandomLearnedWords(ctx context.Context, chatID int64, count int) ([]models.Word, error) {
	var ids []int
	query := r.db.Rebind("SELECT word_id FROM learned_words WHERE chat_id = ?")
	if err := r.db.SelectContext(ctx, &ids, query, chatID); err != nil {
		return nil, fmt.Errorf("failed to get learned word ids: %v", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	if count > len(ids) {
		count = len(ids)
	}

	query, args, err := sqlx.In("SELECT * FROM words WHERE id IN (?)", ids[:count])
	if err != nil {
		return nil, fmt.Errorf("failed to build learned words query: %v", err)
	}
	query = r.db.Rebind(query)

	var words []models.Word
	if err := r.db.SelectContext(ctx, &words, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get learned words: %v", err)
	}
	return words, nil
}

// InsertBatch inserts imported words in a single transaction
func (r *WordRepository) InsertBatch(ctx context.Context, words []models.Word) error {
	if len(words) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	query := tx.Rebind(`
		INSERT INTO words (target_word, source_meaning, phonetic, frequency_rank, imported_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	for _, w := range words {
		if _, err := tx.ExecContext(ctx, query, w.TargetWord, w.SourceMeaning, w.Phonetic, w.FrequencyRank, w.ImportedAt); err != nil {
			return fmt.Errorf("failed to insert word %q: %v", w.TargetWord, err)
		}
	}

	return tx.Commit()
}
