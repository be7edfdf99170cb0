package database

import (
	"context"
	"testing"

	"github.com/ViacheslavMelnichenko/constant-learning/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func markBatch(t *testing.T, db *sqlx.DB, chatID int64, count int) []int {
	t.Helper()
	ctx := context.Background()

	words, err := NewWordRepository(db).GetNewWords(ctx, chatID, count)
	require.NoError(t, err)
	require.Len(t, words, count)

	ids := make([]int, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}
	require.NoError(t, NewLearnedWordRepository(db).MarkLearned(ctx, chatID, ids))
	return ids
}

func TestMarkLearnedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewLearnedWordRepository(db)
	ctx := context.Background()

	seedWords(t, db,
		models.Word{TargetWord: "one", SourceMeaning: "один", FrequencyRank: 1},
		models.Word{TargetWord: "two", SourceMeaning: "два", FrequencyRank: 2},
	)
	ids := markBatch(t, db, 100, 2)

	require.NoError(t, repo.RecordRepetition(ctx, 100, ids[:1]))

	before, err := repo.Get(ctx, 100, ids[0])
	require.NoError(t, err)
	require.NotNil(t, before)

	// Marking again, with one id overlapping, must not reset anything
	require.NoError(t, repo.MarkLearned(ctx, 100, ids))

	after, err := repo.Get(ctx, 100, ids[0])
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, before.LearnedAt, after.LearnedAt)
	assert.Equal(t, before.RepetitionCount, after.RepetitionCount)

	count, err := repo.CountForChat(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMarkLearnedEmptyBatch(t *testing.T) {
	repo := NewLearnedWordRepository(newTestDB(t))

	assert.NoError(t, repo.MarkLearned(context.Background(), 100, nil))
}

func TestRecordRepetitionIncrementsCounter(t *testing.T) {
	db := newTestDB(t)
	repo := NewLearnedWordRepository(db)
	ctx := context.Background()

	seedWords(t, db, models.Word{TargetWord: "one", SourceMeaning: "один", FrequencyRank: 1})
	ids := markBatch(t, db, 100, 1)

	mark, err := repo.Get(ctx, 100, ids[0])
	require.NoError(t, err)
	require.Equal(t, 0, mark.RepetitionCount)

	require.NoError(t, repo.RecordRepetition(ctx, 100, ids))
	require.NoError(t, repo.RecordRepetition(ctx, 100, ids))

	mark, err = repo.Get(ctx, 100, ids[0])
	require.NoError(t, err)
	assert.Equal(t, 2, mark.RepetitionCount)
	assert.True(t, mark.LastRepeatedAt.After(mark.LearnedAt) || mark.LastRepeatedAt.Equal(mark.LearnedAt))
}

func TestRecordRepetitionSkipsUnmarkedWords(t *testing.T) {
	db := newTestDB(t)
	repo := NewLearnedWordRepository(db)
	ctx := context.Background()

	seedWords(t, db,
		models.Word{TargetWord: "one", SourceMeaning: "один", FrequencyRank: 1},
		models.Word{TargetWord: "two", SourceMeaning: "два", FrequencyRank: 2},
	)
	ids := markBatch(t, db, 100, 1)

	unmarked := ids[0] + 1
	require.NoError(t, repo.RecordRepetition(ctx, 100, []int{ids[0], unmarked}))

	mark, err := repo.Get(ctx, 100, unmarked)
	require.NoError(t, err)
	assert.Nil(t, mark, "repetition must not create a mark")
}

func TestResetProgressIsScopedToChat(t *testing.T) {
	db := newTestDB(t)
	repo := NewLearnedWordRepository(db)
	ctx := context.Background()

	seedWords(t, db,
		models.Word{TargetWord: "one", SourceMeaning: "один", FrequencyRank: 1},
		models.Word{TargetWord: "two", SourceMeaning: "два", FrequencyRank: 2},
	)
	markBatch(t, db, 100, 2)
	markBatch(t, db, 200, 1)

	removed, err := repo.ResetProgress(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	count, err := repo.CountForChat(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = repo.CountForChat(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "other chats keep their progress")
}

func TestResetProgressEmptyChat(t *testing.T) {
	repo := NewLearnedWordRepository(newTestDB(t))

	removed, err := repo.ResetProgress(context.Background(), 999)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}
