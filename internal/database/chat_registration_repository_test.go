package database

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, InitSchema(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func TestRegisterCreatesWithDefaults(t *testing.T) {
	repo := NewChatRegistrationRepository(newTestDB(t))
	ctx := context.Background()

	reg, err := repo.Register(ctx, 100, "Study group")
	require.NoError(t, err)

	assert.Equal(t, int64(100), reg.ChatID)
	assert.Equal(t, "Study group", reg.ChatTitle)
	assert.True(t, reg.IsActive)
	assert.Equal(t, "20:00", reg.NewWordsTime)
	assert.Equal(t, "09:00", reg.RepetitionTime)
	assert.Equal(t, 0, reg.NewWordsCount)
	assert.Equal(t, 0, reg.RepetitionWordsCount)
	assert.False(t, reg.RegisteredAt.IsZero())
}

func TestRegisterActiveChatIsNoOp(t *testing.T) {
	repo := NewChatRegistrationRepository(newTestDB(t))
	ctx := context.Background()

	first, err := repo.Register(ctx, 100, "Original title")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateRepetitionTime(ctx, 100, "11:30"))

	second, err := repo.Register(ctx, 100, "Different title")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Original title", second.ChatTitle)
	assert.Equal(t, "11:30", second.RepetitionTime)
}

func TestRegisterReactivatesInactiveChat(t *testing.T) {
	repo := NewChatRegistrationRepository(newTestDB(t))
	ctx := context.Background()

	first, err := repo.Register(ctx, 100, "Old title")
	require.NoError(t, err)
	require.NoError(t, repo.UpdateNewWordsTime(ctx, 100, "21:15"))
	require.NoError(t, repo.Deactivate(ctx, 100))

	second, err := repo.Register(ctx, 100, "New title")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "reactivation must not create a second row")
	assert.True(t, second.IsActive)
	assert.Equal(t, "New title", second.ChatTitle)
	assert.Equal(t, "21:15", second.NewWordsTime, "schedule survives deactivation")

	var total int
	require.NoError(t, repo.db.Get(&total, "SELECT COUNT(*) FROM chat_registrations"))
	assert.Equal(t, 1, total)
}

func TestDeactivateUnknownChatIsNoOp(t *testing.T) {
	repo := NewChatRegistrationRepository(newTestDB(t))

	assert.NoError(t, repo.Deactivate(context.Background(), 999))
}

func TestIsActive(t *testing.T) {
	repo := NewChatRegistrationRepository(newTestDB(t))
	ctx := context.Background()

	active, err := repo.IsActive(ctx, 100)
	require.NoError(t, err)
	assert.False(t, active)

	_, err = repo.Register(ctx, 100, "")
	require.NoError(t, err)

	active, err = repo.IsActive(ctx, 100)
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, repo.Deactivate(ctx, 100))

	active, err = repo.IsActive(ctx, 100)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestGetReturnsNilForUnknownOrInactive(t *testing.T) {
	repo := NewChatRegistrationRepository(newTestDB(t))
	ctx := context.Background()

	reg, err := repo.Get(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, reg)

	_, err = repo.Register(ctx, 100, "")
	require.NoError(t, err)
	require.NoError(t, repo.Deactivate(ctx, 100))

	reg, err = repo.Get(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, reg)
}

func TestListActiveIDs(t *testing.T) {
	repo := NewChatRegistrationRepository(newTestDB(t))
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		_, err := repo.Register(ctx, id, "")
		require.NoError(t, err)
	}
	require.NoError(t, repo.Deactivate(ctx, 2))

	ids, err := repo.ListActiveIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 3}, ids)
}

func TestUpdatesRequireActiveRegistration(t *testing.T) {
	repo := NewChatRegistrationRepository(newTestDB(t))
	ctx := context.Background()

	err := repo.UpdateRepetitionTime(ctx, 100, "10:00")
	assert.ErrorIs(t, err, ErrNotRegistered)

	err = repo.UpdateNewWordsTime(ctx, 100, "10:00")
	assert.ErrorIs(t, err, ErrNotRegistered)

	err = repo.UpdateWordsCount(ctx, 100, 5, 15)
	assert.ErrorIs(t, err, ErrNotRegistered)

	_, err = repo.Register(ctx, 100, "")
	require.NoError(t, err)
	require.NoError(t, repo.Deactivate(ctx, 100))

	err = repo.UpdateRepetitionTime(ctx, 100, "10:00")
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestUpdateWordsCount(t *testing.T) {
	repo := NewChatRegistrationRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Register(ctx, 100, "")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateWordsCount(ctx, 100, 5, 15))

	reg, err := repo.Get(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, reg)
	assert.Equal(t, 5, reg.NewWordsCount)
	assert.Equal(t, 15, reg.RepetitionWordsCount)
}
