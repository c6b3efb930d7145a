package reset

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/langportal/internal/database"
	"github.com/mrlokans/langportal/internal/database/testhelper"
	"github.com/mrlokans/langportal/internal/entities"
)

func seedHistory(t *testing.T, db *database.Database) {
	t.Helper()
	group := testhelper.CreateGroup(t, db, "Greetings")
	activity := testhelper.CreateActivity(t, db, "Quiz")
	hello := testhelper.CreateWord(t, db, "こんにちは", "konnichiwa", "hello")
	bye := testhelper.CreateWord(t, db, "さようなら", "sayounara", "goodbye")
	testhelper.AddToGroup(t, db, hello.ID, group.ID)
	testhelper.AddToGroup(t, db, bye.ID, group.ID)
	session := testhelper.CreateSession(t, db, group.ID, activity.ID, time.Now())
	testhelper.CreateReview(t, db, hello.ID, session.ID, true)
	testhelper.CreateReview(t, db, bye.ID, session.ID, false)
}

func TestRepository_ResetHistory(t *testing.T) {
	db := testhelper.NewTestDB(t)
	seedHistory(t, db)
	repo := NewRepository(db.DB)

	result, err := repo.ResetHistory(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.ResetResult{WordReviewItems: 2, StudySessions: 1}, *result)
	assert.Zero(t, testhelper.Count(t, db, "word_review_items"))
	assert.Zero(t, testhelper.Count(t, db, "study_sessions"))
	assert.Equal(t, int64(2), testhelper.Count(t, db, "words"))
	assert.Equal(t, int64(1), testhelper.Count(t, db, "groups"))
	assert.Equal(t, int64(1), testhelper.Count(t, db, "study_activities"))
	assert.Equal(t, int64(2), testhelper.Count(t, db, "words_groups"))
}

func TestRepository_FullReset(t *testing.T) {
	db := testhelper.NewTestDB(t)
	seedHistory(t, db)
	repo := NewRepository(db.DB)

	result, err := repo.FullReset(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(6), result.Total())
	assert.Zero(t, testhelper.Count(t, db, "word_review_items"))
	assert.Zero(t, testhelper.Count(t, db, "study_sessions"))
	assert.Zero(t, testhelper.Count(t, db, "study_activities"))
	assert.Zero(t, testhelper.Count(t, db, "words_groups"))
	assert.Equal(t, int64(2), testhelper.Count(t, db, "words"))
	assert.Equal(t, int64(1), testhelper.Count(t, db, "groups"))
}

func TestRepository_ResetEmptyStore(t *testing.T) {
	db := testhelper.NewTestDB(t)
	repo := NewRepository(db.DB)

	result, err := repo.FullReset(context.Background())

	require.NoError(t, err)
	assert.Zero(t, result.Total())
}

func TestRepository_ResetCancelledContextRollsBack(t *testing.T) {
	db := testhelper.NewTestDB(t)
	seedHistory(t, db)
	repo := NewRepository(db.DB)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ResetHistory(ctx)

	require.Error(t, err)
	assert.Equal(t, int64(2), testhelper.Count(t, db, "word_review_items"))
	assert.Equal(t, int64(1), testhelper.Count(t, db, "study_sessions"))
}
