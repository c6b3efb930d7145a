package groups

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/langportal/internal/database"
	"github.com/mrlokans/langportal/internal/database/testhelper"
	"github.com/mrlokans/langportal/internal/entities"
	"github.com/mrlokans/langportal/internal/pagination"
)

func setupTestRepo(t *testing.T) (*database.Database, *Repository) {
	db := testhelper.NewTestDB(t)
	return db, NewRepository(db.DB)
}

func TestRepository_Create(t *testing.T) {
	_, repo := setupTestRepo(t)
	ctx := context.Background()

	group, err := repo.Create(ctx, "  Basic Greetings ")

	require.NoError(t, err)
	assert.NotZero(t, group.ID)
	assert.Equal(t, "Basic Greetings", group.Name)
}

func TestRepository_Create_DuplicateName(t *testing.T) {
	_, repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "Verbs")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "Verbs")
	assert.ErrorIs(t, err, entities.ErrConflict)
}

func TestRepository_Create_BlankName(t *testing.T) {
	_, repo := setupTestRepo(t)

	_, err := repo.Create(context.Background(), "   ")

	assert.ErrorIs(t, err, entities.ErrValidation)
}

func TestRepository_GetOrCreate(t *testing.T) {
	db, repo := setupTestRepo(t)
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, "Adjectives")
	require.NoError(t, err)
	second, err := repo.GetOrCreate(ctx, "Adjectives")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1), testhelper.Count(t, db, "groups"))
}

func TestRepository_List(t *testing.T) {
	db, repo := setupTestRepo(t)
	ctx := context.Background()

	big := testhelper.CreateGroup(t, db, "Animals")
	testhelper.CreateGroup(t, db, "Empty")
	for _, w := range []string{"inu", "neko"} {
		word := testhelper.CreateWord(t, db, w, w, w)
		testhelper.AddToGroup(t, db, word.ID, big.ID)
	}

	items, total, err := repo.List(ctx, pagination.NewRequest(1, 10), DefaultSort)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, "Animals", items[0].Name)
	assert.Equal(t, int64(2), items[0].WordCount)
	assert.Equal(t, int64(0), items[1].WordCount)

	sort, err := ParseSort("word_count", "asc")
	require.NoError(t, err)
	items, _, err = repo.List(ctx, pagination.NewRequest(1, 10), sort)
	require.NoError(t, err)
	assert.Equal(t, "Empty", items[0].Name)
}

func TestRepository_GetByID(t *testing.T) {
	db, repo := setupTestRepo(t)
	ctx := context.Background()

	group := testhelper.CreateGroup(t, db, "Food")
	word := testhelper.CreateWord(t, db, "寿司", "sushi", "sushi")
	testhelper.AddToGroup(t, db, word.ID, group.ID)

	detail, err := repo.GetByID(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", detail.Name)
	assert.Equal(t, int64(1), detail.Stats.TotalWordCount)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_Update(t *testing.T) {
	db, repo := setupTestRepo(t)
	ctx := context.Background()

	group := testhelper.CreateGroup(t, db, "Old")
	testhelper.CreateGroup(t, db, "Taken")

	renamed := "New"
	updated, err := repo.Update(ctx, group.ID, &renamed)
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)

	taken := "Taken"
	_, err = repo.Update(ctx, group.ID, &taken)
	assert.ErrorIs(t, err, entities.ErrConflict)

	_, err = repo.Update(ctx, 9999, &renamed)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_CheckDeletable(t *testing.T) {
	db, repo := setupTestRepo(t)
	ctx := context.Background()

	group := testhelper.CreateGroup(t, db, "Greetings")
	word := testhelper.CreateWord(t, db, "こんにちは", "konnichiwa", "hello")
	testhelper.AddToGroup(t, db, word.ID, group.ID)

	err := repo.CheckDeletable(ctx, group.ID)
	require.ErrorIs(t, err, entities.ErrConflict)
	assert.Contains(t, err.Error(), "cannot delete group that has words")

	assert.ErrorIs(t, repo.Delete(ctx, group.ID), entities.ErrConflict)
	assert.Equal(t, int64(1), testhelper.Count(t, db, "groups"))

	assert.ErrorIs(t, repo.CheckDeletable(ctx, 9999), entities.ErrNotFound)
}

func TestRepository_Delete_EmptyGroupWithSessions(t *testing.T) {
	db, repo := setupTestRepo(t)
	ctx := context.Background()

	group := testhelper.CreateGroup(t, db, "Retired")
	activity := testhelper.CreateActivity(t, db, "Quiz")
	word := testhelper.CreateWord(t, db, "犬", "inu", "dog")
	session := testhelper.CreateSession(t, db, group.ID, activity.ID, time.Now())
	testhelper.CreateReview(t, db, word.ID, session.ID, true)

	require.NoError(t, repo.Delete(ctx, group.ID))

	assert.Zero(t, testhelper.Count(t, db, "groups"))
	assert.Zero(t, testhelper.Count(t, db, "study_sessions"))
	assert.Zero(t, testhelper.Count(t, db, "word_review_items"))
	assert.Equal(t, int64(1), testhelper.Count(t, db, "words"))
}

func TestRepository_AddAndRemoveWord(t *testing.T) {
	db, repo := setupTestRepo(t)
	ctx := context.Background()

	group := testhelper.CreateGroup(t, db, "Animals")
	word := testhelper.CreateWord(t, db, "猫", "neko", "cat")

	require.NoError(t, repo.AddWord(ctx, group.ID, word.ID))
	require.NoError(t, repo.AddWord(ctx, group.ID, word.ID))
	assert.Equal(t, int64(1), testhelper.Count(t, db, "words_groups"))

	assert.ErrorIs(t, repo.AddWord(ctx, group.ID, 9999), entities.ErrNotFound)
	assert.ErrorIs(t, repo.AddWord(ctx, 9999, word.ID), entities.ErrNotFound)

	require.NoError(t, repo.RemoveWord(ctx, group.ID, word.ID))
	assert.Zero(t, testhelper.Count(t, db, "words_groups"))
	assert.ErrorIs(t, repo.RemoveWord(ctx, group.ID, word.ID), entities.ErrNotFound)
}
