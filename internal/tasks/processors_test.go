package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/langportal/internal/importers"
)

type fakeImporter struct {
	groupID uint
	items   []importers.VocabItem
	err     error
}

func (f *fakeImporter) Import(_ context.Context, groupID uint, items []importers.VocabItem) (*importers.Result, error) {
	f.groupID = groupID
	f.items = items
	if f.err != nil {
		return nil, f.err
	}
	return &importers.Result{GroupID: groupID, WordsImported: len(items)}, nil
}

type fakeCleaner struct {
	retention time.Duration
	err       error
}

func (f *fakeCleaner) DeleteOldEvents(_ context.Context, retention time.Duration) (int64, error) {
	f.retention = retention
	return 3, f.err
}

func TestImportGroupWordsProcessor(t *testing.T) {
	importer := &fakeImporter{}
	process := ImportGroupWordsProcessor(importer)

	err := process(context.Background(), ImportGroupWordsTask{
		GroupID: 4,
		Words:   []importers.VocabItem{{Kanji: "犬", Romaji: "inu", English: "dog"}},
	})

	require.NoError(t, err)
	assert.Equal(t, uint(4), importer.groupID)
	assert.Len(t, importer.items, 1)
}

func TestImportGroupWordsProcessor_Error(t *testing.T) {
	process := ImportGroupWordsProcessor(&fakeImporter{err: errors.New("boom")})

	err := process(context.Background(), ImportGroupWordsTask{GroupID: 4})

	assert.ErrorContains(t, err, "group 4")
	assert.Error(t, ImportGroupWordsProcessor(nil)(context.Background(), ImportGroupWordsTask{}))
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	cleaner := &fakeCleaner{}

	require.NoError(t, CleanupAuditEventsProcessor(cleaner)(context.Background(), CleanupAuditEventsTask{RetentionDays: 7}))
	assert.Equal(t, 7*24*time.Hour, cleaner.retention)

	require.NoError(t, CleanupAuditEventsProcessor(cleaner)(context.Background(), CleanupAuditEventsTask{}))
	assert.Equal(t, DefaultAuditRetentionDays*24*time.Hour, cleaner.retention)

	cleaner.err = errors.New("locked")
	assert.Error(t, CleanupAuditEventsProcessor(cleaner)(context.Background(), CleanupAuditEventsTask{}))
}
