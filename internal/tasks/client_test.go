package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/langportal/internal/importers"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(filepath.Join(t.TempDir(), "words.db"), Config{Workers: 1})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

// notifyingImporter reports each import on a channel.
type notifyingImporter struct {
	done chan ImportGroupWordsTask
}

func (n *notifyingImporter) Import(_ context.Context, groupID uint, items []importers.VocabItem) (*importers.Result, error) {
	n.done <- ImportGroupWordsTask{GroupID: groupID, Words: items}
	return &importers.Result{GroupID: groupID, WordsImported: len(items)}, nil
}

func TestNewClient_CreatesQueueDatabase(t *testing.T) {
	dir := t.TempDir()

	client, err := NewClient(filepath.Join(dir, "words.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	_, err = os.Stat(filepath.Join(dir, "words-tasks.db"))
	assert.NoError(t, err)
}

func TestClient_StopWithoutStart(t *testing.T) {
	client := newTestClient(t)

	assert.True(t, client.Stop(context.Background()))
}

func TestClient_StartIsIdempotent(t *testing.T) {
	client := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client.Start(ctx)
	client.Start(ctx)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	assert.True(t, client.Stop(stopCtx))
}

func TestClient_RunsImportTask(t *testing.T) {
	client := newTestClient(t)
	importer := &notifyingImporter{done: make(chan ImportGroupWordsTask, 1)}
	client.Register(NewImportGroupWordsQueue(importer))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client.Start(ctx)

	id, err := client.Enqueue(ctx, ImportGroupWordsTask{
		GroupID: 3,
		Words:   []importers.VocabItem{{Kanji: "水", Romaji: "mizu", English: "water"}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	select {
	case got := <-importer.done:
		assert.Equal(t, uint(3), got.GroupID)
		require.Len(t, got.Words, 1)
		assert.Equal(t, "水", got.Words[0].Kanji)
	case <-time.After(5 * time.Second):
		t.Fatal("import task was not executed")
	}

	assert.Eventually(t, func() bool {
		status, err := client.Status(ctx, id)
		return err == nil && status == backlite.TaskStatusSuccess
	}, 5*time.Second, 20*time.Millisecond)
}

func TestClient_StatusUnknownTask(t *testing.T) {
	client := newTestClient(t)

	status, err := client.Status(context.Background(), "missing")

	require.NoError(t, err)
	assert.Equal(t, backlite.TaskStatusNotFound, status)
}

func TestImportGroupWordsTaskConfig(t *testing.T) {
	cfg := ImportGroupWordsTask{GroupID: 1}.Config()

	assert.Equal(t, "import_group_words", cfg.Name)
	assert.Equal(t, 1, cfg.MaxAttempts)
	assert.Equal(t, 10*time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestCleanupAuditEventsTaskConfig(t *testing.T) {
	cfg := CleanupAuditEventsTask{RetentionDays: 7}.Config()

	assert.Equal(t, "cleanup_audit_events", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
}

func TestTasksDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "words-tasks.db"), TasksDBPath(filepath.Join("data", "words.db")))
	assert.Equal(t, "portal-tasks", TasksDBPath("portal"))
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{Workers: 4}.withDefaults()

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
	assert.Equal(t, DefaultConfig(), Config{}.withDefaults())
}
