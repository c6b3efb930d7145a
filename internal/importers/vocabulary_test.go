package importers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/langportal/internal/database/groups"
	"github.com/mrlokans/langportal/internal/database/testhelper"
	"github.com/mrlokans/langportal/internal/database/words"
	"github.com/mrlokans/langportal/internal/entities"
)

type stubFiller struct {
	calls []string
	err   error
}

func (f *stubFiller) Parts(text string) (json.RawMessage, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`[{"kanji":"` + text + `","reading":[]}]`), nil
}

type recordedImport struct {
	groupID uint
	count   int
	err     error
}

type stubRecorder struct {
	events []recordedImport
}

func (r *stubRecorder) LogImport(groupID uint, _ string, count int, err error) {
	r.events = append(r.events, recordedImport{groupID, count, err})
}

const greetingsJSON = `[
  {"kanji": "こんにちは", "romaji": "konnichiwa", "english": "hello",
   "parts": [{"kanji": "今", "romaji": ["kon"]}]},
  {"kanji": "さようなら", "romaji": "sayounara", "english": "goodbye"}
]`

func TestParseVocabulary(t *testing.T) {
	items, err := ParseVocabulary(strings.NewReader(greetingsJSON))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "hello", items[0].English)
	assert.NotEmpty(t, items[0].Parts)
	assert.Empty(t, items[1].Parts)
}

func TestParseVocabulary_Invalid(t *testing.T) {
	_, err := ParseVocabulary(strings.NewReader(`{"kanji": "x"}`))
	assert.ErrorIs(t, err, entities.ErrValidation)

	_, err = ParseVocabulary(strings.NewReader(`[{"kanji": "犬", "romaji": "inu"}]`))
	require.ErrorIs(t, err, entities.ErrValidation)
	var verr *entities.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "words[0].english", verr.Field)
}

func TestVocabularyImporter_ImportByName(t *testing.T) {
	db := testhelper.NewTestDB(t)
	ctx := context.Background()

	filler := &stubFiller{}
	recorder := &stubRecorder{}
	importer := NewVocabularyImporter(
		groups.NewRepository(db.DB),
		words.NewRepository(db.DB),
		WithPartsFiller(filler),
		WithRecorder(recorder),
	)

	items, err := ParseVocabulary(strings.NewReader(greetingsJSON))
	require.NoError(t, err)

	result, err := importer.ImportByName(ctx, "Basic Greetings", items)
	require.NoError(t, err)
	assert.Equal(t, 2, result.WordsImported)
	assert.Equal(t, []string{"さようなら"}, filler.calls)

	_, err = importer.ImportByName(ctx, "Basic Greetings", items)
	require.NoError(t, err)

	assert.Equal(t, int64(1), testhelper.Count(t, db, "groups"))
	assert.Equal(t, int64(4), testhelper.Count(t, db, "words_groups"))
	require.Len(t, recorder.events, 2)
	assert.Equal(t, result.GroupID, recorder.events[0].groupID)
	assert.Equal(t, 2, recorder.events[0].count)
}

func TestVocabularyImporter_FillerErrorLeavesPartsEmpty(t *testing.T) {
	db := testhelper.NewTestDB(t)
	group := testhelper.CreateGroup(t, db, "Animals")

	importer := NewVocabularyImporter(
		groups.NewRepository(db.DB),
		words.NewRepository(db.DB),
		WithPartsFiller(&stubFiller{err: errors.New("dictionary unavailable")}),
	)

	result, err := importer.Import(context.Background(), group.ID, []VocabItem{{Kanji: "犬", Romaji: "inu", English: "dog"}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.WordsImported)

	var stored entities.Word
	require.NoError(t, db.DB.First(&stored).Error)
	assert.Empty(t, stored.Parts)
}

func TestVocabularyImporter_UnknownGroup(t *testing.T) {
	db := testhelper.NewTestDB(t)
	recorder := &stubRecorder{}
	importer := NewVocabularyImporter(groups.NewRepository(db.DB), words.NewRepository(db.DB), WithRecorder(recorder))

	_, err := importer.Import(context.Background(), 9999, []VocabItem{{Kanji: "犬", Romaji: "inu", English: "dog"}})

	assert.ErrorIs(t, err, entities.ErrNotFound)
	require.Len(t, recorder.events, 1)
	assert.Error(t, recorder.events[0].err)
}
