package importers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/mrlokans/langportal/internal/database/words"
	"github.com/mrlokans/langportal/internal/entities"
)

// VocabItem is one entry of a vocabulary list.
type VocabItem struct {
	Kanji   string          `json:"kanji"`
	Romaji  string          `json:"romaji"`
	English string          `json:"english"`
	Parts   json.RawMessage `json:"parts,omitempty"`
}

// ParseVocabulary decodes a JSON array of vocabulary entries.
func ParseVocabulary(r io.Reader) ([]VocabItem, error) {
	var items []VocabItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, entities.NewValidationError("words", "must be a JSON array of vocabulary entries: "+err.Error())
	}
	for i, item := range items {
		fields := [][2]string{{"kanji", item.Kanji}, {"romaji", item.Romaji}, {"english", item.English}}
		for _, f := range fields {
			if strings.TrimSpace(f[1]) == "" {
				return nil, entities.NewValidationError(fmt.Sprintf("words[%d].%s", i, f[0]), "is required")
			}
		}
	}
	return items, nil
}

// GroupResolver finds or creates groups by name.
type GroupResolver interface {
	GetOrCreate(ctx context.Context, name string) (*entities.Group, error)
}

// WordBatchCreator stores words as members of a group atomically.
type WordBatchCreator interface {
	CreateBatch(ctx context.Context, groupID uint, inputs []words.CreateInput) ([]entities.Word, error)
}

// PartsFiller derives a parts document from a word's kanji form.
type PartsFiller interface {
	Parts(text string) (json.RawMessage, error)
}

// ImportRecorder receives the outcome of every import.
type ImportRecorder interface {
	LogImport(groupID uint, description string, wordsCount int, err error)
}

// Result summarises a finished import.
type Result struct {
	GroupID       uint `json:"group_id"`
	WordsImported int  `json:"words_imported"`
}

// VocabularyImporter writes vocabulary lists into groups.
type VocabularyImporter struct {
	groups   GroupResolver
	words    WordBatchCreator
	filler   PartsFiller
	recorder ImportRecorder
}

type Option func(*VocabularyImporter)

// WithPartsFiller fills missing parts from morphological analysis.
func WithPartsFiller(f PartsFiller) Option {
	return func(i *VocabularyImporter) {
		i.filler = f
	}
}

// WithRecorder reports each import, e.g. to the audit log.
func WithRecorder(r ImportRecorder) Option {
	return func(i *VocabularyImporter) {
		i.recorder = r
	}
}

func NewVocabularyImporter(groups GroupResolver, words WordBatchCreator, opts ...Option) *VocabularyImporter {
	i := &VocabularyImporter{groups: groups, words: words}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ImportByName imports into the named group, creating it when needed.
func (i *VocabularyImporter) ImportByName(ctx context.Context, groupName string, items []VocabItem) (*Result, error) {
	group, err := i.groups.GetOrCreate(ctx, groupName)
	if err != nil {
		i.record(0, "Import into "+groupName+" failed", 0, err)
		return nil, err
	}
	return i.Import(ctx, group.ID, items)
}

// Import adds all items to an existing group in one transaction.
func (i *VocabularyImporter) Import(ctx context.Context, groupID uint, items []VocabItem) (*Result, error) {
	inputs := make([]words.CreateInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, words.CreateInput{
			Kanji:   item.Kanji,
			Romaji:  item.Romaji,
			English: item.English,
			Parts:   i.partsFor(item),
		})
	}

	created, err := i.words.CreateBatch(ctx, groupID, inputs)
	if err != nil {
		i.record(groupID, fmt.Sprintf("Import of %d words into group %d failed", len(items), groupID), 0, err)
		return nil, err
	}

	i.record(groupID, fmt.Sprintf("Imported %d words into group %d", len(created), groupID), len(created), nil)
	return &Result{GroupID: groupID, WordsImported: len(created)}, nil
}

func (i *VocabularyImporter) partsFor(item VocabItem) json.RawMessage {
	trimmed := bytes.TrimSpace(item.Parts)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		return item.Parts
	}
	if i.filler == nil {
		return nil
	}
	parts, err := i.filler.Parts(item.Kanji)
	if err != nil {
		log.Printf("[IMPORT] Could not derive parts for %q: %v", item.Kanji, err)
		return nil
	}
	return parts
}

func (i *VocabularyImporter) record(groupID uint, description string, count int, err error) {
	if i.recorder != nil {
		i.recorder.LogImport(groupID, description, count, err)
	}
}
