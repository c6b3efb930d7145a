// Package words provides database operations for vocabulary words.
//
// This package implements the WordStore interface defined in internal/http/words.go.
//
// # Interface Implementation
//
//	var _ http.WordStore = (*Repository)(nil)
//
// # Usage
//
//	repo := words.NewRepository(db)
//	items, total, err := repo.List(ctx, pagination.NewRequest(1, 50), words.DefaultSort)
package words

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/langportal/internal/database"
	"github.com/mrlokans/langportal/internal/entities"
	"github.com/mrlokans/langportal/internal/pagination"
)

// Sort selects the ordering of word listings.
type Sort struct {
	Field string
	Desc  bool
}

// DefaultSort orders words alphabetically by their kanji form.
var DefaultSort = Sort{Field: "kanji"}

var sortColumns = map[string]string{
	"kanji":         "w.kanji",
	"romaji":        "w.romaji",
	"english":       "w.english",
	"correct_count": "correct_count",
	"wrong_count":   "wrong_count",
}

// ParseSort validates user supplied sort parameters. Empty values fall back
// to DefaultSort.
func ParseSort(field, order string) (Sort, error) {
	s := DefaultSort
	if field != "" {
		if _, ok := sortColumns[field]; !ok {
			return Sort{}, entities.NewValidationError("sort_by", "must be one of kanji, romaji, english, correct_count, wrong_count")
		}
		s.Field = field
	}
	switch strings.ToLower(order) {
	case "", "asc":
	case "desc":
		s.Desc = true
	default:
		return Sort{}, entities.NewValidationError("order", "must be asc or desc")
	}
	return s, nil
}

func (s Sort) orderBy() []string {
	col, ok := sortColumns[s.Field]
	if !ok {
		col = sortColumns[DefaultSort.Field]
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return []string{col + " " + dir, "w.id ASC"}
}

// CreateInput holds the fields for a new word. Parts is optional JSON.
type CreateInput struct {
	Kanji    string
	Romaji   string
	English  string
	Parts    json.RawMessage
	GroupIDs []uint
}

// UpdateInput holds a partial update. Nil fields keep their stored value;
// a Parts value of JSON null clears the metadata.
type UpdateInput struct {
	Kanji   *string
	Romaji  *string
	English *string
	Parts   json.RawMessage
}

// Repository handles all word database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new words repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// summarySelect counts each word's correct and wrong answers. Words without
// reviews get zero counts through the LEFT JOIN.
func summarySelect() sq.SelectBuilder {
	return sq.Select(
		"w.id", "w.kanji", "w.romaji", "w.english", "w.parts",
		"COUNT(CASE WHEN wri.correct = 1 THEN 1 END) AS correct_count",
		"COUNT(CASE WHEN wri.correct = 0 THEN 1 END) AS wrong_count",
	).
		From("words w").
		LeftJoin("word_review_items wri ON wri.word_id = w.id").
		GroupBy("w.id")
}

func (r *Repository) scanSummaries(ctx context.Context, b sq.SelectBuilder) ([]entities.WordSummary, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build word query: %w", err)
	}
	var items []entities.WordSummary
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, database.MapError(err, "words", 0)
	}
	return items, nil
}

// List returns one page of words with their review counts and the total
// number of words.
func (r *Repository) List(ctx context.Context, req pagination.Request, sort Sort) ([]entities.WordSummary, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.Word{}).Count(&total).Error; err != nil {
		return nil, 0, database.MapError(err, "words", 0)
	}

	items, err := r.scanSummaries(ctx, summarySelect().
		OrderBy(sort.orderBy()...).
		Limit(uint64(req.Limit())).
		Offset(uint64(req.Offset())))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListByGroup returns one page of the group's words with review counts.
func (r *Repository) ListByGroup(ctx context.Context, groupID uint, req pagination.Request, sort Sort) ([]entities.WordSummary, int64, error) {
	if err := database.RequireExists(ctx, r.db, &entities.Group{}, "group", groupID); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.WordGroup{}).Where("group_id = ?", groupID).Count(&total).Error; err != nil {
		return nil, 0, database.MapError(err, "group", groupID)
	}

	items, err := r.scanSummaries(ctx, summarySelect().
		Join("words_groups wg ON wg.word_id = w.id").
		Where(sq.Eq{"wg.group_id": groupID}).
		OrderBy(sort.orderBy()...).
		Limit(uint64(req.Limit())).
		Offset(uint64(req.Offset())))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetByID returns a word with its counts and groups.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.WordDetail, error) {
	items, err := r.scanSummaries(ctx, summarySelect().Where(sq.Eq{"w.id": id}))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("word %d: %w", id, entities.ErrNotFound)
	}

	var groups []entities.Group
	err = r.db.WithContext(ctx).
		Joins("JOIN words_groups wg ON wg.group_id = groups.id").
		Where("wg.word_id = ?", id).
		Order("groups.name ASC").
		Find(&groups).Error
	if err != nil {
		return nil, database.MapError(err, "word", id)
	}
	if groups == nil {
		groups = []entities.Group{}
	}

	return &entities.WordDetail{WordSummary: items[0], Groups: groups}, nil
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return entities.NewValidationError(field, "is required")
	}
	return nil
}

// normalizeParts validates optional JSON metadata. Absent or null input
// yields nil so the column stays NULL.
func normalizeParts(raw json.RawMessage) (datatypes.JSON, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	if !json.Valid([]byte(trimmed)) {
		return nil, entities.NewValidationError("parts", "must be valid JSON")
	}
	return datatypes.JSON(trimmed), nil
}

// ValidateCreate checks the mandatory fields of a new word.
func ValidateCreate(in CreateInput) error {
	if err := requireText("kanji", in.Kanji); err != nil {
		return err
	}
	if err := requireText("romaji", in.Romaji); err != nil {
		return err
	}
	return requireText("english", in.English)
}

// Create inserts a word and, when GroupIDs is set, its group memberships in
// a single transaction.
func (r *Repository) Create(ctx context.Context, in CreateInput) (*entities.Word, error) {
	if err := ValidateCreate(in); err != nil {
		return nil, err
	}
	parts, err := normalizeParts(in.Parts)
	if err != nil {
		return nil, err
	}

	word := &entities.Word{
		Kanji:   strings.TrimSpace(in.Kanji),
		Romaji:  strings.TrimSpace(in.Romaji),
		English: strings.TrimSpace(in.English),
		Parts:   parts,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, groupID := range in.GroupIDs {
			if err := database.RequireExists(ctx, tx, &entities.Group{}, "group", groupID); err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Create(word).Error; err != nil {
			return database.MapError(err, "word", 0)
		}
		for _, groupID := range in.GroupIDs {
			link := entities.WordGroup{WordID: word.ID, GroupID: groupID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return database.MapError(err, "word group", groupID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return word, nil
}

// Update applies a partial update and returns the stored word.
func (r *Repository) Update(ctx context.Context, id uint, in UpdateInput) (*entities.Word, error) {
	updates := map[string]any{}
	fields := []struct {
		name  string
		value *string
	}{{"kanji", in.Kanji}, {"romaji", in.Romaji}, {"english", in.English}}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := requireText(f.name, *f.value); err != nil {
			return nil, err
		}
		updates[f.name] = strings.TrimSpace(*f.value)
	}
	if in.Parts != nil {
		parts, err := normalizeParts(in.Parts)
		if err != nil {
			return nil, err
		}
		if parts == nil {
			updates["parts"] = gorm.Expr("NULL")
		} else {
			updates["parts"] = parts
		}
	}

	var word entities.Word
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&word, id).Error; err != nil {
			return database.MapError(err, "word", id)
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&entities.Word{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return database.MapError(err, "word", id)
		}
		// Reload into a zero value: NULL columns do not overwrite old fields.
		word = entities.Word{}
		return tx.First(&word, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &word, nil
}

// Delete removes a word together with its group memberships and reviews.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := database.RequireExists(ctx, tx, &entities.Word{}, "word", id); err != nil {
			return err
		}
		if err := tx.Where("word_id = ?", id).Delete(&entities.WordReviewItem{}).Error; err != nil {
			return database.MapError(err, "word", id)
		}
		if err := tx.Where("word_id = ?", id).Delete(&entities.WordGroup{}).Error; err != nil {
			return database.MapError(err, "word", id)
		}
		if err := tx.Delete(&entities.Word{}, id).Error; err != nil {
			return database.MapError(err, "word", id)
		}
		return nil
	})
}

// Count returns the total number of words.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Word{}).Count(&n).Error
	return n, database.MapError(err, "words", 0)
}

// CreateBatch inserts words and links each to the group in one transaction.
// Any invalid entry rolls back the whole batch.
func (r *Repository) CreateBatch(ctx context.Context, groupID uint, inputs []CreateInput) ([]entities.Word, error) {
	created := make([]entities.Word, 0, len(inputs))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := database.RequireExists(ctx, tx, &entities.Group{}, "group", groupID); err != nil {
			return err
		}
		for i, in := range inputs {
			if err := ValidateCreate(in); err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
			parts, err := normalizeParts(in.Parts)
			if err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
			word := entities.Word{
				Kanji:   strings.TrimSpace(in.Kanji),
				Romaji:  strings.TrimSpace(in.Romaji),
				English: strings.TrimSpace(in.English),
				Parts:   parts,
			}
			if err := tx.Omit(clause.Associations).Create(&word).Error; err != nil {
				return database.MapError(err, "word", 0)
			}
			link := entities.WordGroup{WordID: word.ID, GroupID: groupID}
			if err := tx.Create(&link).Error; err != nil {
				return database.MapError(err, "word group", groupID)
			}
			created = append(created, word)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
