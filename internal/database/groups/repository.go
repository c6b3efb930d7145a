// Package groups provides database operations for word groups and their
// memberships.
//
// This package implements the GroupStore interface defined in internal/http/groups.go.
//
// # Interface Implementation
//
//	var _ http.GroupStore = (*Repository)(nil)
//
// # Usage
//
//	repo := groups.NewRepository(db)
//	group, err := repo.Create(ctx, "Basic Greetings")
//	err = repo.AddWord(ctx, group.ID, wordID)
package groups

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/langportal/internal/database"
	"github.com/mrlokans/langportal/internal/entities"
	"github.com/mrlokans/langportal/internal/pagination"
)

// Sort selects the ordering of group listings.
type Sort struct {
	Field string
	Desc  bool
}

var DefaultSort = Sort{Field: "name"}

var sortColumns = map[string]string{
	"name":       "g.name",
	"word_count": "word_count",
}

// ParseSort validates user supplied sort parameters.
func ParseSort(field, order string) (Sort, error) {
	s := DefaultSort
	if field != "" {
		if _, ok := sortColumns[field]; !ok {
			return Sort{}, entities.NewValidationError("sort_by", "must be one of name, word_count")
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
	return []string{col + " " + dir, "g.id ASC"}
}

// Repository handles all group database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new groups repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of groups with their word counts.
func (r *Repository) List(ctx context.Context, req pagination.Request, sort Sort) ([]entities.GroupSummary, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.Group{}).Count(&total).Error; err != nil {
		return nil, 0, database.MapError(err, "groups", 0)
	}

	query, args, err := sq.Select("g.id", "g.name", "COUNT(wg.word_id) AS word_count").
		From(`"groups" g`).
		LeftJoin("words_groups wg ON wg.group_id = g.id").
		GroupBy("g.id").
		OrderBy(sort.orderBy()...).
		Limit(uint64(req.Limit())).
		Offset(uint64(req.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build group query: %w", err)
	}

	var items []entities.GroupSummary
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, 0, database.MapError(err, "groups", 0)
	}
	return items, total, nil
}

// GetByID returns a group with its total word count.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.GroupDetail, error) {
	var group entities.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, database.MapError(err, "group", id)
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.WordGroup{}).Where("group_id = ?", id).Count(&count).Error; err != nil {
		return nil, database.MapError(err, "group", id)
	}

	return &entities.GroupDetail{
		ID:    group.ID,
		Name:  group.Name,
		Stats: entities.GroupStats{TotalWordCount: count},
	}, nil
}

// FindByName returns the group with the exact name.
func (r *Repository) FindByName(ctx context.Context, name string) (*entities.Group, error) {
	var group entities.Group
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&group).Error; err != nil {
		return nil, database.MapError(err, "group", 0)
	}
	return &group, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", entities.NewValidationError("name", "is required")
	}
	return name, nil
}

func (r *Repository) requireNameFree(ctx context.Context, tx *gorm.DB, name string, exceptID uint) error {
	var n int64
	q := tx.WithContext(ctx).Model(&entities.Group{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return database.MapError(err, "group", exceptID)
	}
	if n > 0 {
		return fmt.Errorf("group %q: %w", name, entities.NewConflictError("group name already exists"))
	}
	return nil
}

// Create inserts a group. Duplicate names are a conflict.
func (r *Repository) Create(ctx context.Context, name string) (*entities.Group, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	group := &entities.Group{Name: name}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.requireNameFree(ctx, tx, name, 0); err != nil {
			return err
		}
		return database.MapError(tx.Omit(clause.Associations).Create(group).Error, "group", 0)
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// GetOrCreate returns the group with the given name, creating it if absent.
func (r *Repository) GetOrCreate(ctx context.Context, name string) (*entities.Group, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	group := entities.Group{Name: name}
	err = r.db.WithContext(ctx).
		Where(entities.Group{Name: name}).
		Omit(clause.Associations).
		FirstOrCreate(&group).Error
	if err != nil {
		return nil, database.MapError(err, "group", 0)
	}
	return &group, nil
}

// Update renames a group. A nil name leaves the group unchanged.
func (r *Repository) Update(ctx context.Context, id uint, name *string) (*entities.Group, error) {
	var group entities.Group
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&group, id).Error; err != nil {
			return database.MapError(err, "group", id)
		}
		if name == nil {
			return nil
		}
		newName, err := normalizeName(*name)
		if err != nil {
			return err
		}
		if err := r.requireNameFree(ctx, tx, newName, id); err != nil {
			return err
		}
		if err := tx.Model(&group).Update("name", newName).Error; err != nil {
			return database.MapError(err, "group", id)
		}
		group.Name = newName
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// CheckDeletable reports whether the group can be removed. A group with
// member words is a conflict.
func (r *Repository) CheckDeletable(ctx context.Context, id uint) error {
	return r.checkDeletable(ctx, r.db, id)
}

func (r *Repository) checkDeletable(ctx context.Context, tx *gorm.DB, id uint) error {
	if err := database.RequireExists(ctx, tx, &entities.Group{}, "group", id); err != nil {
		return err
	}
	var n int64
	if err := tx.WithContext(ctx).Model(&entities.WordGroup{}).Where("group_id = ?", id).Count(&n).Error; err != nil {
		return database.MapError(err, "group", id)
	}
	if n > 0 {
		return fmt.Errorf("group %d: %w", id, entities.NewConflictError("cannot delete group that has words"))
	}
	return nil
}

// Delete removes an empty group. Study sessions recorded against it are
// removed together with their reviews.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.checkDeletable(ctx, tx, id); err != nil {
			return err
		}

		sessionIDs := tx.Model(&entities.StudySession{}).Select("id").Where("group_id = ?", id)
		if err := tx.Where("study_session_id IN (?)", sessionIDs).Delete(&entities.WordReviewItem{}).Error; err != nil {
			return database.MapError(err, "group", id)
		}
		if err := tx.Where("group_id = ?", id).Delete(&entities.StudySession{}).Error; err != nil {
			return database.MapError(err, "group", id)
		}
		if err := tx.Delete(&entities.Group{}, id).Error; err != nil {
			return database.MapError(err, "group", id)
		}
		return nil
	})
}

// AddWord links a word to a group. Linking an existing member is a no-op.
func (r *Repository) AddWord(ctx context.Context, groupID, wordID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := database.RequireExists(ctx, tx, &entities.Group{}, "group", groupID); err != nil {
			return err
		}
		if err := database.RequireExists(ctx, tx, &entities.Word{}, "word", wordID); err != nil {
			return err
		}
		link := entities.WordGroup{WordID: wordID, GroupID: groupID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return database.MapError(err, "group", groupID)
		}
		return nil
	})
}

// RemoveWord unlinks a word from a group.
func (r *Repository) RemoveWord(ctx context.Context, groupID, wordID uint) error {
	res := r.db.WithContext(ctx).
		Where("group_id = ? AND word_id = ?", groupID, wordID).
		Delete(&entities.WordGroup{})
	if res.Error != nil {
		return database.MapError(res.Error, "group", groupID)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("word %d in group %d: %w", wordID, groupID, entities.ErrNotFound)
	}
	return nil
}
