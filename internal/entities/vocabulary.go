package entities

import (
	"gorm.io/datatypes"
)

// Word is a vocabulary entry. Parts holds the per-character breakdown as a
// JSON document and is only decoded on demand.
type Word struct {
	ID      uint           `gorm:"primaryKey" json:"id"`
	Kanji   string         `gorm:"not null" json:"kanji"`
	Romaji  string         `gorm:"not null" json:"romaji"`
	English string         `gorm:"not null" json:"english"`
	Parts   datatypes.JSON `json:"parts,omitempty"`
	Groups  []Group        `gorm:"many2many:words_groups;" json:"groups,omitempty"`
}

func (Word) TableName() string {
	return "words"
}

type Group struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null;uniqueIndex" json:"name"`
	Words []Word `gorm:"many2many:words_groups;" json:"-"`
}

func (Group) TableName() string {
	return "groups"
}

// WordGroup is the membership row between a word and a group.
type WordGroup struct {
	WordID  uint `gorm:"primaryKey" json:"word_id"`
	GroupID uint `gorm:"primaryKey" json:"group_id"`
}

func (WordGroup) TableName() string {
	return "words_groups"
}

// WordSummary is a word annotated with its review counts.
type WordSummary struct {
	ID           uint           `json:"id"`
	Kanji        string         `json:"kanji"`
	Romaji       string         `json:"romaji"`
	English      string         `json:"english"`
	Parts        datatypes.JSON `json:"parts,omitempty"`
	CorrectCount int64          `json:"correct_count"`
	WrongCount   int64          `json:"wrong_count"`
}

// GroupSummary is a group annotated with the number of member words.
type GroupSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	WordCount int64  `json:"word_count"`
}

// WordDetail is a single word with its review counts and group memberships.
type WordDetail struct {
	WordSummary
	Groups []Group `json:"groups"`
}

// GroupStats carries aggregate numbers for a single group.
type GroupStats struct {
	TotalWordCount int64 `json:"total_word_count"`
}

type GroupDetail struct {
	ID    uint       `json:"id"`
	Name  string     `json:"name"`
	Stats GroupStats `json:"stats"`
}
