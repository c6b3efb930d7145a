package entities

import "time"

type StudyActivity struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Description  *string `json:"description"`
}

func (StudyActivity) TableName() string {
	return "study_activities"
}

// StudySession is one run of an activity against a group. There is no status
// column: a session is implicitly closed once no more reviews arrive.
type StudySession struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	GroupID         uint          `gorm:"not null;index" json:"group_id"`
	StudyActivityID uint          `gorm:"not null;index" json:"study_activity_id"`
	CreatedAt       time.Time     `json:"created_at"`
	Group           Group         `gorm:"foreignKey:GroupID" json:"-"`
	StudyActivity   StudyActivity `gorm:"foreignKey:StudyActivityID" json:"-"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}

// WordReviewItem records a single answer. Rows are never updated.
type WordReviewItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	WordID         uint      `gorm:"not null;index" json:"word_id"`
	StudySessionID uint      `gorm:"not null;index" json:"study_session_id"`
	Correct        bool      `gorm:"not null" json:"correct"`
	CreatedAt      time.Time `json:"created_at"`
}

func (WordReviewItem) TableName() string {
	return "word_review_items"
}

// StudySessionSummary is a session joined with its group and activity names
// and aggregated review counts.
type StudySessionSummary struct {
	ID               uint      `json:"id"`
	GroupID          uint      `json:"group_id"`
	GroupName        string    `json:"group_name"`
	StudyActivityID  uint      `json:"study_activity_id"`
	ActivityName     string    `json:"activity_name"`
	CreatedAt        time.Time `json:"created_at"`
	ReviewItemsCount int64     `json:"review_items_count"`
	CorrectCount     int64     `json:"correct_count"`
}

// StudyActivitySummary is an activity with usage statistics.
type StudyActivitySummary struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	ThumbnailURL  *string `json:"thumbnail_url"`
	Description   *string `json:"description"`
	TotalSessions int64   `json:"total_sessions"`
	UniqueGroups  int64   `json:"unique_groups"`
}
