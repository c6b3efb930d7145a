package entities

import "time"

// LastStudySession is the most recent session with its group name.
type LastStudySession struct {
	ID              uint      `json:"id"`
	GroupID         uint      `json:"group_id"`
	GroupName       string    `json:"group_name"`
	StudyActivityID uint      `json:"study_activity_id"`
	CreatedAt       time.Time `json:"created_at"`
}

type StudyProgress struct {
	TotalWordsStudied   int64 `json:"total_words_studied"`
	TotalAvailableWords int64 `json:"total_available_words"`
}

// QuickStats summarises overall study activity. SuccessRate is a percentage
// rounded to one decimal.
type QuickStats struct {
	SuccessRate        float64 `json:"success_rate"`
	TotalStudySessions int64   `json:"total_study_sessions"`
	TotalActiveGroups  int64   `json:"total_active_groups"`
	StudyStreakDays    int     `json:"study_streak_days"`
}
