package entities

// ResetResult reports how many rows a reset removed from each table.
type ResetResult struct {
	WordReviewItems int64 `json:"word_review_items"`
	StudySessions   int64 `json:"study_sessions"`
	StudyActivities int64 `json:"study_activities"`
	WordsGroups     int64 `json:"words_groups"`
}

// Total is the number of rows removed across all tables.
func (r ResetResult) Total() int64 {
	return r.WordReviewItems + r.StudySessions + r.StudyActivities + r.WordsGroups
}
