package models

import (
	"time"
)

// Entry is one logged observation of time saved by assistant-aided work.
// Entries are appended to a team's collection and never updated in place;
// deletion is by position within the collection.
//
// Developer name and the hour fields are pointers because historical imports
// carry rows where these were never filled in. The aggregation code treats
// missing hours as zero and missing names as "Unknown".
type Entry struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	TeamName string `gorm:"not null;index:idx_entries_team_pos,priority:1;size:100" json:"team_name"`
	Position int    `gorm:"not null;index:idx_entries_team_pos,priority:2" json:"-"`

	WeekStart time.Time `gorm:"not null;type:date" json:"week_start"`
	WeekEnd   time.Time `gorm:"not null;type:date" json:"week_end"`
	StoryID   string    `gorm:"size:100" json:"story_id"`

	DeveloperName *string `gorm:"size:200;index" json:"developer_name"`
	Technology    string  `gorm:"size:100" json:"technology"`

	OriginalEstimateHours *float64 `json:"original_estimate_hours"`
	EfficiencyGainedHours *float64 `json:"efficiency_gained_hours"`
	EfficiencyPercentage  float64  `json:"efficiency_percentage"`

	Category string `gorm:"size:100" json:"category"`
	// Comma+space joined list of efficiency areas. Join is by convention only
	// and is never re-split; consumers display it as a flat string.
	EfficiencyAreas string `gorm:"size:500" json:"efficiency_areas"`

	AssistantUsed  string `gorm:"size:10" json:"assistant_used"`
	TaskType       string `gorm:"size:100" json:"task_type"`
	CompletionType string `gorm:"size:100" json:"completion_type"`
	Notes          string `gorm:"size:1000" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}

// Developer returns the developer name with missing values coalesced.
func (e *Entry) Developer() string {
	if e.DeveloperName == nil || *e.DeveloperName == "" {
		return "Unknown"
	}
	return *e.DeveloperName
}

// EstimateHours returns the original estimate, 0 when absent.
func (e *Entry) EstimateHours() float64 {
	if e.OriginalEstimateHours == nil {
		return 0
	}
	return *e.OriginalEstimateHours
}

// GainedHours returns the hours gained, 0 when absent.
func (e *Entry) GainedHours() float64 {
	if e.EfficiencyGainedHours == nil {
		return 0
	}
	return *e.EfficiencyGainedHours
}
