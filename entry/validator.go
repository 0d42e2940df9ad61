// Package entry turns raw engineer submissions into canonical stored records.
package entry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"efftrack/models"
	"efftrack/storage"
)

// ValidationError reports a submission rejected before any write happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Submission is the raw payload an engineer sends for one week's entry.
type Submission struct {
	WeekDate         time.Time
	StoryID          string
	OriginalEstimate float64
	EfficiencyGained float64
	AssistantUsed    string
	Category         string
	EfficiencyAreas  []string
	Notes            string
}

// Validator normalizes submissions and persists them through the record
// store with load-append-rewrite semantics. Two concurrent creations on the
// same team race at the rewrite step and the loser's write is lost; the
// store offers no versioning to detect it.
type Validator struct {
	records storage.RecordStore
	now     func() time.Time
}

func NewValidator(records storage.RecordStore) *Validator {
	return &Validator{records: records, now: time.Now}
}

// WeekBounds returns the Monday and Sunday of the week containing d,
// whatever weekday d falls on.
func WeekBounds(d time.Time) (monday, sunday time.Time) {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	monday = day.AddDate(0, 0, -offset)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// CreateEntry validates a submission for the authenticated developer and
// team, derives the stored fields, appends the record to the team's
// collection and rewrites the collection. Write failures surface to the
// caller; silent loss on the write path is not acceptable.
func (v *Validator) CreateEntry(ctx context.Context, sub Submission, developerName, teamName string) (models.Entry, error) {
	if sub.WeekDate.IsZero() {
		return models.Entry{}, &ValidationError{Field: "week_date", Message: "week date is required"}
	}
	if sub.OriginalEstimate < 0 {
		return models.Entry{}, &ValidationError{Field: "original_estimate", Message: "estimate cannot be negative"}
	}
	if sub.EfficiencyGained < 0 {
		return models.Entry{}, &ValidationError{Field: "efficiency_gained", Message: "gained hours cannot be negative"}
	}
	if sub.EfficiencyGained > sub.OriginalEstimate {
		return models.Entry{}, &ValidationError{
			Field:   "efficiency_gained",
			Message: "efficiency gained cannot be greater than original estimate",
		}
	}

	record := v.normalize(sub, developerName, teamName)

	rows, err := v.records.Load(ctx, teamName)
	if err != nil {
		return models.Entry{}, fmt.Errorf("load collection for %q: %w", teamName, err)
	}
	rows = append(rows, record)
	if err := v.records.Save(ctx, teamName, rows); err != nil {
		return models.Entry{}, fmt.Errorf("save entry for %q: %w", teamName, err)
	}
	return record, nil
}

func (v *Validator) normalize(sub Submission, developerName, teamName string) models.Entry {
	monday, sunday := WeekBounds(sub.WeekDate)

	estimate := sub.OriginalEstimate
	gained := sub.EfficiencyGained
	name := developerName

	// Zero estimates are legitimate (unestimated work); the derived
	// percentage is defined as 0 for them rather than dividing by zero.
	percentage := 0.0
	if estimate > 0 {
		percentage = gained / estimate * 100
	}

	completion := "Manual"
	if strings.EqualFold(sub.AssistantUsed, "Yes") {
		completion = "Inline Suggestion"
	}

	return models.Entry{
		TeamName:              teamName,
		WeekStart:             monday,
		WeekEnd:               sunday,
		StoryID:               sub.StoryID,
		DeveloperName:         &name,
		Technology:            "General",
		OriginalEstimateHours: &estimate,
		EfficiencyGainedHours: &gained,
		EfficiencyPercentage:  percentage,
		Category:              sub.Category,
		EfficiencyAreas:       strings.Join(sub.EfficiencyAreas, ", "),
		AssistantUsed:         sub.AssistantUsed,
		TaskType:              "General",
		CompletionType:        completion,
		Notes:                 sub.Notes,
		CreatedAt:             v.now(),
	}
}
