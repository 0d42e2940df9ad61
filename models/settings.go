package models

import (
	"time"
)

// Settings is the process-wide vocabulary used by entry forms and validation.
// A single row exists per deployment; it is created with defaults on first read.
type Settings struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UpdatedAt  time.Time `json:"-"`
	Categories []string  `gorm:"serializer:json" json:"categories"`
	// EfficiencyAreas lists the selectable areas of efficiency.
	EfficiencyAreas []string `gorm:"serializer:json" json:"efficiency_areas"`
	// CategoryEfficiencyMapping suggests areas per category. Advisory only;
	// validation does not enforce it.
	CategoryEfficiencyMapping map[string][]string `gorm:"serializer:json" json:"category_efficiency_mapping"`
}

// DefaultSettings returns the vocabulary a fresh deployment starts with.
func DefaultSettings() Settings {
	return Settings{
		Categories: []string{
			"Feature Development",
			"Bug Fixes",
			"Code Review",
			"Testing",
			"Documentation",
			"Refactoring",
			"API Development",
			"Database Work",
		},
		EfficiencyAreas: []string{
			"Code Generation",
			"Code Completion",
			"API Design",
			"Documentation",
			"Debugging",
			"Code Analysis",
			"Test Writing",
			"Refactoring",
			"Test Data Creation",
			"Query Optimization",
		},
		CategoryEfficiencyMapping: map[string][]string{
			"Feature Development": {"Code Generation", "Code Completion", "API Design"},
			"Bug Fixes":           {"Debugging", "Code Analysis"},
			"Code Review":         {"Code Analysis", "Documentation"},
			"Testing":             {"Test Writing", "Test Data Creation"},
			"Documentation":       {"Documentation", "Code Generation"},
			"Refactoring":         {"Refactoring", "Code Analysis"},
			"API Development":     {"API Design", "Code Generation"},
			"Database Work":       {"Query Optimization", "Code Generation"},
		},
	}
}
