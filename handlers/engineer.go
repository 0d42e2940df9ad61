package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"efftrack/analytics"
	"efftrack/entry"
	"efftrack/middleware"
	"efftrack/models"
	"efftrack/storage"
)

type EngineerHandler struct {
	validator *entry.Validator
	records   storage.RecordStore
	settings  storage.SettingsStore
}

func NewEngineerHandler(validator *entry.Validator, records storage.RecordStore, settings storage.SettingsStore) *EngineerHandler {
	return &EngineerHandler{
		validator: validator,
		records:   records,
		settings:  settings,
	}
}

// CreateEntry validates and stores a new efficiency entry for the
// authenticated developer.
func (h *EngineerHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil || claims.Team == "" {
		writeError(w, http.StatusForbidden, "Engineer token with a team is required")
		return
	}

	var req struct {
		WeekDate         string   `json:"week_date"`
		StoryID          string   `json:"story_id"`
		OriginalEstimate float64  `json:"original_estimate"`
		EfficiencyGained float64  `json:"efficiency_gained"`
		AssistantUsed    string   `json:"assistant_used"`
		Category         string   `json:"category"`
		EfficiencyAreas  []string `json:"efficiency_areas"`
		Notes            string   `json:"notes"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	weekDate, err := time.Parse("2006-01-02", req.WeekDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid week date format, expected YYYY-MM-DD")
		return
	}

	sub := entry.Submission{
		WeekDate:         weekDate,
		StoryID:          req.StoryID,
		OriginalEstimate: req.OriginalEstimate,
		EfficiencyGained: req.EfficiencyGained,
		AssistantUsed:    req.AssistantUsed,
		Category:         req.Category,
		EfficiencyAreas:  req.EfficiencyAreas,
		Notes:            req.Notes,
	}

	if _, err := h.validator.CreateEntry(r.Context(), sub, claims.Subject, claims.Team); err != nil {
		var vErr *entry.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Message)
			return
		}
		log.Printf("create entry for %q/%q: %v", claims.Team, claims.Subject, err)
		writeError(w, http.StatusInternalServerError, "Failed to save entry")
		return
	}

	writeSuccess(w, "Entry created successfully", nil)
}

// Dashboard returns the authenticated developer's own totals and their last
// ten entries. Unreadable team data degrades to zero stats.
func (h *EngineerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil || claims.Team == "" {
		writeError(w, http.StatusForbidden, "Engineer token with a team is required")
		return
	}

	stats := models.EngineerStats{
		DeveloperName: claims.Subject,
		TeamName:      claims.Team,
		RecentEntries: []models.Entry{},
	}

	rows, err := h.records.Load(r.Context(), claims.Team)
	if err != nil {
		log.Printf("engineer dashboard: team %q unreadable: %v", claims.Team, err)
		writeJSON(w, http.StatusOK, stats)
		return
	}

	mine := make([]models.Entry, 0, len(rows))
	for _, row := range rows {
		if row.Developer() == claims.Subject {
			mine = append(mine, row)
		}
	}
	if len(mine) == 0 {
		writeJSON(w, http.StatusOK, stats)
		return
	}

	summary := analytics.Summarize(mine)
	stats.TotalTimeSaved = summary.TotalTimeSaved
	stats.TotalEntries = summary.TotalEntries
	stats.AverageEfficiency = summary.AverageEfficiency

	recent := mine
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	stats.RecentEntries = recent

	writeJSON(w, http.StatusOK, stats)
}

// Settings returns the vocabulary used to populate the entry form.
func (h *EngineerHandler) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	writeSuccess(w, "", settings)
}
