package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"efftrack/analytics"
	"efftrack/models"
	"efftrack/storage"
)

type AdminHandler struct {
	assembler *analytics.Assembler
	settings  storage.SettingsStore
	records   storage.RecordStore
	teams     storage.TeamDirectory
}

func NewAdminHandler(assembler *analytics.Assembler, settings storage.SettingsStore, records storage.RecordStore, teams storage.TeamDirectory) *AdminHandler {
	return &AdminHandler{
		assembler: assembler,
		settings:  settings,
		records:   records,
		teams:     teams,
	}
}

// Dashboard returns the consolidated organization-wide statistics. The
// assembler absorbs store failures, so this endpoint always answers 200.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.assembler.Dashboard(r.Context()))
}

// TeamStats returns one team's aggregate numbers.
func (h *AdminHandler) TeamStats(w http.ResponseWriter, r *http.Request) {
	teamName := chi.URLParam(r, "team")

	stats, err := h.assembler.TeamStats(r.Context(), teamName)
	if err != nil {
		if errors.Is(err, storage.ErrTeamNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Team '%s' not found", teamName))
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to compute team stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Leaderboard ranks developers by total time saved, for one team when
// team_name is given or across the organization otherwise.
func (h *AdminHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	teamName := r.URL.Query().Get("team_name")

	board, err := h.assembler.TeamLeaderboard(r.Context(), teamName)
	if err != nil {
		if errors.Is(err, storage.ErrTeamNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Team '%s' not found", teamName))
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to compute leaderboard")
		return
	}
	if board == nil {
		board = []models.DeveloperStats{}
	}
	writeJSON(w, http.StatusOK, board)
}

// GetSettings returns the current vocabulary.
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings merges only the provided fields into the stored settings.
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Categories                []string            `json:"categories"`
		EfficiencyAreas           []string            `json:"efficiency_areas"`
		CategoryEfficiencyMapping map[string][]string `json:"category_efficiency_mapping"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	current, err := h.settings.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	if req.Categories != nil {
		current.Categories = req.Categories
	}
	if req.EfficiencyAreas != nil {
		current.EfficiencyAreas = req.EfficiencyAreas
	}
	if req.CategoryEfficiencyMapping != nil {
		current.CategoryEfficiencyMapping = req.CategoryEfficiencyMapping
	}

	if err := h.settings.Save(r.Context(), current); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save team settings")
		return
	}
	writeSuccess(w, "Team settings updated successfully", nil)
}

// TeamData returns a team's raw entries alongside its headline stats.
func (h *AdminHandler) TeamData(w http.ResponseWriter, r *http.Request) {
	teamName := chi.URLParam(r, "team")

	teams, err := h.teams.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load teams")
		return
	}
	if _, ok := teams[teamName]; !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Team '%s' not found", teamName))
		return
	}

	rows, err := h.records.Load(r.Context(), teamName)
	if err != nil {
		rows = nil
	}
	if rows == nil {
		rows = []models.Entry{}
	}

	summary := analytics.Summarize(rows)
	writeSuccess(w, "", map[string]interface{}{
		"entries": rows,
		"stats": map[string]interface{}{
			"total_time_saved":     summary.TotalTimeSaved,
			"total_entries":        summary.TotalEntries,
			"average_efficiency":   summary.AverageEfficiency,
			"assistant_usage_rate": summary.AssistantUsageRate,
		},
	})
}
