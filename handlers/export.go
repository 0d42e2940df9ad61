package handlers

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"efftrack/models"
	"efftrack/storage"
)

type DataHandler struct {
	records storage.RecordStore
	teams   storage.TeamDirectory
}

func NewDataHandler(records storage.RecordStore, teams storage.TeamDirectory) *DataHandler {
	return &DataHandler{records: records, teams: teams}
}

var exportHeader = []string{
	"Week_Start", "Week_End", "Story_ID", "Developer_Name", "Team_Name",
	"Technology", "Original_Estimate_Hours", "Efficiency_Gained_Hours",
	"Efficiency_Percentage", "Category", "Efficiency_Areas", "Assistant_Used",
	"Task_Type", "Completion_Type", "Notes", "Created_At",
}

func exportRow(e *models.Entry) []string {
	return []string{
		e.WeekStart.Format("2006-01-02"),
		e.WeekEnd.Format("2006-01-02"),
		e.StoryID,
		e.Developer(),
		e.TeamName,
		e.Technology,
		fmt.Sprintf("%.2f", e.EstimateHours()),
		fmt.Sprintf("%.2f", e.GainedHours()),
		fmt.Sprintf("%.2f", e.EfficiencyPercentage),
		e.Category,
		e.EfficiencyAreas,
		e.AssistantUsed,
		e.TaskType,
		e.CompletionType,
		e.Notes,
		e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func writeEntriesCSV(w io.Writer, rows []models.Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for i := range rows {
		if err := writer.Write(exportRow(&rows[i])); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Export streams the selected teams' data as one combined CSV, or as a zip
// of per-team CSVs when export_type is "individual".
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Teams      []string `json:"teams"`
		ExportType string   `json:"export_type"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	teams, err := h.teams.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load teams")
		return
	}

	var invalid []string
	for _, name := range req.Teams {
		if _, ok := teams[name]; !ok {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid teams: %s", strings.Join(invalid, ", ")))
		return
	}

	if req.ExportType == "individual" {
		h.exportIndividual(w, r, req.Teams)
		return
	}
	h.exportCombined(w, r, req.Teams)
}

func (h *DataHandler) exportCombined(w http.ResponseWriter, r *http.Request, teamNames []string) {
	var combined []models.Entry
	for _, name := range teamNames {
		rows, err := h.records.Load(r.Context(), name)
		if err != nil {
			continue
		}
		combined = append(combined, rows...)
	}

	if len(combined) == 0 {
		writeError(w, http.StatusNotFound, "No data found for selected teams")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=combined_efficiency_data.csv")
	writeEntriesCSV(w, combined)
}

func (h *DataHandler) exportIndividual(w http.ResponseWriter, r *http.Request, teamNames []string) {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename=team_efficiency_data.zip")

	zw := zip.NewWriter(w)
	defer zw.Close()

	for _, name := range teamNames {
		rows, err := h.records.Load(r.Context(), name)
		if err != nil || len(rows) == 0 {
			continue
		}
		file, err := zw.Create(fmt.Sprintf("%s_efficiency_data.csv", name))
		if err != nil {
			return
		}
		if err := writeEntriesCSV(file, rows); err != nil {
			return
		}
	}
}

// TeamEntries lists a team's full collection in stored order.
func (h *DataHandler) TeamEntries(w http.ResponseWriter, r *http.Request) {
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

	writeSuccess(w, "", map[string]interface{}{
		"entries": rows,
		"total":   len(rows),
	})
}

// DeleteEntry removes one entry by its position in the team's collection and
// rewrites the collection. There is no update-in-place operation.
func (h *DataHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	teamName := chi.URLParam(r, "team")

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, "Invalid entry index")
		return
	}

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
		writeError(w, http.StatusInternalServerError, "Failed to load team data")
		return
	}
	if index >= len(rows) {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}

	rows = append(rows[:index], rows[index+1:]...)
	if err := h.records.Save(r.Context(), teamName, rows); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete entry")
		return
	}
	writeSuccess(w, "Entry deleted successfully", nil)
}
