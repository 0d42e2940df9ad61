package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"efftrack/config"
	"efftrack/models"
	"efftrack/storage"
)

type TeamsHandler struct {
	config *config.Config
	teams  storage.TeamDirectory
}

func NewTeamsHandler(cfg *config.Config, teams storage.TeamDirectory) *TeamsHandler {
	return &TeamsHandler{config: cfg, teams: teams}
}

// accessLink builds the link an engineer follows to reach their entry form.
func (h *TeamsHandler) accessLink(developerName, teamName string) string {
	return fmt.Sprintf("%s/engineer?team=%s&dev=%s",
		h.config.FrontendURL, url.QueryEscape(teamName), url.QueryEscape(developerName))
}

// List returns every team with its roster, sorted by name.
func (h *TeamsHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load teams")
		return
	}

	names := make([]string, 0, len(teams))
	for name := range teams {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]models.Team, 0, len(names))
	for _, name := range names {
		team := teams[name]
		if team.Developers == nil {
			team.Developers = []models.Developer{}
		}
		out = append(out, team)
	}
	writeJSON(w, http.StatusOK, out)
}

// Create adds an empty team to the directory.
func (h *TeamsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TeamName    string `json:"team_name"`
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TeamName == "" {
		writeError(w, http.StatusBadRequest, "Team name is required")
		return
	}

	teams, err := h.teams.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load teams")
		return
	}

	if _, exists := teams[req.TeamName]; exists {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Team '%s' already exists", req.TeamName))
		return
	}

	teams[req.TeamName] = models.Team{
		Name:        req.TeamName,
		Description: req.Description,
		Developers:  []models.Developer{},
	}

	if err := h.teams.Save(r.Context(), teams); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save team configuration")
		return
	}
	writeSuccess(w, fmt.Sprintf("Team '%s' created successfully", req.TeamName), nil)
}

// AddDeveloper appends a developer to a team's roster and returns the
// generated access link.
func (h *TeamsHandler) AddDeveloper(w http.ResponseWriter, r *http.Request) {
	teamName := r.URL.Query().Get("team_name")

	var req struct {
		DevName     string `json:"dev_name"`
		DevEmail    string `json:"dev_email"`
		DevPassword string `json:"dev_password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.DevName == "" {
		writeError(w, http.StatusBadRequest, "Developer name is required")
		return
	}

	teams, err := h.teams.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load teams")
		return
	}

	team, ok := teams[teamName]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Team '%s' not found", teamName))
		return
	}

	link := h.accessLink(req.DevName, teamName)
	team.Developers = append(team.Developers, models.Developer{
		Name:       req.DevName,
		Email:      req.DevEmail,
		Password:   req.DevPassword,
		AccessLink: link,
	})
	teams[teamName] = team

	if err := h.teams.Save(r.Context(), teams); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save team configuration")
		return
	}
	writeSuccess(w, fmt.Sprintf("%s added to %s", req.DevName, teamName), map[string]string{
		"access_link": link,
	})
}

// RemoveDeveloper drops a developer from a team's roster.
func (h *TeamsHandler) RemoveDeveloper(w http.ResponseWriter, r *http.Request) {
	teamName := r.URL.Query().Get("team_name")
	developerName := r.URL.Query().Get("developer_name")

	teams, err := h.teams.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load teams")
		return
	}

	team, ok := teams[teamName]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Team '%s' not found", teamName))
		return
	}

	found := false
	kept := make([]models.Developer, 0, len(team.Developers))
	for _, dev := range team.Developers {
		if !found && dev.Name == developerName {
			found = true
			continue
		}
		kept = append(kept, dev)
	}
	if !found {
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("Developer '%s' not found in team '%s'", developerName, teamName))
		return
	}

	team.Developers = kept
	teams[teamName] = team

	if err := h.teams.Save(r.Context(), teams); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save team configuration")
		return
	}
	writeSuccess(w, fmt.Sprintf("%s removed from %s", developerName, teamName), nil)
}

// Delete removes a team from the directory. The team's record collection is
// intentionally left in place; there is no cascade.
func (h *TeamsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	teamName := r.URL.Query().Get("team_name")

	teams, err := h.teams.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load teams")
		return
	}

	if _, ok := teams[teamName]; !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Team '%s' not found", teamName))
		return
	}
	delete(teams, teamName)

	if err := h.teams.Save(r.Context(), teams); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save team configuration")
		return
	}
	writeSuccess(w, fmt.Sprintf("Team '%s' deleted successfully", teamName), nil)
}

// Get returns a single team with its roster.
func (h *TeamsHandler) Get(w http.ResponseWriter, r *http.Request) {
	teamName := r.URL.Query().Get("team_name")

	teams, err := h.teams.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load teams")
		return
	}

	team, ok := teams[teamName]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Team '%s' not found", teamName))
		return
	}
	if team.Developers == nil {
		team.Developers = []models.Developer{}
	}
	writeJSON(w, http.StatusOK, team)
}
