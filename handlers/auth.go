package handlers

import (
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"efftrack/config"
	"efftrack/middleware"
	"efftrack/storage"
)

type AuthHandler struct {
	config        *config.Config
	teams         storage.TeamDirectory
	adminPassHash []byte
}

func NewAuthHandler(cfg *config.Config, teams storage.TeamDirectory) *AuthHandler {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	return &AuthHandler{
		config:        cfg,
		teams:         teams,
		adminPassHash: hash,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserType    string `json:"user_type"`
}

// AdminLogin exchanges the admin password for an admin bearer token.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.adminPassHash, []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid admin password")
		return
	}

	token, err := middleware.GenerateAdminToken(h.config.JWTExpiration)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserType:    middleware.UserTypeAdmin,
	})
}

// EngineerLogin validates roster membership and issues an engineer token.
// A developer with no stored password accepts any password; otherwise the
// password must match.
func (h *AuthHandler) EngineerLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeveloperName string `json:"developer_name"`
		TeamName      string `json:"team_name"`
		Password      string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	teams, err := h.teams.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load team directory")
		return
	}

	team, ok := teams[req.TeamName]
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid team name")
		return
	}

	dev := team.FindDeveloper(req.DeveloperName)
	if dev == nil {
		writeError(w, http.StatusUnauthorized, "Invalid developer name for this team")
		return
	}
	if dev.Password != "" && dev.Password != req.Password {
		writeError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := middleware.GenerateEngineerToken(req.DeveloperName, req.TeamName, h.config.JWTExpiration)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserType:    middleware.UserTypeEngineer,
	})
}

// Verify echoes the validated claims back; AuthMiddleware already rejected
// anything invalid.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeSuccess(w, "Token is valid", map[string]string{
		"user_type": claims.UserType,
		"sub":       claims.Subject,
		"team":      claims.Team,
	})
}
