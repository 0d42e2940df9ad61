package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"efftrack/analytics"
	"efftrack/config"
	"efftrack/database"
	"efftrack/entry"
	"efftrack/handlers"
	"efftrack/middleware"
	"efftrack/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Stores
	records := storage.NewGormRecordStore(database.GetDB())
	teams := storage.NewGormTeamDirectory(database.GetDB())
	settings := storage.NewGormSettingsStore(database.GetDB())

	// Core services
	validator := entry.NewValidator(records)
	assembler := analytics.NewAssembler(records, teams)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, teams)
	teamsHandler := handlers.NewTeamsHandler(cfg, teams)
	engineerHandler := handlers.NewEngineerHandler(validator, records, settings)
	adminHandler := handlers.NewAdminHandler(assembler, settings, records, teams)
	dataHandler := handlers.NewDataHandler(records, teams)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"efftrack"}`))
	})
	router.Post("/api/auth/admin/login", authHandler.AdminLogin)
	router.Post("/api/auth/engineer/login", authHandler.EngineerLogin)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		r.Post("/api/auth/verify", authHandler.Verify)

		// Engineer routes (admins pass too)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireEngineer)
			r.Post("/api/engineer/entry", engineerHandler.CreateEntry)
			r.Get("/api/engineer/dashboard", engineerHandler.Dashboard)
			r.Get("/api/engineer/settings", engineerHandler.Settings)
		})

		// Admin only routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/api/teams/list", teamsHandler.List)
			r.Get("/api/teams/get-team", teamsHandler.Get)
			r.Post("/api/teams/create", teamsHandler.Create)
			r.Post("/api/teams/add-developer", teamsHandler.AddDeveloper)
			r.Delete("/api/teams/remove-developer", teamsHandler.RemoveDeveloper)
			r.Delete("/api/teams/delete-team", teamsHandler.Delete)

			r.Get("/api/admin/dashboard", adminHandler.Dashboard)
			r.Get("/api/admin/leaderboard", adminHandler.Leaderboard)
			r.Get("/api/admin/settings", adminHandler.GetSettings)
			r.Put("/api/admin/settings", adminHandler.UpdateSettings)
			r.Get("/api/admin/teams/{team}/stats", adminHandler.TeamStats)
			r.Get("/api/admin/teams/{team}/data", adminHandler.TeamData)

			r.Post("/api/data/export", dataHandler.Export)
			r.Get("/api/data/teams/{team}/entries", dataHandler.TeamEntries)
			r.Delete("/api/data/teams/{team}/entries/{index}", dataHandler.DeleteEntry)
		})
	})

	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
