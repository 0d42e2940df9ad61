// Package storage defines the external collaborators the core depends on:
// the per-team record store, the team directory, and the settings store.
// All three use load-all / replace-all semantics; writes are last-writer-wins
// full-document replaces with no versioning.
package storage

import (
	"context"
	"errors"

	"efftrack/models"
)

var (
	ErrTeamNotFound      = errors.New("team not found")
	ErrDeveloperNotFound = errors.New("developer not found in team")
)

// RecordStore holds each team's entry collection, keyed by team name.
// Load returns all historical rows in original append order; a team with no
// data yields an empty slice, not an error. Save replaces the whole
// collection.
type RecordStore interface {
	Load(ctx context.Context, teamName string) ([]models.Entry, error)
	Save(ctx context.Context, teamName string, rows []models.Entry) error
}

// TeamDirectory maps team name to roster. Load returns the full mapping;
// Save replaces it.
type TeamDirectory interface {
	Load(ctx context.Context) (map[string]models.Team, error)
	Save(ctx context.Context, teams map[string]models.Team) error
}

// SettingsStore holds the deployment-wide vocabulary. Load materializes
// defaults on first access.
type SettingsStore interface {
	Load(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context, settings models.Settings) error
}
