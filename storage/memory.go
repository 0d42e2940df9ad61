package storage

import (
	"context"
	"sync"

	"efftrack/models"
)

// MemoryRecordStore is an in-memory RecordStore used by tests and local runs
// without a database. It mirrors the load-all / replace-all contract exactly.
type MemoryRecordStore struct {
	mu      sync.Mutex
	records map[string][]models.Entry

	// LoadErr / SaveErr force failures for degraded-path tests.
	LoadErr error
	SaveErr error
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{records: make(map[string][]models.Entry)}
}

func (s *MemoryRecordStore) Load(ctx context.Context, teamName string) ([]models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	rows := s.records[teamName]
	out := make([]models.Entry, len(rows))
	copy(out, rows)
	return out, nil
}

func (s *MemoryRecordStore) Save(ctx context.Context, teamName string, rows []models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	stored := make([]models.Entry, len(rows))
	copy(stored, rows)
	for i := range stored {
		stored[i].TeamName = teamName
		stored[i].Position = i
	}
	s.records[teamName] = stored
	return nil
}

// MemoryTeamDirectory is an in-memory TeamDirectory.
type MemoryTeamDirectory struct {
	mu    sync.Mutex
	teams map[string]models.Team

	LoadErr error
	SaveErr error
}

func NewMemoryTeamDirectory() *MemoryTeamDirectory {
	return &MemoryTeamDirectory{teams: make(map[string]models.Team)}
}

func (d *MemoryTeamDirectory) Load(ctx context.Context) (map[string]models.Team, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.LoadErr != nil {
		return nil, d.LoadErr
	}
	out := make(map[string]models.Team, len(d.teams))
	for name, team := range d.teams {
		out[name] = team
	}
	return out, nil
}

func (d *MemoryTeamDirectory) Save(ctx context.Context, teams map[string]models.Team) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.SaveErr != nil {
		return d.SaveErr
	}
	stored := make(map[string]models.Team, len(teams))
	for name, team := range teams {
		team.Name = name
		stored[name] = team
	}
	d.teams = stored
	return nil
}

// MemorySettingsStore is an in-memory SettingsStore with lazily created
// defaults.
type MemorySettingsStore struct {
	mu       sync.Mutex
	settings *models.Settings

	SaveErr error
}

func NewMemorySettingsStore() *MemorySettingsStore {
	return &MemorySettingsStore{}
}

func (s *MemorySettingsStore) Load(ctx context.Context) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		defaults := models.DefaultSettings()
		s.settings = &defaults
	}
	return *s.settings, nil
}

func (s *MemorySettingsStore) Save(ctx context.Context, settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.settings = &settings
	return nil
}
