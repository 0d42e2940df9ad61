package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"efftrack/models"
)

// GormRecordStore keeps entry collections in a single entries table, one row
// per entry, ordered by a per-team position column. Replace-all rewrites the
// team's rows inside one transaction so readers never see a half-written
// collection.
type GormRecordStore struct {
	db *gorm.DB
}

func NewGormRecordStore(db *gorm.DB) *GormRecordStore {
	return &GormRecordStore{db: db}
}

func (s *GormRecordStore) Load(ctx context.Context, teamName string) ([]models.Entry, error) {
	var rows []models.Entry
	err := s.db.WithContext(ctx).
		Where("team_name = ?", teamName).
		Order("position asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load records for %q: %w", teamName, err)
	}
	return rows, nil
}

func (s *GormRecordStore) Save(ctx context.Context, teamName string, rows []models.Entry) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_name = ?", teamName).Delete(&models.Entry{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].ID = 0
			rows[i].TeamName = teamName
			rows[i].Position = i
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("save records for %q: %w", teamName, err)
	}
	return nil
}

// GormTeamDirectory stores the roster mapping in teams/developers tables but
// keeps the directory's full-document replace contract: Save swaps the whole
// mapping in one transaction.
type GormTeamDirectory struct {
	db *gorm.DB
}

func NewGormTeamDirectory(db *gorm.DB) *GormTeamDirectory {
	return &GormTeamDirectory{db: db}
}

func (d *GormTeamDirectory) Load(ctx context.Context) (map[string]models.Team, error) {
	var teams []models.Team
	if err := d.db.WithContext(ctx).Preload("Developers").Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("load team directory: %w", err)
	}
	mapping := make(map[string]models.Team, len(teams))
	for _, t := range teams {
		mapping[t.Name] = t
	}
	return mapping, nil
}

func (d *GormTeamDirectory) Save(ctx context.Context, teams map[string]models.Team) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Developer{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Team{}).Error; err != nil {
			return err
		}
		for name, team := range teams {
			team.ID = 0
			team.Name = name
			for i := range team.Developers {
				team.Developers[i].ID = 0
				team.Developers[i].TeamID = 0
			}
			if err := tx.Create(&team).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save team directory: %w", err)
	}
	return nil
}

// GormSettingsStore keeps the single settings row, creating it with defaults
// on first read.
type GormSettingsStore struct {
	db *gorm.DB
}

func NewGormSettingsStore(db *gorm.DB) *GormSettingsStore {
	return &GormSettingsStore{db: db}
}

func (s *GormSettingsStore) Load(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := s.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.DefaultSettings()
		if err := s.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return models.Settings{}, fmt.Errorf("seed default settings: %w", err)
		}
		return settings, nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func (s *GormSettingsStore) Save(ctx context.Context, settings models.Settings) error {
	var current models.Settings
	err := s.db.WithContext(ctx).First(&current).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		settings.ID = 0
		err = s.db.WithContext(ctx).Create(&settings).Error
	case err == nil:
		settings.ID = current.ID
		err = s.db.WithContext(ctx).Save(&settings).Error
	}
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
