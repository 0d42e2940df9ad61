package database

import (
	"errors"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"efftrack/models"
)

var DB *gorm.DB

func Init(dsn string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	// Auto migrate the schema
	err = DB.AutoMigrate(&models.Team{}, &models.Developer{}, &models.Entry{}, &models.Settings{})
	if err != nil {
		return err
	}

	// Seed default vocabulary if not present
	if err := seedDefaultSettings(); err != nil {
		return err
	}

	return nil
}

func seedDefaultSettings() error {
	var settings models.Settings
	err := DB.First(&settings).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	defaults := models.DefaultSettings()
	if err := DB.Create(&defaults).Error; err != nil {
		return err
	}

	log.Println("Default team settings created")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
