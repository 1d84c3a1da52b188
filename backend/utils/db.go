package utils

import (
	"fmt"
	"habitat/backend/config"
	"habitat/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	// TranslateError maps driver duplicate-key errors to
	// gorm.ErrDuplicatedKey, which the completion gate relies on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates/updates the schema. Shared with the test setup, which runs
// it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserProgress{},
		&models.LoginHistory{},
		&models.Unit{},
		&models.UnitQuestion{},
		&models.UnitCompletion{},
		&models.SubmissionRecord{},
		&models.EcosystemProgress{},
		&models.SpeciesAdoption{},
		&models.Challenge{},
		&models.ChallengeQuestion{},
		&models.ChallengeCompletion{},
		&models.AssessmentResult{},
	)
}
