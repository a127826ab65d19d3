package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/config"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/policy"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.AvailabilitySchedule{},
		&models.WeeklyPattern{},
		&models.AvailabilityException{},
		&models.Session{},
		&models.RescheduleRequest{},
		&models.SessionPolicy{},
		&models.SessionAuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedPolicies(db)

	return db
}

// seedPolicies inserts the default policy rows, leaving any
// admin-edited values alone.
func seedPolicies(db *gorm.DB) {
	for key, value := range policy.Defaults {
		row := models.SessionPolicy{Key: key, Value: value}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			log.Fatalf("failed to seed policy %s: %v", key, err)
		}
	}
}
