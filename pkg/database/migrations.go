package database

import (
	"log"

	"rgpt-backend/internal/model"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// GetMigrator builds the versioned migrator. New schema changes get their own
// migration entry; a clean database skips straight to the latest state.
func GetMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	migrator := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250901_initial",
			Migrate: func(txn *gorm.DB) error {
				return txn.AutoMigrate(
					&model.User{},
					&model.ChatSession{},
					&model.ChatMessage{},
					&model.MessageFeedback{},
				)
			},
			Rollback: func(txn *gorm.DB) error {
				return txn.Migrator().DropTable(
					"message_feedbacks",
					"chat_messages",
					"chat_sessions",
					"users",
				)
			},
		},
	})

	migrator.InitSchema(func(txn *gorm.DB) error {
		log.Println("clean database detected, running full schema initialization")

		dbType := db.Dialector.Name()
		if dbType == "sqlite" || dbType == "sqlite3" {
			if err := txn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
				return err
			}
		}

		return txn.AutoMigrate(
			&model.User{},
			&model.ChatSession{},
			&model.ChatMessage{},
			&model.MessageFeedback{},
		)
	})

	return migrator
}
