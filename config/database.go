package config

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB(databaseURL string) *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  databaseURL,
		PreferSimpleProtocol: true, // Disable prepared statements completely
	}), &gorm.Config{
		PrepareStmt: false,
		// Map unique-constraint violations to gorm.ErrDuplicatedKey so the
		// services can turn them into ErrUsernameTaken.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("error connect to database %s", err)
	}
	return db
}
