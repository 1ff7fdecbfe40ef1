package database

import (
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cafewifi/model"
)

// Open connects to the database named by dsn and migrates the schema.
// Postgres DSNs (key=value or postgres:// form) use the postgres driver;
// anything else is treated as a sqlite file path, which is what the
// original deployment used (cafes.db).
func Open(dsn string) (*gorm.DB, error) {
	dialector := pickDialector(dsn)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.Cafe{}); err != nil {
		return nil, err
	}

	return db, nil
}

func pickDialector(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}
