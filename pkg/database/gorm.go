package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func getLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true, // Don't include params in the SQL log
			Colorful:                  true,
		},
	)
}

func configureConnectionPool(db *gorm.DB, maxOpen int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

// Open connects with the named driver. For sqlite the DSN is a file path or
// ":memory:".
func Open(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case DriverPostgres, "":
		return NewGormDBFromDSN(dsn)
	case DriverSQLite:
		return NewSQLiteDB(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func NewGormDBFromDSN(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_CONNECTION_STRING is not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: getLogger(),
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db, 100); err != nil {
		return nil, err
	}

	return db, nil
}

func NewSQLiteDB(path string) (*gorm.DB, error) {
	if path == "" {
		path = "question_bank.db"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: getLogger(),
	})
	if err != nil {
		return nil, err
	}

	// sqlite allows a single writer
	if err := configureConnectionPool(db, 1); err != nil {
		return nil, err
	}

	return db, nil
}
