package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the datastore selected by driver.
// Foreign keys are never created: deleting a client or box leaves dependent rows in place.
func Open(driver, dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	newLogger := logger.New(
		logrus.StandardLogger(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gormConfig := &gorm.Config{
		Logger:                                   newLogger,
		PrepareStmt:                              false, // Disables GORM-level prepared statements
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres, "":
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // Disables implicit prepared statements for pooled hosted Postgres
		})
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// One writer at a time; also keeps a :memory: database alive for the pool's lifetime
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

// ConnectDB opens the datastore or stops the process, like every other startup failure
func ConnectDB(driver, dsn string) *gorm.DB {
	db, err := Open(driver, dsn, logger.Warn)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	logrus.Infof("Database connection established (%s)", driverName(driver))
	return db
}

func driverName(driver string) string {
	if driver == "" {
		return DriverPostgres
	}
	return driver
}
