package core

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type LogLevel int

const (
	LogLevelSilent LogLevel = iota + 1
	LogLevelError
	LogLevelWarn
	LogLevelInfo
)

// DatabaseManager owns the connection pool for the kintai schema. Tenancy is
// row-level (every table carries owner_id), so a single pool serves all
// owners.
type DatabaseManager struct {
	gormDB   *gorm.DB
	LogLevel LogLevel
}

// New opens the pool. dsn is a full MySQL DSN including the schema and
// parseTime=true.
func New(dsn string, maxConnection int) (*DatabaseManager, error) {
	return NewWithLogLevel(dsn, maxConnection, LogLevelSilent)
}

func NewWithLogLevel(dsn string, maxConnection int, level LogLevel) (*DatabaseManager, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(level)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxConnection)
	sqlDB.SetMaxIdleConns(maxConnection)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping pool: %w", err)
	}

	return &DatabaseManager{gormDB: db, LogLevel: level}, nil
}

func gormLogLevel(level LogLevel) logger.LogLevel {
	switch level {
	case LogLevelError:
		return logger.Error
	case LogLevelWarn:
		return logger.Warn
	case LogLevelInfo:
		return logger.Info
	default:
		return logger.Silent
	}
}

// DB returns a request-scoped handle.
func (dm *DatabaseManager) DB(ctx context.Context) *gorm.DB {
	return dm.gormDB.WithContext(ctx)
}

func (dm *DatabaseManager) Exec(ctx context.Context, fn func(db *gorm.DB) error) error {
	return fn(dm.DB(ctx))
}

// Migrate creates or updates the schema for the given models.
func (dm *DatabaseManager) Migrate(models ...interface{}) error {
	return dm.gormDB.AutoMigrate(models...)
}

// Close closes the pool.
func (dm *DatabaseManager) Close() error {
	sqlDB, err := dm.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
