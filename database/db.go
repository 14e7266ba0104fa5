package database

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vibe-todo/vibetodo/apperrors"
	"vibe-todo/vibetodo/config"
	applogger "vibe-todo/vibetodo/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is the store handle. It is built once at startup and passed to
// every caller that needs a unit of work.
type Database struct {
	DB        *gorm.DB
	publisher EventPublisher
}

func Setup(cfg config.Config) (*Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		Logger: logger.New(
			applogger.NewStdLogger(slog.Default(), slog.LevelWarn),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
		TranslateError:         true,  // Surface unique and foreign key violations as gorm errors
		AllowGlobalUpdate:      false, // Prevent global updates without conditions
		SkipDefaultTransaction: true,  // Every write already runs inside WithSession
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, apperrors.Storage("failed to connect to database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperrors.Storage("failed to get database instance", err)
	}

	if cfg.DBDriver == config.DriverPostgres {
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	} else {
		// A single connection serializes sqlite writers.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}

	slog.Info("database connected", "driver", cfg.DBDriver)
	return &Database{DB: db}, nil
}

func dialectorFor(cfg config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite, "":
		if err := ensureDir(cfg.DBPath); err != nil {
			return nil, apperrors.Storage("failed to create database directory", err)
		}
		return sqlite.Open(config.SQLiteDSN(cfg.DBPath)), nil
	default:
		return nil, apperrors.Validation("unsupported database driver %q", cfg.DBDriver)
	}
}

func ensureDir(path string) error {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// SetPublisher registers where committed events go. Call it before the
// handle is shared.
func (d *Database) SetPublisher(p EventPublisher) {
	d.publisher = p
}

// Migrate creates any missing tables, indexes and constraints. Safe to call
// on every start.
func (d *Database) Migrate() error {
	if err := RunMigrations(d.DB); err != nil {
		return apperrors.Storage("failed to run migrations", err)
	}
	return nil
}

// Ping checks that the store answers.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return apperrors.Storage("failed to get database instance", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperrors.Storage("database unreachable", err)
	}
	return nil
}

func (d *Database) Close() {
	if d.DB == nil {
		slog.Warn("database connection is nil, nothing to close")
		return
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		slog.Error("failed to get database connection", "error", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Error("failed to close database connection", "error", err)
	}
}
