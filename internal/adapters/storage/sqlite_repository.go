package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gitdeck/internal/domain"
	"gitdeck/internal/logging"
	"gitdeck/internal/ports"
)

// SQLiteRepository implements ports.WorkspaceRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.WorkspaceRepository = (*SQLiteRepository)(nil)

// gormLogger wraps the gitdeck logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("GITDECK_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository creates a new SQLiteRepository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	// Expand home directory if present
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for concurrent access
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")
	db.Exec("PRAGMA foreign_keys=ON")

	if err := db.AutoMigrate(&WorkspaceModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate Workspace schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get implements WorkspaceReader.Get
func (r *SQLiteRepository) Get(ctx context.Context, path string) (*ports.Workspace, error) {
	var model WorkspaceModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("path = ?", path).First(&model).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrWorkspaceNotFound, path)
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	ws := toWorkspace(model)
	return &ws, nil
}

// List implements WorkspaceReader.List, most recently opened first
func (r *SQLiteRepository) List(ctx context.Context) ([]ports.Workspace, error) {
	var models []WorkspaceModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Order("last_opened_at DESC").Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	workspaces := make([]ports.Workspace, 0, len(models))
	for _, model := range models {
		workspaces = append(workspaces, toWorkspace(model))
	}
	return workspaces, nil
}

// Save implements WorkspaceWriter.Save, inserting or updating by path
func (r *SQLiteRepository) Save(ctx context.Context, ws ports.Workspace) error {
	model := toModel(ws)

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Save(&model).Error
	}, 3)
	if err != nil {
		return fmt.Errorf("failed to save workspace: %w", err)
	}
	return nil
}

// Delete implements WorkspaceWriter.Delete. Deleting an unknown path is a no-op.
func (r *SQLiteRepository) Delete(ctx context.Context, path string) error {
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("path = ?", path).Delete(&WorkspaceModel{}).Error
	}, 3)
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	return nil
}

func toWorkspace(model WorkspaceModel) ports.Workspace {
	return ports.Workspace{
		IsRepository: model.IsRepository,
		LastBranch:   model.LastBranch,
		LastOpenedAt: model.LastOpenedAt,
		Path:         model.Path,
	}
}

func toModel(ws ports.Workspace) WorkspaceModel {
	return WorkspaceModel{
		IsRepository: ws.IsRepository,
		LastBranch:   ws.LastBranch,
		LastOpenedAt: ws.LastOpenedAt,
		Path:         ws.Path,
	}
}

// withRetry retries fn when SQLite reports the database is busy or locked
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
