package focusflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/hay-kot/focusflow/internal/core/config"
	"github.com/hay-kot/focusflow/internal/core/kv"
	"github.com/hay-kot/focusflow/internal/core/task"
	"github.com/hay-kot/focusflow/internal/data/db"
	"github.com/hay-kot/focusflow/internal/data/stores"
	"github.com/hay-kot/focusflow/internal/store/jsonfile"
)

// App is the central entry point for focusflow operations.
// Commands and the TUI consume App instead of raw dependencies.
type App struct {
	Config *config.Config
	Tasks  *TaskStore
	Build  BuildInfo

	closers []func() error
}

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewApp opens the configured repository and loads the task store.
func NewApp(ctx context.Context, cfg *config.Config, build BuildInfo, log zerolog.Logger) (*App, error) {
	repo, closer, err := OpenRepository(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		Tasks:  NewTaskStore(ctx, repo, log),
		Build:  build,
	}
	if closer != nil {
		app.closers = append(app.closers, closer)
	}

	return app, nil
}

// Close releases resources held by the repository.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

// OpenRepository builds the task.Repository selected by cfg.Storage.Driver.
// The returned closer may be nil.
func OpenRepository(cfg *config.Config) (task.Repository, func() error, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}

		database, err := db.Open(cfg.DataDir, db.OpenOptions{
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			BusyTimeout:  cfg.Database.BusyTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}

		return stores.NewTaskRepository(stores.NewKVStore(database), cfg.Storage.Key), database.Close, nil
	case config.DriverJSON:
		path := filepath.Join(cfg.DataDir, cfg.Storage.Key+".json")
		return jsonfile.NewTaskStore(path), nil, nil
	case config.DriverMemory:
		return stores.NewTaskRepository(kv.NewMemory(), cfg.Storage.Key), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
