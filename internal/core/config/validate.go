package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/focusflow/internal/core/styles"
	"github.com/hay-kot/focusflow/internal/core/task"
)

var drivers = []string{DriverSQLite, DriverJSON, DriverMemory}

// Validate checks that the configuration is structurally valid.
// Returns criterio.FieldErrors describing every invalid field.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, notEmpty),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("storage.driver", c.Storage.Driver, oneOf(drivers)),
		criterio.Run("storage.key", c.Storage.Key, notEmpty),
		criterio.Run("database.max_open_conns", c.Database.MaxOpenConns, atLeast(1)),
		criterio.Run("database.max_idle_conns", c.Database.MaxIdleConns, atLeast(1)),
		criterio.Run("database.busy_timeout", c.Database.BusyTimeout, atLeast(0)),
		criterio.Run("defaults.priority", c.Defaults.Priority, validPriority),
		criterio.Run("defaults.time_allocation", c.Defaults.TimeAllocation, task.ValidateTimeAllocation),
		criterio.Run("tui.theme", c.TUI.Theme, oneOf(styles.ThemeNames())),
	)
}

func notEmpty(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func oneOf(allowed []string) func(string) error {
	return func(s string) error {
		if !slices.Contains(allowed, s) {
			return fmt.Errorf("must be one of %v, got %q", allowed, s)
		}
		return nil
	}
}

func atLeast(n int) func(int) error {
	return func(v int) error {
		if v < n {
			return fmt.Errorf("must be at least %d", n)
		}
		return nil
	}
}

func validPriority(s string) error {
	_, err := task.ParsePriority(s)
	return err
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
