package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/javiermolinar/homegrid/internal/config"
	"github.com/javiermolinar/homegrid/internal/db"
	"github.com/javiermolinar/homegrid/internal/logging"
)

// ensureConfig writes cfg to path on first run so there is a file to edit
// and watch.
func ensureConfig(path string, cfg *config.Config) error {
	if path == "" {
		return nil
	}
	switch _, err := os.Stat(path); {
	case err == nil:
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("checking config path: %w", err)
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	logging.NewLogger("tui").WithField("path", path).Info("wrote default config")
	return nil
}

func openRepo(cfg *config.Config) (*db.SQLite, error) {
	if cfg.Storage.DBPath == "" {
		return nil, errors.New("db path is empty")
	}
	repo, err := db.New(cfg.Storage.DBPath,
		db.WithBounds(cfg.Grid.Columns, cfg.Grid.MaxRows),
		db.WithLogger(logging.NewLogger("db")),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}
