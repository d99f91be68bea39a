// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/homegrid/internal/grid"
)

// Config holds the application configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// GridConfig holds the home grid layout and gesture settings.
type GridConfig struct {
	Columns         int     `toml:"columns"`
	ExtraRows       int     `toml:"extra_rows"`        // empty rows drawn below the last item
	MaxRows         int     `toml:"max_rows"`          // addressable rows
	DragThresholdPx float64 `toml:"drag_threshold_px"` // movement that turns a long press into a drag
	LongPressMs     int     `toml:"long_press_ms"`
	TouchSlopPx     float64 `toml:"touch_slop_px"` // movement that turns a press into a pan
	CellWidth       int     `toml:"cell_width"`    // terminal columns per grid cell
	CellHeight      int     `toml:"cell_height"`   // terminal lines per grid cell
	DragScale       float64 `toml:"drag_scale"`
	DragAlpha       float64 `toml:"drag_alpha"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`  // logrus level name
	Format string `toml:"format"` // "text" or "json"
	File   string `toml:"file"`   // empty discards logs
}

// Default returns the default configuration.
func Default() *Config {
	g := grid.DefaultConfig()
	return &Config{
		Grid: GridConfig{
			Columns:         g.Columns,
			ExtraRows:       g.ExtraRows,
			MaxRows:         g.MaxRows,
			DragThresholdPx: g.DragThreshold,
			LongPressMs:     int(g.LongPress / time.Millisecond),
			TouchSlopPx:     g.TouchSlop,
			CellWidth:       14,
			CellHeight:      4,
			DragScale:       g.DragScale,
			DragAlpha:       g.DragAlpha,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Layout returns the grid configuration used by the placement and gesture
// logic.
func (g GridConfig) Layout() grid.Config {
	return grid.Config{
		Columns:       g.Columns,
		ExtraRows:     g.ExtraRows,
		MaxRows:       g.MaxRows,
		DragThreshold: g.DragThresholdPx,
		TouchSlop:     g.TouchSlopPx,
		LongPress:     time.Duration(g.LongPressMs) * time.Millisecond,
		DragScale:     g.DragScale,
		DragAlpha:     g.DragAlpha,
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "homegrid.db"
	}
	return filepath.Join(home, ".local", "share", "homegrid", "homegrid.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "homegrid", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	ints := []struct {
		env string
		dst *int
	}{
		{"HOMEGRID_COLUMNS", &cfg.Grid.Columns},
		{"HOMEGRID_EXTRA_ROWS", &cfg.Grid.ExtraRows},
		{"HOMEGRID_MAX_ROWS", &cfg.Grid.MaxRows},
		{"HOMEGRID_LONG_PRESS_MS", &cfg.Grid.LongPressMs},
	}
	for _, o := range ints {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", o.env, err)
		}
		*o.dst = n
	}

	if v := os.Getenv("HOMEGRID_DRAG_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("parsing HOMEGRID_DRAG_THRESHOLD: %w", err)
		}
		cfg.Grid.DragThresholdPx = f
	}

	// Storage overrides
	if v := os.Getenv("HOMEGRID_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// UI overrides
	if v := os.Getenv("HOMEGRID_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	// Log overrides
	if v := os.Getenv("HOMEGRID_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HOMEGRID_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// MaxColumns bounds the column count.
const MaxColumns = 12

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	g := c.Grid
	if g.Columns < 1 || g.Columns > MaxColumns {
		return fmt.Errorf("columns must be between 1 and %d, got %d", MaxColumns, g.Columns)
	}
	if g.ExtraRows < 0 {
		return fmt.Errorf("extra_rows cannot be negative, got %d", g.ExtraRows)
	}
	if g.MaxRows < 1 {
		return fmt.Errorf("max_rows must be positive, got %d", g.MaxRows)
	}
	if g.DragThresholdPx <= 0 {
		return fmt.Errorf("drag_threshold_px must be positive, got %v", g.DragThresholdPx)
	}
	if g.LongPressMs <= 0 {
		return fmt.Errorf("long_press_ms must be positive, got %d", g.LongPressMs)
	}
	if g.TouchSlopPx < 0 {
		return fmt.Errorf("touch_slop_px cannot be negative, got %v", g.TouchSlopPx)
	}
	if g.CellWidth < 4 || g.CellHeight < 2 {
		return fmt.Errorf("cell size must be at least 4x2, got %dx%d", g.CellWidth, g.CellHeight)
	}
	if g.DragScale <= 0 {
		return fmt.Errorf("drag_scale must be positive, got %v", g.DragScale)
	}
	if g.DragAlpha <= 0 || g.DragAlpha > 1 {
		return fmt.Errorf("drag_alpha must be in (0, 1], got %v", g.DragAlpha)
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
