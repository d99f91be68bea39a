package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/homegrid/internal/config"
	"github.com/javiermolinar/homegrid/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var schema bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.
A running home screen picks up saved changes.

Example:
  homegrid config
  homegrid config --schema > homegrid.schema.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if schema {
				data, err := config.GenerateSchema()
				if err != nil {
					return fmt.Errorf("generating schema: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), a.configPath)
		},
	}

	cmd.Flags().BoolVar(&schema, "schema", false, "Print the JSON Schema of the config file")

	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(out, cfg)

	reader := bufio.NewReader(in)

	// Ask if user wants to edit
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	g := &cfg.Grid
	g.Columns = promptInt(reader, out, "Columns", g.Columns)
	g.ExtraRows = promptInt(reader, out, "Extra rows below the last item", g.ExtraRows)
	g.MaxRows = promptInt(reader, out, "Max rows", g.MaxRows)
	g.LongPressMs = promptInt(reader, out, "Long press (ms)", g.LongPressMs)
	g.DragThresholdPx = promptFloat(reader, out, "Drag threshold (px)", g.DragThresholdPx)
	g.TouchSlopPx = promptFloat(reader, out, "Touch slop (px)", g.TouchSlopPx)
	g.CellWidth = promptInt(reader, out, "Cell width (columns)", g.CellWidth)
	g.CellHeight = promptInt(reader, out, "Cell height (lines)", g.CellHeight)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
	cfg.Log.Level = promptValue(reader, out, "Log level", cfg.Log.Level)
	cfg.Log.File = promptValue(reader, out, "Log file (empty to disable)", cfg.Log.File)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	g := cfg.Grid
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[grid]")
	fmt.Fprintf(out, "  columns           = %d\n", g.Columns)
	fmt.Fprintf(out, "  extra_rows        = %d\n", g.ExtraRows)
	fmt.Fprintf(out, "  max_rows          = %d\n", g.MaxRows)
	fmt.Fprintf(out, "  long_press_ms     = %d\n", g.LongPressMs)
	fmt.Fprintf(out, "  drag_threshold_px = %g\n", g.DragThresholdPx)
	fmt.Fprintf(out, "  touch_slop_px     = %g\n", g.TouchSlopPx)
	fmt.Fprintf(out, "  cell_width        = %d\n", g.CellWidth)
	fmt.Fprintf(out, "  cell_height       = %d\n", g.CellHeight)
	fmt.Fprintf(out, "  drag_scale        = %g\n", g.DragScale)
	fmt.Fprintf(out, "  drag_alpha        = %g\n", g.DragAlpha)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path           = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme             = %s\n", cfg.UI.Theme)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level             = %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "  format            = %s\n", cfg.Log.Format)
	if cfg.Log.File != "" {
		fmt.Fprintf(out, "  file              = %s\n", cfg.Log.File)
	}
}

func promptYesNo(in io.Reader, out io.Writer, question string) bool {
	reader, ok := in.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(in)
	}
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptFloat(reader *bufio.Reader, out io.Writer, label string, current float64) float64 {
	currentStr := strconv.FormatFloat(current, 'g', -1, 64)
	for {
		value := promptValue(reader, out, label, currentStr)
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
		if value == current {
			return value
		}
	}
}
