package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/homegrid/internal/pin"
)

// layoutVersion is the layout document version this build writes.
const layoutVersion = 1

// layoutDoc is the YAML form of a grid layout.
type layoutDoc struct {
	Version int           `yaml:"version"`
	Items   []layoutEntry `yaml:"items"`
}

// layoutEntry is one item. Row and column are optional; entries without
// them are placed like a legacy record.
type layoutEntry struct {
	Kind   pin.Kind       `yaml:"kind"`
	ID     string         `yaml:"id,omitempty"`
	Row    *int           `yaml:"row,omitempty"`
	Column *int           `yaml:"column,omitempty"`
	Fields map[string]any `yaml:",inline"`
}

func (a *App) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the grid layout as YAML",
		Long: `Write every pinned item and its cell as a YAML document.

Without a file the layout goes to stdout.

Example:
  homegrid export ~/homegrid-layout.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			items, err := a.repo.Items(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing items: %w", err)
			}
			data, err := exportLayout(items)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing layout: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", len(items), path)
			return nil
		},
	}
}

func (a *App) importCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a YAML grid layout",
		Long: `Pin the items of a layout written by "homegrid export".

Items already on the grid stay where they are. Entries without a cell, or
whose cell is taken, go to the first free cell. Use "-" to read stdin.

Example:
  homegrid import ~/homegrid-layout.yaml --replace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, source, err := readLayout(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}

			res, err := importLayout(cmd.Context(), a.repo, data, replace)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, w := range res.warnings {
				fmt.Fprintln(out, formatWarning(w))
			}
			fmt.Fprintf(out, "Imported %d of %d items from %s\n", res.added, res.total, source)
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Remove every pinned item first")

	return cmd
}

// exportLayout renders items as a layout document.
func exportLayout(items []pin.Item) ([]byte, error) {
	doc := layoutDoc{Version: layoutVersion, Items: make([]layoutEntry, 0, len(items))}
	for _, item := range items {
		row, col := item.Position().Row, item.Position().Column
		doc.Items = append(doc.Items, layoutEntry{
			Kind:   item.Kind(),
			ID:     item.ID(),
			Row:    &row,
			Column: &col,
			Fields: pin.Fields(item),
		})
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding layout: %w", err)
	}
	return data, nil
}

// parseLayout decodes a layout document. Entries whose id does not match
// the id derived from their fields keep the derived id and yield a warning.
func parseLayout(data []byte) ([]pin.Item, []string, error) {
	var doc layoutDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("decoding layout: %w", err)
	}
	if doc.Version > layoutVersion {
		return nil, nil, fmt.Errorf("layout version %d is newer than supported version %d", doc.Version, layoutVersion)
	}

	var warnings []string
	items := make([]pin.Item, 0, len(doc.Items))
	for i, entry := range doc.Items {
		fields := make(map[string]any, len(entry.Fields)+2)
		for k, v := range entry.Fields {
			fields[k] = v
		}
		if entry.Row != nil && entry.Column != nil {
			fields[pin.FieldRow] = *entry.Row
			fields[pin.FieldColumn] = *entry.Column
		}

		item, _, err := pin.DecodeMap(entry.Kind, fields)
		if err != nil {
			return nil, nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		if entry.ID != "" && entry.ID != item.ID() {
			warnings = append(warnings, fmt.Sprintf("item %d: id %s does not match its fields, using %s", i+1, entry.ID, item.ID()))
		}
		items = append(items, item)
	}
	return items, warnings, nil
}

type importResult struct {
	total    int
	added    int
	warnings []string
}

func importLayout(ctx context.Context, repo pin.Repository, data []byte, replace bool) (importResult, error) {
	items, warnings, err := parseLayout(data)
	if err != nil {
		return importResult{}, err
	}
	res := importResult{total: len(items), warnings: warnings}

	if replace {
		if err := repo.ClearAll(ctx); err != nil {
			return res, fmt.Errorf("clearing items: %w", err)
		}
	}
	if len(items) == 0 {
		return res, nil
	}

	added, err := pinAll(ctx, repo, items)
	if err != nil {
		return res, fmt.Errorf("importing items: %w", err)
	}
	res.added = len(added)
	return res, nil
}

// batchRepository is implemented by stores that pin many items in one
// transaction.
type batchRepository interface {
	AddPinnedItems(ctx context.Context, items []pin.Item) ([]pin.Item, error)
}

func pinAll(ctx context.Context, repo pin.Repository, items []pin.Item) ([]pin.Item, error) {
	if batch, ok := repo.(batchRepository); ok {
		return batch.AddPinnedItems(ctx, items)
	}

	board, err := repo.Board(ctx)
	if err != nil {
		return nil, err
	}
	var added []pin.Item
	for _, item := range items {
		if _, ok := board.Find(item.ID()); ok {
			continue
		}
		stored, err := repo.AddPinnedItem(ctx, item)
		if err != nil {
			return added, err
		}
		added = append(added, stored)
	}
	return added, nil
}

func readLayout(stdin io.Reader, arg string) ([]byte, string, error) {
	if arg == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		return data, "stdin", nil
	}

	path, err := resolvePath(arg)
	if err != nil {
		return nil, "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("layout file does not exist: %s", path)
		}
		return nil, "", fmt.Errorf("checking layout file: %w", err)
	}
	if info.IsDir() {
		return nil, "", fmt.Errorf("layout path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading layout: %w", err)
	}
	return data, path, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
