// Package export writes a static copy of the catalog that can be hosted
// without the catalog server: the product and config documents, the
// storefront page switched to static mode, and the product folders.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/vitrina-piezas/catalog/internal/models"
	"github.com/vitrina-piezas/catalog/internal/naming"
)

const (
	ProductsJSON    = "products.json"
	ProductsYAML    = "products.yaml"
	ProductsParquet = "products.parquet"
	ConfigJSON      = "config.json"
)

// Options controls what Run writes.
type Options struct {
	// Root is the catalog directory the records were scanned from.
	Root string
	// OutDir is recreated from scratch on every run.
	OutDir string
	// WebDir holds index.html, styles.css and script.js; defaults to Root.
	WebDir string
	// Ignore lists root entries that are not product or category folders.
	Ignore naming.IgnoreList
	// MaxWidth downsizes JPEG and PNG images wider than this; 0 copies as-is.
	MaxWidth int
	YAML     bool
	Parquet  bool
}

// Summary reports what an export produced.
type Summary struct {
	Products int
	Folders  int
	Images   int
	Models   int
	Resized  int
	Bytes    int64
}

func (s Summary) String() string {
	return fmt.Sprintf("%d product(s), %d folder(s) with %d image(s) and %d model(s), %s written",
		s.Products, s.Folders, s.Images, s.Models, humanize.Bytes(uint64(s.Bytes)))
}

// Run writes the export for records and cfg into opts.OutDir.
func Run(records []models.ProductRecord, cfg models.Config, opts Options) (*Summary, error) {
	if opts.OutDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if opts.WebDir == "" {
		opts.WebDir = opts.Root
	}

	if err := os.RemoveAll(opts.OutDir); err != nil {
		return nil, fmt.Errorf("failed to clean output directory: %w", err)
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	summary := &Summary{Products: len(records)}
	relative := RelativePaths(records)

	if err := writeJSON(filepath.Join(opts.OutDir, ProductsJSON), relative, summary); err != nil {
		return nil, err
	}
	configDoc, err := cfg.Document()
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := writeJSON(filepath.Join(opts.OutDir, ConfigJSON), configDoc, summary); err != nil {
		return nil, err
	}
	slog.Info("Wrote catalog documents", "products", len(records), "dir", opts.OutDir)

	if opts.YAML {
		data, err := yaml.Marshal(relative)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		if err := writeFile(filepath.Join(opts.OutDir, ProductsYAML), data, summary); err != nil {
			return nil, err
		}
	}

	if opts.Parquet {
		if err := writeParquetFile(filepath.Join(opts.OutDir, ProductsParquet), relative, summary); err != nil {
			return nil, err
		}
	}

	if err := copyWebAssets(opts.WebDir, opts.OutDir, summary); err != nil {
		return nil, err
	}

	if err := copyCatalogFolders(opts, summary); err != nil {
		return nil, err
	}

	return summary, nil
}

// RelativePaths strips leading slashes so that the static site works when
// hosted below a sub-path.
func RelativePaths(records []models.ProductRecord) []models.ProductRecord {
	out := make([]models.ProductRecord, 0, len(records))
	for _, r := range records {
		out = append(out, r.MapPaths(func(p string) string {
			return strings.TrimLeft(p, "/")
		}))
	}
	return out
}

func writeJSON(path string, v interface{}, summary *Summary) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, data, summary)
}

func writeFile(path string, data []byte, summary *Summary) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	summary.Bytes += int64(len(data))
	return nil
}
