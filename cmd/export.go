package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitrina-piezas/catalog/internal/export"
	"github.com/vitrina-piezas/catalog/internal/scanner"
)

func newExportCmd() *cobra.Command {
	var flags catalogFlags
	var outDir string
	var webDir string
	var maxWidth int
	var withYAML bool
	var withParquet bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as a static site",
		Long: `Scans the catalog and writes a static copy that needs no server.

The output directory is recreated and receives products.json, config.json,
the storefront page switched to static mode, and a copy of every category
and product folder. Image paths in the exported documents are relative so
the site can be hosted below a sub-path (for example GitHub Pages).`,
		Example: `  # Export to ./docs
  catalog export

  # Export with a parquet dump and images downsized to 1600px
  catalog export --out ./site --parquet --max-width 1600`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := flags.settings()
			if maxWidth < 0 {
				return fmt.Errorf("--max-width must not be negative")
			}

			// The output directory is wiped, so it must not hold the catalog
			if rel, err := relative(outDir, settings.Root); err == nil && !strings.HasPrefix(rel, "..") {
				return fmt.Errorf("output directory %s contains the catalog root", outDir)
			}

			// Only the output folder itself is left out of the scan, never
			// the category it sits in
			ignore := flags.ignoreList()
			var scanOpts []scanner.Option
			if inside(settings.Root, outDir) {
				rel, _ := relative(settings.Root, outDir)
				scanOpts = append(scanOpts, scanner.WithSkip(filepath.ToSlash(rel)))
			}

			snap, err := loadSnapshot(settings, ignore, scanOpts...)
			if err != nil {
				return fmt.Errorf("failed to scan catalog: %w", err)
			}

			summary, err := export.Run(snap.Records, snap.Config, export.Options{
				Root:     settings.Root,
				OutDir:   outDir,
				WebDir:   webDir,
				Ignore:   ignore,
				MaxWidth: maxWidth,
				YAML:     withYAML,
				Parquet:  withParquet,
			})
			if err != nil {
				return fmt.Errorf("failed to export catalog: %w", err)
			}

			slog.Info("Export finished", "out", outDir)
			fmt.Fprintf(cmd.OutOrStdout(), "Export written to %s: %s\n", outDir, summary)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outDir, "out", "o", "docs", "Output directory (recreated on every run)")
	cmd.Flags().StringVar(&webDir, "web", "", "Directory with index.html, styles.css and script.js (default the catalog root)")
	cmd.Flags().IntVar(&maxWidth, "max-width", 0, "Downsize JPEG/PNG images wider than this many pixels (0 keeps originals)")
	cmd.Flags().BoolVar(&withYAML, "yaml", false, "Also write products.yaml")
	cmd.Flags().BoolVar(&withParquet, "parquet", false, "Also write products.parquet")

	return cmd
}

// inside reports whether dir lies within root.
func inside(root, dir string) bool {
	rel, err := relative(root, dir)
	return err == nil && rel != "." && !strings.HasPrefix(rel, "..")
}

func relative(root, dir string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return filepath.Rel(absRoot, absDir)
}
