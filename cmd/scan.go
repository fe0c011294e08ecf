package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vitrina-piezas/catalog/internal/models"
	"github.com/vitrina-piezas/catalog/internal/scanner"
)

func newScanCmd() *cobra.Command {
	var flags catalogFlags
	var format string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the catalog tree and print the products",
		Long: `Scans the catalog folder tree and prints the resulting products.

The text format groups products by category with price, piece count,
build hours and image counts. The json and yaml formats print the full
product records.`,
		Example: `  # Summary of the catalog in the current directory
  catalog scan

  # Full records as JSON
  catalog scan --root ./tienda --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := flags.settings()
			slog.Info("Scanning catalog", "root", settings.Root)

			snap, err := loadSnapshot(settings, flags.ignoreList())
			if err != nil {
				return fmt.Errorf("failed to scan catalog: %w", err)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				printSummary(out, snap.Records)
				return nil
			case "json":
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(snap.Records)
			case "yaml":
				encoder := yaml.NewEncoder(out)
				defer encoder.Close()
				return encoder.Encode(snap.Records)
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json or yaml)")

	return cmd
}

func printSummary(w io.Writer, records []models.ProductRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}

	fmt.Fprintf(w, "Found %d products:\n", len(records))
	for _, group := range scanner.Summarize(records) {
		fmt.Fprintf(w, "\n  %s:\n", group.Category)
		for _, p := range group.Records {
			variant := ""
			if p.IsVariable() && p.VariableName != nil {
				variant = fmt.Sprintf(" [%s]", *p.VariableName)
			}
			fmt.Fprintf(w, "    • %s: $%d (%d piezas, %dh)%s\n", p.Name, p.Price, p.Pieces, p.BuildHours, variant)

			if all, ok := p.AllVariants(); ok {
				fmt.Fprintf(w, "      Variantes: %d imágenes\n", len(all))
			} else if len(p.Images) > 0 {
				fmt.Fprintf(w, "      Imágenes: %d\n", len(p.Images))
			} else {
				fmt.Fprintln(w, "      Imágenes: ninguna")
			}
		}
	}
}
