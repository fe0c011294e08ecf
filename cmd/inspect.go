package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitrina-piezas/catalog/internal/export"
	"github.com/vitrina-piezas/catalog/internal/models"
)

func newInspectCmd() *cobra.Command {
	var limit int
	var category string

	cmd := &cobra.Command{
		Use:   "inspect <products file>",
		Short: "Inspect an exported products document",
		Long: `Prints the records of a products.json, products.yaml or products.parquet
file written by the export command, one block per record.`,
		Example: `  # First 5 records of an export
  catalog inspect docs/products.parquet --limit 5

  # Only one category
  catalog inspect docs/products.json --category "Figuras / Grandes"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := export.LoadProducts(args[0])
			if err != nil {
				return fmt.Errorf("failed to load products: %w", err)
			}

			if category != "" {
				filtered := records[:0]
				for _, r := range records {
					if r.Category == category {
						filtered = append(filtered, r)
					}
				}
				records = filtered
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loaded %d records from %s\n", len(records), args[0])
			fmt.Fprintln(out, strings.Repeat("=", 80))

			for i, r := range records {
				if limit > 0 && i >= limit {
					break
				}
				printRecord(out, i+1, len(records), r)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of records to print (0 for all)")
	cmd.Flags().StringVar(&category, "category", "", "Only print records of this category")

	return cmd
}

func printRecord(w io.Writer, n, total int, r models.ProductRecord) {
	fmt.Fprintf(w, "RECORD %d/%d\n", n, total)
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintf(w, "ID:          %s\n", r.ID)
	fmt.Fprintf(w, "Name:        %s\n", r.Name)
	fmt.Fprintf(w, "Type:        %s (%s)\n", r.Type.Code(), r.TypeName)
	fmt.Fprintf(w, "Category:    %s\n", r.Category)
	fmt.Fprintf(w, "Price:       %d\n", r.Price)
	fmt.Fprintf(w, "Pieces:      %d (%dh)\n", r.Pieces, r.BuildHours)
	if r.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", r.Description)
	}
	for _, spec := range r.Specs {
		fmt.Fprintf(w, "Spec:        %s\n", spec)
	}
	if parent, ok := r.ParentProduct(); ok {
		fmt.Fprintf(w, "Parent:      %s\n", parent)
	}
	if r.VariableName != nil {
		fmt.Fprintf(w, "Variant:     %s\n", *r.VariableName)
	}
	if all, ok := r.AllVariants(); ok {
		fmt.Fprintf(w, "Gallery:     %s\n", strings.Join(all, ", "))
	} else {
		fmt.Fprintf(w, "Images:      %s\n", strings.Join(r.Images, ", "))
	}
	if r.GLBFile != nil {
		fmt.Fprintf(w, "Model:       %s\n", *r.GLBFile)
	}
	fmt.Fprintln(w)
}
