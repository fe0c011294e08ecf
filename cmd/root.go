package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Product catalog generator driven by folder names",
		Long: `Catalog turns a folder tree into a product catalog.

Folder names carry the product metadata: a leading type digit (1, 2 or 3)
marks a product, an optional "(N)" suffix sets the piece count, and
"Name(price)" subfolders inside a product declare priced variants. Every
other folder is a category.

The catalog can be printed, served as a JSON API next to the storefront,
exported as a static site and published to S3.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newPublishCmd())
	cmd.AddCommand(newInspectCmd())

	return cmd
}
