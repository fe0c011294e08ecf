package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vitrina-piezas/catalog/internal/config"
	"github.com/vitrina-piezas/catalog/internal/metrics"
	"github.com/vitrina-piezas/catalog/internal/naming"
	"github.com/vitrina-piezas/catalog/internal/scanner"
	"github.com/vitrina-piezas/catalog/internal/storage"
)

// catalogFlags are shared by every command that scans a catalog.
type catalogFlags struct {
	root       string
	configPath string
	ignore     []string
}

func (f *catalogFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.root, "root", "r", "", "Catalog root directory (default $CATALOG_ROOT or .)")
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Catalog config file (default $CATALOG_CONFIG or config.json/config.yaml in the root)")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "Extra root-level folder names to skip")
}

// settings merges flags over the environment.
func (f *catalogFlags) settings() config.Settings {
	s := config.FromEnv()
	if f.root != "" {
		s.Root = f.root
	}
	if f.configPath != "" {
		s.ConfigPath = f.configPath
	}
	return s
}

func (f *catalogFlags) ignoreList(extra ...string) naming.IgnoreList {
	return naming.DefaultIgnore().With(f.ignore...).With(extra...)
}

// loadSnapshot reads the config and scans the tree once.
func loadSnapshot(s config.Settings, ignore naming.IgnoreList, opts ...scanner.Option) (*storage.Snapshot, error) {
	start := time.Now()
	cfg := config.Load(s.ResolveConfigPath())

	opts = append([]scanner.Option{scanner.WithIgnore(ignore)}, opts...)
	records, err := scanner.New(os.DirFS(s.Root), cfg, opts...).Scan()
	metrics.RecordScan(start, len(records), err)
	if err != nil {
		return nil, err
	}

	return &storage.Snapshot{
		Records:   records,
		Config:    cfg,
		ScannedAt: time.Now(),
	}, nil
}
