// Package scanner turns a catalog folder tree into product records.
//
// The tree is read through an fs.FS rooted at the catalog directory, so
// every image and model path in the output is relative to that root and
// slash-separated. fs.ReadDir returns entries sorted by name, which makes
// traversal order, category order and the "Standard" image of a gallery
// product deterministic.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"github.com/vitrina-piezas/catalog/internal/models"
	"github.com/vitrina-piezas/catalog/internal/naming"
)

// RootCategory labels products that sit directly under the catalog root.
const RootCategory = "General"

// CategorySeparator joins nested category folder names.
const CategorySeparator = " / "

// Scanner walks one catalog tree with one configuration snapshot.
// A Scanner holds no state between calls to Scan.
type Scanner struct {
	fsys   fs.FS
	cfg    models.Config
	ignore naming.IgnoreList
	skip   map[string]bool
	logger *slog.Logger
	newID  func() string
}

// Option customizes a Scanner.
type Option func(*Scanner)

// WithIgnore replaces the root-level ignore list.
func WithIgnore(ignore naming.IgnoreList) Option {
	return func(s *Scanner) { s.ignore = ignore }
}

// WithSkip excludes folders at any depth, given as slash-separated paths
// relative to the root.
func WithSkip(paths ...string) Option {
	return func(s *Scanner) {
		if s.skip == nil {
			s.skip = make(map[string]bool)
		}
		for _, p := range paths {
			s.skip[path.Clean(p)] = true
		}
	}
}

// WithLogger sets the logger used for progress and recovered errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) { s.logger = logger }
}

// WithIDGenerator sets the id source for plain and variant records.
func WithIDGenerator(fn func() string) Option {
	return func(s *Scanner) { s.newID = fn }
}

// New creates a scanner over fsys.
func New(fsys fs.FS, cfg models.Config, opts ...Option) *Scanner {
	s := &Scanner{
		fsys:   fsys,
		cfg:    cfg,
		ignore: naming.DefaultIgnore(),
		logger: slog.Default(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan walks the whole tree depth-first and returns the records in
// traversal order. A missing root yields an empty catalog; the only error
// is a root that exists but cannot be listed.
func (s *Scanner) Scan() ([]models.ProductRecord, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Catalog root not found, returning empty catalog")
			return []models.ProductRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read catalog root: %w", err)
	}

	s.logger.Debug("Scanning catalog root", "entries", len(entries))
	records := s.scanEntries(".", "", entries, s.ignore)
	if records == nil {
		records = []models.ProductRecord{}
	}
	uniqueIDs(records)
	return records, nil
}

func (s *Scanner) scanDir(dir, category string) []models.ProductRecord {
	entries, err := fs.ReadDir(s.fsys, dir)
	if err != nil {
		s.logger.Warn("Skipping unreadable folder", "path", dir, "err", err)
		return nil
	}
	return s.scanEntries(dir, category, entries, nil)
}

// scanEntries returns the records below the given entries. The ignore list
// only applies to the root level.
func (s *Scanner) scanEntries(dir, category string, entries []fs.DirEntry, ignore naming.IgnoreList) []models.ProductRecord {
	var records []models.ProductRecord
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		p := path.Join(dir, name)
		if s.skip[p] {
			s.logger.Debug("Skipping folder", "path", p)
			continue
		}

		switch naming.Classify(name, ignore) {
		case naming.Ignored:
			s.logger.Debug("Ignoring folder", "name", name)
		case naming.Product:
			records = append(records, s.assemble(p, name, category)...)
		default:
			sub := joinCategory(category, name)
			s.logger.Debug("Scanning category", "category", sub)
			records = append(records, s.scanDir(p, sub)...)
		}
	}
	return records
}

func joinCategory(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + CategorySeparator + name
}

func categoryLabel(category string) string {
	if category == "" {
		return RootCategory
	}
	return category
}
