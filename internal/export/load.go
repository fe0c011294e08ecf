package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/vitrina-piezas/catalog/internal/models"
)

// LoadProducts reads a products document written by Run. The format is
// picked from the extension: .parquet, .json, .yaml or .yml.
func LoadProducts(path string) ([]models.ProductRecord, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".parquet":
		return loadParquet(path)
	case ".json":
		return loadDocument(path, json.Unmarshal)
	case ".yaml", ".yml":
		return loadDocument(path, yaml.Unmarshal)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .parquet, .json, .yaml)", ext)
	}
}

func loadDocument(path string, unmarshal func([]byte, interface{}) error) ([]models.ProductRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []models.ProductRecord
	if err := unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

func loadParquet(path string) ([]models.ProductRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}
	slog.Debug("Parquet file opened", "path", path, "num_rows", pf.NumRows())

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	var records []models.ProductRecord
	rows := make([]Row, 128)
	for {
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			record, convErr := row.Record()
			if convErr != nil {
				return nil, convErr
			}
			records = append(records, record)
		}
		if err != nil {
			break
		}
	}
	return records, nil
}

// Record rebuilds the product record a row was flattened from.
func (row Row) Record() (models.ProductRecord, error) {
	typ, ok := models.ParseProductType(row.Type)
	if !ok {
		return models.ProductRecord{}, fmt.Errorf("row %s: unknown product type %q", row.ID, row.Type)
	}

	r := models.ProductRecord{
		ID:           row.ID,
		Name:         row.Name,
		Type:         typ,
		TypeName:     row.TypeName,
		Category:     row.Category,
		Price:        int(row.Price),
		Description:  row.Description,
		Specs:        nonNil(row.Specs),
		Pieces:       int(row.Pieces),
		BuildHours:   int(row.BuildHours),
		Images:       nonNil(row.Images),
		MainImage:    row.MainImage,
		GLBFile:      row.GLBFile,
		VariableName: row.VariableName,
		Variant:      models.Simple{},
	}
	if row.CustomPrice != nil {
		price := int(*row.CustomPrice)
		r.CustomPrice = &price
	}

	switch {
	case row.ParentProduct != nil && row.TotalVariants > 0:
		r.Variant = models.ImageVariantGroup{ParentProduct: *row.ParentProduct, AllVariants: row.AllVariants}
	case row.ParentProduct != nil:
		r.Variant = models.VariantOf{ParentProduct: *row.ParentProduct}
	}
	return r, nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
