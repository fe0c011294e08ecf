package export

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/vitrina-piezas/catalog/internal/models"
)

// Row is the flat columnar shape of a product record.
type Row struct {
	ID            string   `parquet:"id"`
	Name          string   `parquet:"name"`
	Type          string   `parquet:"type"`
	TypeName      string   `parquet:"type_name"`
	Category      string   `parquet:"category"`
	Price         int64    `parquet:"price"`
	Description   string   `parquet:"description"`
	Specs         []string `parquet:"specs,list"`
	Pieces        int64    `parquet:"pieces"`
	BuildHours    int64    `parquet:"build_hours"`
	Images        []string `parquet:"images,list"`
	MainImage     *string  `parquet:"main_image,optional"`
	IsVariable    bool     `parquet:"is_variable"`
	VariableName  *string  `parquet:"variable_name,optional"`
	CustomPrice   *int64   `parquet:"custom_price,optional"`
	ParentProduct *string  `parquet:"parent_product,optional"`
	AllVariants   []string `parquet:"all_variants,list"`
	TotalVariants int64    `parquet:"total_variants"`
	GLBFile       *string  `parquet:"glb_file,optional"`
}

// NewRow flattens a record.
func NewRow(r models.ProductRecord) Row {
	row := Row{
		ID:           r.ID,
		Name:         r.Name,
		Type:         r.Type.Code(),
		TypeName:     r.TypeName,
		Category:     r.Category,
		Price:        int64(r.Price),
		Description:  r.Description,
		Specs:        r.Specs,
		Pieces:       int64(r.Pieces),
		BuildHours:   int64(r.BuildHours),
		Images:       r.Images,
		MainImage:    r.MainImage,
		IsVariable:   r.IsVariable(),
		VariableName: r.VariableName,
		GLBFile:      r.GLBFile,
	}
	if r.CustomPrice != nil {
		price := int64(*r.CustomPrice)
		row.CustomPrice = &price
	}
	if parent, ok := r.ParentProduct(); ok {
		row.ParentProduct = &parent
	}
	if all, ok := r.AllVariants(); ok {
		row.AllVariants = all
		row.TotalVariants = int64(len(all))
	}
	return row
}

// WriteParquet encodes records as a single parquet file.
func WriteParquet(w io.Writer, records []models.ProductRecord) error {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, NewRow(r))
	}

	writer := parquet.NewGenericWriter[Row](w)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

func writeParquetFile(path string, records []models.ProductRecord, summary *Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	if err := WriteParquet(file, records); err != nil {
		return err
	}

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat parquet file: %w", err)
	}
	summary.Bytes += info.Size()
	return nil
}
