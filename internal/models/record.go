package models

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Variant tags how a record relates to its product folder.
// It is one of Simple, VariantOf or ImageVariantGroup.
type Variant interface {
	isVariant()
}

// Simple is a product folder without variants.
type Simple struct{}

// VariantOf is one priced variant subfolder of a product folder.
type VariantOf struct {
	ParentProduct string
}

// ImageVariantGroup is the single listing record of a gallery product;
// AllVariants holds every image of the folder, the first being "Standard".
type ImageVariantGroup struct {
	ParentProduct string
	AllVariants   []string
}

func (Simple) isVariant()            {}
func (VariantOf) isVariant()         {}
func (ImageVariantGroup) isVariant() {}

// ProductRecord is one sellable entry of the catalog.
type ProductRecord struct {
	ID           string
	Name         string
	Type         ProductType
	TypeName     string
	Category     string
	Price        int
	Description  string
	Specs        []string
	Pieces       int
	BuildHours   int
	Images       []string
	MainImage    *string
	GLBFile      *string
	VariableName *string
	CustomPrice  *int
	Variant      Variant
}

// IsVariable reports whether the record stands for a variant of its folder.
func (r ProductRecord) IsVariable() bool {
	switch r.Variant.(type) {
	case VariantOf, ImageVariantGroup:
		return true
	default:
		return false
	}
}

// ParentProduct returns the raw folder name of the parent product, if any.
func (r ProductRecord) ParentProduct() (string, bool) {
	switch v := r.Variant.(type) {
	case VariantOf:
		return v.ParentProduct, true
	case ImageVariantGroup:
		return v.ParentProduct, true
	default:
		return "", false
	}
}

// AllVariants returns the gallery of an image variant group.
func (r ProductRecord) AllVariants() ([]string, bool) {
	if g, ok := r.Variant.(ImageVariantGroup); ok {
		return g.AllVariants, true
	}
	return nil, false
}

// MapPaths returns a copy of r with every image and model path passed through fn.
func (r ProductRecord) MapPaths(fn func(string) string) ProductRecord {
	out := r
	out.Images = mapStrings(r.Images, fn)
	out.MainImage = mapOptional(r.MainImage, fn)
	out.GLBFile = mapOptional(r.GLBFile, fn)
	if g, ok := r.Variant.(ImageVariantGroup); ok {
		out.Variant = ImageVariantGroup{
			ParentProduct: g.ParentProduct,
			AllVariants:   mapStrings(g.AllVariants, fn),
		}
	}
	return out
}

func mapStrings(in []string, fn func(string) string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fn(s)
	}
	return out
}

func mapOptional(s *string, fn func(string) string) *string {
	if s == nil {
		return nil
	}
	v := fn(*s)
	return &v
}

// recordDocument is the flat wire shape shared by the JSON and YAML encodings.
type recordDocument struct {
	ID            string      `json:"id" yaml:"id"`
	Name          string      `json:"name" yaml:"name"`
	Type          ProductType `json:"type" yaml:"type"`
	TypeName      string      `json:"typeName" yaml:"typeName"`
	Category      string      `json:"category" yaml:"category"`
	Price         int         `json:"price" yaml:"price"`
	Description   string      `json:"description" yaml:"description"`
	Specs         []string    `json:"specs" yaml:"specs"`
	Pieces        int         `json:"pieces" yaml:"pieces"`
	BuildHours    int         `json:"buildHours" yaml:"buildHours"`
	Images        []string    `json:"images" yaml:"images"`
	MainImage     *string     `json:"mainImage" yaml:"mainImage"`
	IsVariable    bool        `json:"isVariable" yaml:"isVariable"`
	VariableName  *string     `json:"variableName" yaml:"variableName"`
	CustomPrice   *int        `json:"customPrice" yaml:"customPrice"`
	ParentProduct *string     `json:"parentProduct,omitempty" yaml:"parentProduct,omitempty"`
	AllVariants   []string    `json:"allVariants,omitempty" yaml:"allVariants,omitempty"`
	TotalVariants *int        `json:"totalVariants,omitempty" yaml:"totalVariants,omitempty"`
	GLBFile       *string     `json:"glbFile" yaml:"glbFile"`
}

func (r ProductRecord) document() recordDocument {
	doc := recordDocument{
		ID:           r.ID,
		Name:         r.Name,
		Type:         r.Type,
		TypeName:     r.TypeName,
		Category:     r.Category,
		Price:        r.Price,
		Description:  r.Description,
		Specs:        nonNil(r.Specs),
		Pieces:       r.Pieces,
		BuildHours:   r.BuildHours,
		Images:       nonNil(r.Images),
		MainImage:    r.MainImage,
		IsVariable:   r.IsVariable(),
		VariableName: r.VariableName,
		CustomPrice:  r.CustomPrice,
		GLBFile:      r.GLBFile,
	}
	if parent, ok := r.ParentProduct(); ok {
		doc.ParentProduct = &parent
	}
	if all, ok := r.AllVariants(); ok {
		total := len(all)
		doc.AllVariants = nonNil(all)
		doc.TotalVariants = &total
	}
	return doc
}

func (d recordDocument) record() ProductRecord {
	r := ProductRecord{
		ID:           d.ID,
		Name:         d.Name,
		Type:         d.Type,
		TypeName:     d.TypeName,
		Category:     d.Category,
		Price:        d.Price,
		Description:  d.Description,
		Specs:        d.Specs,
		Pieces:       d.Pieces,
		BuildHours:   d.BuildHours,
		Images:       d.Images,
		MainImage:    d.MainImage,
		VariableName: d.VariableName,
		CustomPrice:  d.CustomPrice,
		GLBFile:      d.GLBFile,
		Variant:      Simple{},
	}
	switch {
	case d.TotalVariants != nil && d.ParentProduct != nil:
		r.Variant = ImageVariantGroup{ParentProduct: *d.ParentProduct, AllVariants: d.AllVariants}
	case d.ParentProduct != nil:
		r.Variant = VariantOf{ParentProduct: *d.ParentProduct}
	}
	return r
}

func (r ProductRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.document())
}

func (r *ProductRecord) UnmarshalJSON(data []byte) error {
	var doc recordDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*r = doc.record()
	return nil
}

func (r ProductRecord) MarshalYAML() (interface{}, error) {
	return r.document(), nil
}

func (r *ProductRecord) UnmarshalYAML(value *yaml.Node) error {
	var doc recordDocument
	if err := value.Decode(&doc); err != nil {
		return err
	}
	*r = doc.record()
	return nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
