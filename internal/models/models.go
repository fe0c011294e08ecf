package models

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ProductType is the leading digit of a product folder name.
type ProductType int

const (
	// TypeKit products ("1") always display a price ending in 90 and can be
	// bought as a digital template only.
	TypeKit ProductType = iota + 1
	// TypeGallery products ("2") treat every image in the folder as a variant.
	TypeGallery
	// TypeStandard products ("3") are priced from the type table as-is.
	TypeStandard
)

// ProductTypes lists every type in code order.
var ProductTypes = []ProductType{TypeKit, TypeGallery, TypeStandard}

// Code returns the digit used in folder names and in the config table.
func (t ProductType) Code() string {
	switch t {
	case TypeGallery:
		return "2"
	case TypeStandard:
		return "3"
	default:
		return "1"
	}
}

func (t ProductType) String() string {
	switch t {
	case TypeKit:
		return "kit"
	case TypeGallery:
		return "gallery"
	case TypeStandard:
		return "standard"
	default:
		return fmt.Sprintf("ProductType(%d)", int(t))
	}
}

// RoundsPrice reports whether prices of this type go through the round-to-90 policy.
func (t ProductType) RoundsPrice() bool { return t == TypeKit }

// ImagesAreVariants reports whether each image in the folder is its own variant.
func (t ProductType) ImagesAreVariants() bool { return t == TypeGallery }

// ParseProductType maps a digit code back to its type.
func ParseProductType(code string) (ProductType, bool) {
	for _, t := range ProductTypes {
		if t.Code() == code {
			return t, true
		}
	}
	return 0, false
}

func (t ProductType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Code())
}

func (t *ProductType) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	parsed, ok := ParseProductType(code)
	if !ok {
		return fmt.Errorf("unknown product type %q", code)
	}
	*t = parsed
	return nil
}

func (t ProductType) MarshalYAML() (interface{}, error) {
	return t.Code(), nil
}

func (t *ProductType) UnmarshalYAML(value *yaml.Node) error {
	parsed, ok := ParseProductType(value.Value)
	if !ok {
		return fmt.Errorf("unknown product type %q", value.Value)
	}
	*t = parsed
	return nil
}

// TypeConfig is one entry of the "tipos" table in the catalog config file.
type TypeConfig struct {
	DisplayTypeName      string   `json:"nombre" yaml:"nombre"`
	DescriptionTemplate  string   `json:"descripcion" yaml:"descripcion"`
	SpecTemplates        []string `json:"specs" yaml:"specs"`
	UnitPrice            float64  `json:"precio" yaml:"precio"`
	DigitalTemplatePrice *float64 `json:"precioPlantillaDigital,omitempty" yaml:"precioPlantillaDigital,omitempty"`
}

// DefaultTypeConfig is used for types missing from the config table.
func DefaultTypeConfig() TypeConfig {
	return TypeConfig{
		DisplayTypeName:     "Producto",
		DescriptionTemplate: "{{name}}",
		SpecTemplates:       []string{},
		UnitPrice:           0,
	}
}

// ContactConfig is read only by the checkout page; the catalog just echoes it.
type ContactConfig struct {
	Number string `json:"numero" yaml:"numero"`
}

// Config is the catalog configuration file. Raw keeps the whole decoded
// document, including keys the catalog does not read, so it can be echoed
// back to the storefront as written.
type Config struct {
	Types    map[string]TypeConfig  `json:"tipos" yaml:"tipos"`
	WhatsApp *ContactConfig         `json:"whatsapp,omitempty" yaml:"whatsapp,omitempty"`
	Raw      map[string]interface{} `json:"-" yaml:"-"`
}

// Document returns the config as a generic JSON object: a copy of Raw when
// the config came from a file, otherwise the typed fields.
func (c Config) Document() (map[string]interface{}, error) {
	if c.Raw != nil {
		doc := make(map[string]interface{}, len(c.Raw))
		for k, v := range c.Raw {
			doc[k] = v
		}
		return doc, nil
	}

	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// TypeConfig returns the table entry for t, or the defaults when absent.
func (c Config) TypeConfig(t ProductType) TypeConfig {
	if tc, ok := c.Types[t.Code()]; ok {
		return tc
	}
	return DefaultTypeConfig()
}
