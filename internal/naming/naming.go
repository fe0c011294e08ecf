// Package naming interprets catalog folder names.
//
// A folder whose name starts with a type digit ("1", "2" or "3") is a
// product. Inside a product, a folder named "label(price)" is a priced
// variant. Anything else is a category that contributes a path segment.
package naming

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vitrina-piezas/catalog/internal/models"
)

// EntryKind is the role a folder plays in the catalog tree.
type EntryKind int

const (
	Category EntryKind = iota
	Product
	Variable
	Ignored
)

func (k EntryKind) String() string {
	switch k {
	case Product:
		return "product"
	case Variable:
		return "variable"
	case Ignored:
		return "ignored"
	default:
		return "category"
	}
}

// separator is the character folder names use in place of spaces.
const separator = "-"

var (
	multiplierSuffix = regexp.MustCompile(`\((\d+)\)$`)
	variablePattern  = regexp.MustCompile(`^(.+)\((\d+)\)$`)
)

// ParsedFolderName is what a product folder name encodes.
type ParsedFolderName struct {
	DisplayName     string
	PieceMultiplier int
}

// VariantInfo is what a variable folder name encodes. CustomPrice is nil
// when the name carries no price suffix.
type VariantInfo struct {
	VariantName string
	CustomPrice *int
}

// Classify decides the role of a folder. ignore may be nil; the scanner
// passes it only for entries directly under the catalog root.
func Classify(name string, ignore IgnoreList) EntryKind {
	if IsProductFolder(name) {
		return Product
	}
	if multiplierSuffix.MatchString(name) {
		return Variable
	}
	if ignore.Contains(name) {
		return Ignored
	}
	return Category
}

// IsProductFolder reports whether name starts with a type digit.
func IsProductFolder(name string) bool {
	_, ok := leadingType(name)
	return ok
}

// IsVariableFolder reports whether name is "label(price)" without a type digit.
func IsVariableFolder(name string) bool {
	return !IsProductFolder(name) && multiplierSuffix.MatchString(name)
}

// ProductTypeOf returns the type encoded by the first character of name,
// falling back to models.TypeKit.
func ProductTypeOf(name string) models.ProductType {
	if t, ok := leadingType(name); ok {
		return t
	}
	return models.TypeKit
}

func leadingType(name string) (models.ProductType, bool) {
	if name == "" {
		return 0, false
	}
	return models.ParseProductType(name[:1])
}

// ParseProductName strips the type digit and the optional "(N)" piece
// multiplier from a product folder name.
func ParseProductName(folderName string) ParsedFolderName {
	name := folderName
	if IsProductFolder(name) {
		name = strings.TrimPrefix(name[1:], separator)
	}

	multiplier := 1
	if m := multiplierSuffix.FindStringSubmatch(name); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			multiplier = n
		}
		name = strings.TrimSpace(name[:len(name)-len(m[0])])
	}

	return ParsedFolderName{
		DisplayName:     strings.ReplaceAll(name, separator, " "),
		PieceMultiplier: multiplier,
	}
}

// ParseVariableInfo splits "Azul-Cielo(20)" into "Azul Cielo" and 20.
// Digits that do not fit an int yield a price of 0.
func ParseVariableInfo(folderName string) VariantInfo {
	m := variablePattern.FindStringSubmatch(folderName)
	if m == nil {
		return VariantInfo{VariantName: spaced(folderName)}
	}
	price, err := strconv.Atoi(m[2])
	if err != nil {
		price = 0
	}
	return VariantInfo{
		VariantName: spaced(m[1]),
		CustomPrice: &price,
	}
}

func spaced(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, separator, " "))
}
