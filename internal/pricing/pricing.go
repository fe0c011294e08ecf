// Package pricing computes display prices and build hours.
package pricing

import (
	"math"

	"github.com/vitrina-piezas/catalog/internal/models"
)

// PiecesPerHour is the assembly rate behind BuildHours.
const PiecesPerHour = 300

// DefaultDigitalTemplatePrice applies when the kit type has no
// precioPlantillaDigital entry.
const DefaultDigitalTemplatePrice = 5

// BuildHours returns pieces/300 rounded half away from zero.
func BuildHours(pieces int) int {
	return int(math.Round(float64(pieces) / PiecesPerHour))
}

// MaxPrice bounds every computed price so that rounding cannot overflow.
const MaxPrice = 1 << 53

// BasePrice is customPrice when set, otherwise the unit price times pieces
// rounded to a whole number. Results are clamped to ±MaxPrice.
func BasePrice(tc models.TypeConfig, pieces int, customPrice *int) int {
	if customPrice != nil {
		return clamp(float64(*customPrice))
	}
	return clamp(math.Round(tc.UnitPrice * float64(pieces)))
}

func clamp(price float64) int {
	switch {
	case math.IsNaN(price):
		return 0
	case price > MaxPrice:
		return MaxPrice
	case price < -MaxPrice:
		return -MaxPrice
	}
	return int(price)
}

// Price is BasePrice passed through the rounding policy of t.
func Price(t models.ProductType, tc models.TypeConfig, pieces int, customPrice *int) int {
	price := BasePrice(tc, pieces, customPrice)
	if t.RoundsPrice() {
		return RoundUpToEndIn90(price)
	}
	return price
}

// RoundUpToEndIn90 moves price up so that it ends in 90:
// 1718 -> 1790, 1700 -> 1790, 85 -> 90, 1790 -> 1790.
func RoundUpToEndIn90(price int) int {
	if price%10 == 0 && floorDiv(price, 10)%10 == 9 {
		return price
	}
	if price < 90 {
		return 90
	}

	next := ceilDiv(price, 10) * 10
	if next%100 == 0 {
		return next + 90
	}
	return floorDiv(next, 100)*100 + 90
}

// DigitalTemplatePrice is the "template only" add-on offered for kits,
// rounded with the same policy as the kit price itself.
func DigitalTemplatePrice(tc models.TypeConfig) int {
	base := DefaultDigitalTemplatePrice
	if tc.DigitalTemplatePrice != nil && *tc.DigitalTemplatePrice != 0 {
		base = clamp(math.Round(*tc.DigitalTemplatePrice))
	}
	return RoundUpToEndIn90(base)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
