package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitrina-piezas/catalog/internal/models"
)

func TestRoundUpToEndIn90(t *testing.T) {
	tests := []struct {
		price    int
		expected int
	}{
		{1718, 1790},
		{1700, 1790},
		{1750, 1790},
		{85, 90},
		{0, 90},
		{1790, 1790},
		{90, 90},
		{100, 190},
		{91, 190},
		{1791, 1890},
		{1795, 1890},
		{1800, 1890},
		{-40, 90},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RoundUpToEndIn90(tt.price), "price %d", tt.price)
	}
}

// smallestEndingIn90 is the brute-force answer the policy must agree with.
func smallestEndingIn90(p int) int {
	for c := p; ; c++ {
		if c%100 == 90 {
			return c
		}
	}
}

func TestRoundUpToEndIn90Exhaustive(t *testing.T) {
	for p := -500; p <= 250000; p++ {
		got := RoundUpToEndIn90(p)

		switch {
		case p >= 0 && p%100 == 90:
			if got != p {
				t.Fatalf("price %d already ends in 90, got %d", p, got)
			}
		case p < 90:
			if got != 90 {
				t.Fatalf("price %d below 90 should become 90, got %d", p, got)
			}
		default:
			if got%100 != 90 || got < p {
				t.Fatalf("price %d rounded to %d", p, got)
			}
			if want := smallestEndingIn90(p); got != want {
				t.Fatalf("price %d rounded to %d, smallest ending in 90 is %d", p, got, want)
			}
		}
	}
}

func TestBuildHours(t *testing.T) {
	assert.Equal(t, 0, BuildHours(0))
	assert.Equal(t, 1, BuildHours(300))
	assert.Equal(t, 1, BuildHours(449))
	assert.Equal(t, 2, BuildHours(450))
	assert.Equal(t, 0, BuildHours(149))
	assert.Equal(t, 1, BuildHours(150))

	prev := BuildHours(0)
	for pieces := 1; pieces <= 10000; pieces++ {
		h := BuildHours(pieces)
		if h < prev {
			t.Fatalf("BuildHours decreased at %d: %d < %d", pieces, h, prev)
		}
		prev = h
	}
}

func TestPrice(t *testing.T) {
	tc := models.TypeConfig{UnitPrice: 12}
	custom := 15

	tests := []struct {
		name     string
		typ      models.ProductType
		pieces   int
		custom   *int
		expected int
	}{
		{name: "kit is rounded", typ: models.TypeKit, pieces: 100, expected: 1290},
		{name: "kit custom price is rounded", typ: models.TypeKit, pieces: 100, custom: &custom, expected: 90},
		{name: "gallery is raw", typ: models.TypeGallery, pieces: 100, expected: 1200},
		{name: "standard custom price is raw", typ: models.TypeStandard, pieces: 100, custom: &custom, expected: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Price(tt.typ, tc, tt.pieces, tt.custom))
		})
	}
}

func TestBasePrice(t *testing.T) {
	zero := 0
	assert.Equal(t, 0, BasePrice(models.TypeConfig{UnitPrice: 50}, 3, &zero))
	assert.Equal(t, 150, BasePrice(models.TypeConfig{UnitPrice: 50}, 3, nil))
	assert.Equal(t, 0, BasePrice(models.DefaultTypeConfig(), 3, nil))
}

func TestDigitalTemplatePrice(t *testing.T) {
	configured := 2500.0
	assert.Equal(t, 90, DigitalTemplatePrice(models.TypeConfig{}))
	assert.Equal(t, 2590, DigitalTemplatePrice(models.TypeConfig{DigitalTemplatePrice: &configured}))
}

func TestBasePriceFractionalUnitPrice(t *testing.T) {
	assert.Equal(t, 250, BasePrice(models.TypeConfig{UnitPrice: 2.5}, 100, nil))
	assert.Equal(t, 4, BasePrice(models.TypeConfig{UnitPrice: 1.25}, 3, nil))
	assert.Equal(t, 290, Price(models.TypeKit, models.TypeConfig{UnitPrice: 2.5}, 100, nil))
}

func TestBasePriceClamped(t *testing.T) {
	huge := math.MaxInt64

	assert.Equal(t, MaxPrice, BasePrice(models.TypeConfig{UnitPrice: 1e6}, math.MaxInt64, nil))
	assert.Equal(t, MaxPrice, BasePrice(models.TypeConfig{}, 1, &huge))

	price := Price(models.TypeKit, models.TypeConfig{UnitPrice: 1e6}, math.MaxInt64, nil)
	assert.Greater(t, price, MaxPrice)
	assert.Equal(t, 90, price%100)
}
