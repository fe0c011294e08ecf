package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrina-piezas/catalog/internal/models"
)

func TestClassify(t *testing.T) {
	ignore := DefaultIgnore()

	tests := []struct {
		name     string
		folder   string
		ignore   IgnoreList
		expected EntryKind
	}{
		{name: "kit product", folder: "1-Castillo(1200)", expected: Product},
		{name: "gallery product", folder: "2-Mug", expected: Product},
		{name: "standard product", folder: "3Lamp", expected: Product},
		{name: "other digit is not a product", folder: "4-Thing", expected: Category},
		{name: "variable folder", folder: "Azul-Cielo(20)", expected: Variable},
		{name: "product wins over variable shape", folder: "1-Rojo(15)", expected: Product},
		{name: "plain category", folder: "Figuras", expected: Category},
		{name: "parenthesis not at end", folder: "Rojo(15) claro", expected: Category},
		{name: "non digit price", folder: "Rojo(abc)", expected: Category},
		{name: "ignored at root", folder: "node_modules", ignore: ignore, expected: Ignored},
		{name: "output folder ignored at root", folder: "docs", ignore: ignore, expected: Ignored},
		{name: "reserved name is a category when nested", folder: "docs", expected: Category},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.folder, tt.ignore))
		})
	}
}

func TestParseProductName(t *testing.T) {
	tests := []struct {
		folder     string
		display    string
		multiplier int
	}{
		{folder: "2-Red-Mug(12)", display: "Red Mug", multiplier: 12},
		{folder: "1SimpleItem", display: "SimpleItem", multiplier: 1},
		{folder: "1-Castillo-Grande (1500)", display: "Castillo Grande", multiplier: 1500},
		{folder: "3-Lamp(0)", display: "Lamp", multiplier: 1},
		{folder: "3-Lamp(99999999999999999999999)", display: "Lamp", multiplier: 1},
		{folder: "1--Double", display: " Double", multiplier: 1},
		{folder: "1-Set(12)(30)", display: "Set(12)", multiplier: 30},
		{folder: "3-No-Suffix(x)", display: "No Suffix(x)", multiplier: 1},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			got := ParseProductName(tt.folder)
			assert.Equal(t, tt.display, got.DisplayName)
			assert.Equal(t, tt.multiplier, got.PieceMultiplier)
			assert.GreaterOrEqual(t, got.PieceMultiplier, 1)
		})
	}
}

func TestParseVariableInfo(t *testing.T) {
	t.Run("name and price", func(t *testing.T) {
		got := ParseVariableInfo("Azul-Cielo(20)")
		assert.Equal(t, "Azul Cielo", got.VariantName)
		require.NotNil(t, got.CustomPrice)
		assert.Equal(t, 20, *got.CustomPrice)
	})

	t.Run("greedy prefix", func(t *testing.T) {
		got := ParseVariableInfo("Talla(M)(35)")
		assert.Equal(t, "Talla(M)", got.VariantName)
		require.NotNil(t, got.CustomPrice)
		assert.Equal(t, 35, *got.CustomPrice)
	})

	t.Run("space before price is trimmed", func(t *testing.T) {
		got := ParseVariableInfo("Rojo (15)")
		assert.Equal(t, "Rojo", got.VariantName)
	})

	t.Run("overflowing price becomes zero", func(t *testing.T) {
		got := ParseVariableInfo("Oro(99999999999999999999999)")
		require.NotNil(t, got.CustomPrice)
		assert.Equal(t, 0, *got.CustomPrice)
	})

	t.Run("no price suffix", func(t *testing.T) {
		got := ParseVariableInfo("Verde-Oscuro")
		assert.Equal(t, "Verde Oscuro", got.VariantName)
		assert.Nil(t, got.CustomPrice)
	})
}

func TestProductTypeOf(t *testing.T) {
	assert.Equal(t, models.TypeKit, ProductTypeOf("1-A"))
	assert.Equal(t, models.TypeGallery, ProductTypeOf("2-A"))
	assert.Equal(t, models.TypeStandard, ProductTypeOf("3-A"))
	assert.Equal(t, models.TypeKit, ProductTypeOf("Categoria"))
	assert.Equal(t, models.TypeKit, ProductTypeOf(""))
}

func TestIsVariableFolder(t *testing.T) {
	assert.True(t, IsVariableFolder("Rojo(15)"))
	assert.False(t, IsVariableFolder("1-Rojo(15)"))
	assert.False(t, IsVariableFolder("Rojo"))
}

func TestIgnoreList(t *testing.T) {
	var empty IgnoreList
	assert.False(t, empty.Contains("docs"))

	base := NewIgnoreList("a")
	extended := base.With("b", "")
	assert.True(t, extended.Contains("a"))
	assert.True(t, extended.Contains("b"))
	assert.False(t, extended.Contains(""))
	assert.False(t, base.Contains("b"), "With must not modify the receiver")
}
