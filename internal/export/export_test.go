package export

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrina-piezas/catalog/internal/models"
	"github.com/vitrina-piezas/catalog/internal/naming"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func testRecords() []models.ProductRecord {
	return []models.ProductRecord{
		{
			ID:           "id-1",
			Name:         "Shirt - Rojo",
			Type:         models.TypeKit,
			TypeName:     "Kit",
			Category:     "Ropa",
			Price:        90,
			Specs:        []string{"1 piezas"},
			Pieces:       1,
			Images:       []string{"/Ropa/1-Shirt/Rojo(15)/a.jpg"},
			MainImage:    strPtr("/Ropa/1-Shirt/Rojo(15)/a.jpg"),
			GLBFile:      strPtr("/Ropa/1-Shirt/shirt.glb"),
			VariableName: strPtr("Rojo"),
			CustomPrice:  intPtr(15),
			Variant:      models.VariantOf{ParentProduct: "1-Shirt"},
		},
		{
			ID:           "2-Mug-0",
			Name:         "Mug",
			Type:         models.TypeGallery,
			TypeName:     "Taza",
			Category:     "General",
			Specs:        []string{},
			Images:       []string{"2-Mug/a.jpg"},
			MainImage:    strPtr("2-Mug/a.jpg"),
			VariableName: strPtr("Standard"),
			Variant:      models.ImageVariantGroup{ParentProduct: "2-Mug", AllVariants: []string{"2-Mug/a.jpg", "2-Mug/b.jpg"}},
		},
	}
}

func newCatalog(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "index.html"), `<html><head><link rel="stylesheet" href="styles.css"></head><body><script src="script.js"></script></body></html>`)
	writeTestFile(t, filepath.Join(root, "styles.css"), "body{}")
	writeTestFile(t, filepath.Join(root, "script.js"), "console.log(1)")
	writeTestFile(t, filepath.Join(root, "2-Mug", "a.jpg"), "a")
	writeTestFile(t, filepath.Join(root, "2-Mug", "b.jpg"), "b")
	writeTestFile(t, filepath.Join(root, "Ropa", "1-Shirt", "shirt.glb"), "glTF")
	writeTestFile(t, filepath.Join(root, "Ropa", "1-Shirt", "Rojo(15)", "a.jpg"), "r")
	writeTestFile(t, filepath.Join(root, "node_modules", "pkg", "index.js"), "x")
	return root
}

func TestRun(t *testing.T) {
	root := newCatalog(t)
	out := filepath.Join(t.TempDir(), "docs")
	writeTestFile(t, filepath.Join(out, "stale.txt"), "old")

	cfg := models.Config{Types: map[string]models.TypeConfig{"1": {DisplayTypeName: "Kit", UnitPrice: 12}}}
	summary, err := Run(testRecords(), cfg, Options{
		Root:    root,
		OutDir:  out,
		Ignore:  naming.DefaultIgnore(),
		YAML:    true,
		Parquet: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Products)
	assert.Equal(t, 2, summary.Folders)
	assert.Equal(t, 3, summary.Images)
	assert.Equal(t, 1, summary.Models)
	assert.Contains(t, summary.String(), "2 product(s)")

	assert.NoFileExists(t, filepath.Join(out, "stale.txt"))
	assert.NoDirExists(t, filepath.Join(out, "node_modules"))
	assert.FileExists(t, filepath.Join(out, "2-Mug", "b.jpg"))
	assert.FileExists(t, filepath.Join(out, "Ropa", "1-Shirt", "Rojo(15)", "a.jpg"))
	assert.FileExists(t, filepath.Join(out, "styles.css"))
	assert.FileExists(t, filepath.Join(out, "script.js"))
	assert.FileExists(t, filepath.Join(out, ProductsYAML))

	html, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "window.STATIC_MODE = true;")

	data, err := os.ReadFile(filepath.Join(out, ProductsJSON))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {"), "products.json is indented with two spaces")

	var products []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &products))
	require.Len(t, products, 2)
	assert.Equal(t, "Ropa/1-Shirt/Rojo(15)/a.jpg", products[0]["mainImage"])
	assert.Equal(t, "Ropa/1-Shirt/shirt.glb", products[0]["glbFile"])
	assert.Equal(t, []interface{}{"2-Mug/a.jpg", "2-Mug/b.jpg"}, products[1]["allVariants"])

	var exported models.Config
	data, err = os.ReadFile(filepath.Join(out, ConfigJSON))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &exported))
	assert.Equal(t, float64(12), exported.Types["1"].UnitPrice)
}

func TestRunSkipsOutputInsideRoot(t *testing.T) {
	root := newCatalog(t)
	out := filepath.Join(root, "site")

	summary, err := Run(testRecords(), models.Config{}, Options{Root: root, OutDir: out, Ignore: naming.DefaultIgnore()})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Folders)
	assert.NoDirExists(t, filepath.Join(out, "site"))
}

func TestRunWithoutWebAssets(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")

	summary, err := Run(nil, models.Config{}, Options{Root: root, OutDir: out})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Products)
	assert.NoFileExists(t, filepath.Join(out, "index.html"))

	data, err := os.ReadFile(filepath.Join(out, ProductsJSON))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestRunRequiresOutDir(t *testing.T) {
	_, err := Run(nil, models.Config{}, Options{Root: t.TempDir()})
	assert.Error(t, err)
}

func TestStaticIndex(t *testing.T) {
	html := `<link href="styles.css"><script src="script.js"></script>`
	got := StaticIndex(html)

	assert.Equal(t, "<link href=\"./styles.css\"><script>window.STATIC_MODE = true;</script>\n    <script src=\"./script.js\"></script>", got)
	assert.Equal(t, "<p>no scripts</p>", StaticIndex("<p>no scripts</p>"))
}

func TestRelativePaths(t *testing.T) {
	records := RelativePaths(testRecords())
	assert.Equal(t, []string{"Ropa/1-Shirt/Rojo(15)/a.jpg"}, records[0].Images)
	assert.Equal(t, "Ropa/1-Shirt/shirt.glb", *records[0].GLBFile)
	assert.Equal(t, []string{"2-Mug/a.jpg"}, records[1].Images)
}

func TestLoadProducts(t *testing.T) {
	root := newCatalog(t)
	out := filepath.Join(t.TempDir(), "docs")

	_, err := Run(testRecords(), models.Config{}, Options{Root: root, OutDir: out, YAML: true, Parquet: true})
	require.NoError(t, err)

	want := RelativePaths(testRecords())
	for _, name := range []string{ProductsJSON, ProductsYAML, ProductsParquet} {
		t.Run(name, func(t *testing.T) {
			got, err := LoadProducts(filepath.Join(out, name))
			require.NoError(t, err)
			require.Len(t, got, len(want))

			for i := range want {
				assert.Equal(t, want[i].ID, got[i].ID)
				assert.Equal(t, want[i].Type, got[i].Type)
				assert.Equal(t, want[i].Images, got[i].Images)
				assert.Equal(t, want[i].CustomPrice, got[i].CustomPrice)
				assert.Equal(t, want[i].Variant, got[i].Variant)
			}
		})
	}

	_, err = LoadProducts(filepath.Join(out, "index.html"))
	assert.Error(t, err)
}

func TestResizeImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for x := 0; x < 400; x++ {
		img.Set(x, x%200, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, resized, err := ResizeImage(buf.Bytes(), 100)
	require.NoError(t, err)
	assert.True(t, resized)

	decoded, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 50, decoded.Bounds().Dy())

	same, resized, err := ResizeImage(buf.Bytes(), 800)
	require.NoError(t, err)
	assert.False(t, resized)
	assert.Equal(t, buf.Bytes(), same)

	_, _, err = ResizeImage([]byte("not an image"), 100)
	assert.Error(t, err)
}

func TestRunWithOutputInsideCategory(t *testing.T) {
	root := newCatalog(t)
	out := filepath.Join(root, "Ropa", "site")

	summary, err := Run(testRecords(), models.Config{}, Options{Root: root, OutDir: out, Ignore: naming.DefaultIgnore()})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Folders)
	assert.FileExists(t, filepath.Join(out, "Ropa", "1-Shirt", "Rojo(15)", "a.jpg"))
	assert.NoDirExists(t, filepath.Join(out, "Ropa", "site"))
}

func TestRunEchoesConfigDocument(t *testing.T) {
	out := filepath.Join(t.TempDir(), "docs")
	cfg := models.Config{
		Types: map[string]models.TypeConfig{"1": {DisplayTypeName: "Kit"}},
		Raw: map[string]interface{}{
			"tipos":    map[string]interface{}{"1": map[string]interface{}{"nombre": "Kit"}},
			"whatsapp": map[string]interface{}{"numero": "549", "mensaje": "Hola"},
		},
	}

	_, err := Run(nil, cfg, Options{Root: t.TempDir(), OutDir: out})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, ConfigJSON))
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, map[string]interface{}{"numero": "549", "mensaje": "Hola"}, doc["whatsapp"])
}
