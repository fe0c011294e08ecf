package scanner

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"github.com/vitrina-piezas/catalog/internal/models"
	"github.com/vitrina-piezas/catalog/internal/naming"
	"github.com/vitrina-piezas/catalog/internal/pricing"
	"github.com/vitrina-piezas/catalog/internal/templating"
)

// StandardVariantName names the first image of a gallery product.
const StandardVariantName = "Standard"

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

const modelExtension = ".glb"

var unsafeIDChars = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// productInfo is the priced, rendered part shared by every record of a folder.
type productInfo struct {
	name        string
	typ         models.ProductType
	typeName    string
	category    string
	price       int
	description string
	specs       []string
	pieces      int
	hours       int
}

// describe resolves name, price and templates for a product folder. A
// non-empty variantName is appended to the display name.
func (s *Scanner) describe(folder, category string, customPrice *int, variantName string) productInfo {
	typ := naming.ProductTypeOf(folder)
	parsed := naming.ParseProductName(folder)
	tc := s.cfg.TypeConfig(typ)

	name := parsed.DisplayName
	if variantName != "" {
		name = name + " - " + variantName
	}
	pieces := parsed.PieceMultiplier
	hours := pricing.BuildHours(pieces)
	label := categoryLabel(category)

	values := templating.Values{Name: name, Category: label, Pieces: pieces, Hours: hours}
	return productInfo{
		name:        name,
		typ:         typ,
		typeName:    tc.DisplayTypeName,
		category:    label,
		price:       pricing.Price(typ, tc, pieces, customPrice),
		description: templating.Render(tc.DescriptionTemplate, values),
		specs:       templating.RenderAll(tc.SpecTemplates, values),
		pieces:      pieces,
		hours:       hours,
	}
}

func (info productInfo) record(id string, images []string, glb *string, variant models.Variant) models.ProductRecord {
	return models.ProductRecord{
		ID:          id,
		Name:        info.name,
		Type:        info.typ,
		TypeName:    info.typeName,
		Category:    info.category,
		Price:       info.price,
		Description: info.description,
		Specs:       info.specs,
		Pieces:      info.pieces,
		BuildHours:  info.hours,
		Images:      images,
		MainImage:   first(images),
		GLBFile:     glb,
		Variant:     variant,
	}
}

// assemble builds the records of one product folder.
func (s *Scanner) assemble(dir, folder, category string) []models.ProductRecord {
	entries, err := fs.ReadDir(s.fsys, dir)
	if err != nil {
		s.logger.Warn("Skipping unreadable product folder", "path", dir, "err", err)
		return nil
	}

	images := imagePaths(dir, entries)
	glb := modelPath(dir, entries)

	if naming.ProductTypeOf(folder).ImagesAreVariants() {
		return s.assembleGallery(folder, category, images, glb)
	}

	var variables []string
	for _, entry := range entries {
		if entry.IsDir() && naming.IsVariableFolder(entry.Name()) {
			variables = append(variables, entry.Name())
		}
	}

	if len(variables) == 0 {
		info := s.describe(folder, category, nil, "")
		return []models.ProductRecord{info.record(s.newID(), images, glb, models.Simple{})}
	}

	s.logger.Debug("Product with variants", "folder", folder, "variants", len(variables))
	records := make([]models.ProductRecord, 0, len(variables))
	for _, v := range variables {
		varDir := path.Join(dir, v)
		varInfo := naming.ParseVariableInfo(v)
		info := s.describe(folder, category, varInfo.CustomPrice, varInfo.VariantName)

		rec := info.record(s.newID(), s.listImages(varDir), glb, models.VariantOf{ParentProduct: folder})
		variantName := varInfo.VariantName
		rec.VariableName = &variantName
		rec.CustomPrice = varInfo.CustomPrice
		records = append(records, rec)
	}
	return records
}

// assembleGallery emits the single "Standard" record of a gallery product;
// the other images only travel as its variant gallery.
func (s *Scanner) assembleGallery(folder, category string, images []string, glb *string) []models.ProductRecord {
	if len(images) == 0 {
		s.logger.Debug("Gallery product without images", "folder", folder)
		return nil
	}
	s.logger.Debug("Gallery product", "folder", folder, "variants", len(images))

	info := s.describe(folder, category, nil, "")
	variant := models.ImageVariantGroup{ParentProduct: folder, AllVariants: images}
	rec := info.record(GalleryID(folder), []string{images[0]}, glb, variant)
	standard := StandardVariantName
	rec.VariableName = &standard
	return []models.ProductRecord{rec}
}

// GalleryID is the stable id of a gallery product: the folder name with a
// "-0" suffix, reduced to letters, digits and hyphens.
func GalleryID(folder string) string {
	return unsafeIDChars.ReplaceAllString(folder+"-0", "")
}

// uniqueIDs keeps ids unique within one scan. Gallery ids only depend on
// the folder name, so a second gallery folder of the same name in another
// category gets its category folded into the id. Traversal order is sorted,
// which keeps the result stable across scans.
func uniqueIDs(records []models.ProductRecord) {
	seen := make(map[string]bool, len(records))
	for i := range records {
		id := records[i].ID
		if seen[id] {
			parent, _ := records[i].ParentProduct()
			base := GalleryID(records[i].Category + "-" + parent)
			id = base
			for n := 2; seen[id]; n++ {
				id = fmt.Sprintf("%s-%d", base, n)
			}
			records[i].ID = id
		}
		seen[id] = true
	}
}

// listImages reads dir for images, treating a vanished folder as empty.
func (s *Scanner) listImages(dir string) []string {
	entries, err := fs.ReadDir(s.fsys, dir)
	if err != nil {
		s.logger.Warn("Unable to read variant folder", "path", dir, "err", err)
		return []string{}
	}
	return imagePaths(dir, entries)
}

func imagePaths(dir string, entries []fs.DirEntry) []string {
	images := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(path.Ext(entry.Name()))] {
			images = append(images, path.Join(dir, entry.Name()))
		}
	}
	return images
}

func modelPath(dir string, entries []fs.DirEntry) *string {
	for _, entry := range entries {
		if !entry.IsDir() && strings.ToLower(path.Ext(entry.Name())) == modelExtension {
			p := path.Join(dir, entry.Name())
			return &p
		}
	}
	return nil
}

func first(paths []string) *string {
	if len(paths) == 0 {
		return nil
	}
	p := paths[0]
	return &p
}
