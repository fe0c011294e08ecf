package scanner

import (
	"sort"

	"github.com/vitrina-piezas/catalog/internal/models"
)

// Categories returns the distinct categories of records in order of first
// appearance.
func Categories(records []models.ProductRecord) []string {
	seen := make(map[string]bool)
	categories := []string{}
	for _, r := range records {
		if !seen[r.Category] {
			seen[r.Category] = true
			categories = append(categories, r.Category)
		}
	}
	return categories
}

// CategoryGroup is the records of one category.
type CategoryGroup struct {
	Category string
	Records  []models.ProductRecord
}

// Summarize groups records by category, categories sorted by name and
// records kept in scan order.
func Summarize(records []models.ProductRecord) []CategoryGroup {
	byCategory := make(map[string][]models.ProductRecord)
	for _, r := range records {
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]CategoryGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, CategoryGroup{Category: name, Records: byCategory[name]})
	}
	return groups
}
