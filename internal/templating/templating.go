// Package templating fills the placeholders of description and spec templates.
package templating

import (
	"strconv"
	"strings"
)

// Placeholders understood by Render.
const (
	NamePlaceholder     = "{{name}}"
	CategoryPlaceholder = "{{category}}"
	PiecesPlaceholder   = "{{pcs}}"
	HoursPlaceholder    = "{{hours}}"
)

// Values are substituted into a template.
type Values struct {
	Name     string
	Category string
	Pieces   int
	Hours    int
}

func (v Values) replacer() *strings.Replacer {
	return strings.NewReplacer(
		NamePlaceholder, v.Name,
		CategoryPlaceholder, v.Category,
		PiecesPlaceholder, strconv.Itoa(v.Pieces),
		HoursPlaceholder, strconv.Itoa(v.Hours),
	)
}

// Render replaces every known placeholder in tpl. Unknown placeholders are
// left as they are.
func Render(tpl string, v Values) string {
	return v.replacer().Replace(tpl)
}

// RenderAll renders each template in order. The result is never nil.
func RenderAll(tpls []string, v Values) []string {
	out := make([]string, 0, len(tpls))
	r := v.replacer()
	for _, tpl := range tpls {
		out = append(out, r.Replace(tpl))
	}
	return out
}
