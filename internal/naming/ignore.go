package naming

// IgnoreList holds reserved names skipped at the catalog root.
type IgnoreList map[string]struct{}

// defaultIgnored are tooling, source and output entries that live next to
// the product folders in a catalog checkout.
var defaultIgnored = []string{
	"node_modules",
	".git",
	".github",
	".vscode",
	".idea",
	".env",
	".gitignore",
	"package.json",
	"package-lock.json",
	"go.mod",
	"go.sum",
	"main.go",
	"cmd",
	"internal",
	"vendor",
	"server.js",
	"export.js",
	"script.js",
	"styles.css",
	"index.html",
	"config.json",
	"config.yaml",
	"config.yml",
	"README.md",
	"LICENSE",
	"docs",
}

// DefaultIgnore returns a fresh copy of the built-in ignore list.
func DefaultIgnore() IgnoreList {
	return NewIgnoreList(defaultIgnored...)
}

// NewIgnoreList builds a list from names.
func NewIgnoreList(names ...string) IgnoreList {
	l := make(IgnoreList, len(names))
	for _, n := range names {
		l[n] = struct{}{}
	}
	return l
}

// With returns a copy of l extended with names.
func (l IgnoreList) With(names ...string) IgnoreList {
	out := make(IgnoreList, len(l)+len(names))
	for n := range l {
		out[n] = struct{}{}
	}
	for _, n := range names {
		if n != "" {
			out[n] = struct{}{}
		}
	}
	return out
}

// Contains is safe on a nil list.
func (l IgnoreList) Contains(name string) bool {
	_, ok := l[name]
	return ok
}
