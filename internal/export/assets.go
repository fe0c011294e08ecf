package export

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

const jpegQuality = 85

var (
	assetExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".svg": true,
		".webp": true, ".ico": true,
	}
	modelExtensions = map[string]bool{".glb": true, ".gltf": true}
)

// copyWebAssets copies the storefront files found in webDir. index.html is
// switched to static mode so it reads products.json instead of the API.
func copyWebAssets(webDir, outDir string, summary *Summary) error {
	for _, name := range []string{"styles.css", "script.js"} {
		src := filepath.Join(webDir, name)
		if _, err := os.Stat(src); err != nil {
			slog.Debug("Storefront file not present, skipping", "file", name)
			continue
		}
		n, err := copyFile(src, filepath.Join(outDir, name))
		if err != nil {
			return err
		}
		summary.Bytes += n
	}

	html, err := os.ReadFile(filepath.Join(webDir, "index.html"))
	if err != nil {
		slog.Debug("index.html not present, skipping", "dir", webDir)
		return nil
	}
	if err := writeFile(filepath.Join(outDir, "index.html"), []byte(StaticIndex(string(html))), summary); err != nil {
		return err
	}
	slog.Info("Copied index.html in static mode")
	return nil
}

// StaticIndex injects the static-mode flag before the storefront script and
// makes asset references relative.
func StaticIndex(html string) string {
	html = strings.Replace(html,
		`<script src="script.js"></script>`,
		"<script>window.STATIC_MODE = true;</script>\n    <script src=\"./script.js\"></script>",
		1)
	return strings.Replace(html, `href="styles.css"`, `href="./styles.css"`, 1)
}

// copyCatalogFolders copies every category and product folder of the root.
func copyCatalogFolders(opts Options, summary *Summary) error {
	entries, err := os.ReadDir(opts.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read catalog root: %w", err)
	}

	outAbs, _ := filepath.Abs(opts.OutDir)
	for _, entry := range entries {
		if !entry.IsDir() || opts.Ignore.Contains(entry.Name()) {
			continue
		}
		src := filepath.Join(opts.Root, entry.Name())
		if srcAbs, _ := filepath.Abs(src); srcAbs == outAbs {
			continue
		}
		if err := copyTree(src, filepath.Join(opts.OutDir, entry.Name()), outAbs, opts.MaxWidth, summary); err != nil {
			return err
		}
		summary.Folders++
	}

	slog.Info("Copied catalog folders", "folders", summary.Folders, "images", summary.Images, "resized", summary.Resized)
	return nil
}

// copyTree copies src to dest, leaving out the folder at skipAbs (the
// output directory when it is nested inside the catalog).
func copyTree(src, dest, skipAbs string, maxWidth int, summary *Summary) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Skipping unreadable entry", "path", path, "err", err)
			return nil
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(path); abs == skipAbs {
				return filepath.SkipDir
			}
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		ext := strings.ToLower(filepath.Ext(path))
		switch {
		case assetExtensions[ext]:
			summary.Images++
		case modelExtensions[ext]:
			summary.Models++
		}

		if maxWidth > 0 && (ext == ".jpg" || ext == ".jpeg" || ext == ".png") {
			n, resized, err := copyResized(path, target, maxWidth)
			if err == nil {
				summary.Bytes += n
				if resized {
					summary.Resized++
				}
				return nil
			}
			slog.Warn("Unable to resize image, copying original", "path", path, "err", err)
		}

		n, err := copyFile(path, target)
		if err != nil {
			return err
		}
		summary.Bytes += n
		return nil
	})
}

func copyFile(src, dest string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	n, err := io.Copy(out, in)
	if err != nil {
		return n, fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return n, nil
}

// copyResized writes src to dest, downsized to maxWidth when wider. The
// original encoding (JPEG or PNG) is kept.
func copyResized(src, dest string, maxWidth int) (int64, bool, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return 0, false, err
	}
	out, resized, err := ResizeImage(data, maxWidth)
	if err != nil {
		return 0, false, err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, false, err
	}
	if err := os.WriteFile(dest, out, 0644); err != nil {
		return 0, false, err
	}
	return int64(len(out)), resized, nil
}

// ResizeImage downsizes a JPEG or PNG to maxWidth keeping its aspect ratio.
// Images already narrow enough are returned unchanged.
func ResizeImage(data []byte, maxWidth int) ([]byte, bool, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}

	if maxWidth <= 0 || img.Bounds().Dx() <= maxWidth {
		return data, false, nil
	}

	// Height 0 keeps the aspect ratio
	resized := resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, resized)
	default:
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, false, fmt.Errorf("encode resized image: %w", err)
	}
	return buf.Bytes(), true, nil
}
