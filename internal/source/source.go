// Package source loads the images of an input directory.
package source

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/ForeverZer0/texpack/analyze"
)

// Extensions lists the file extensions that are loaded, in lower case.
var Extensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// Supported reports whether path has one of the supported image extensions.
func Supported(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// Load decodes every supported image in dir, sorted by path. Sub-directories are only searched
// when recursive is set. Sources are named after their path relative to dir, using forward
// slashes and without the extension.
func Load(dir string, recursive bool) ([]analyze.Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input: %s is not a directory", dir)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if Supported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	sources := make([]analyze.Source, 0, len(paths))
	for _, path := range paths {
		img, err := Open(path)
		if err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, analyze.Source{
			Name:  Name(rel),
			Image: img,
		})
	}
	return sources, nil
}

// Name converts a relative file path into a source name.
func Name(rel string) string {
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.ToSlash(rel)
}

// Open decodes the image at path into non-premultiplied RGBA.
func Open(path string) (*image.NRGBA, error) {
	img, err := decode(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Bounds().Min == (image.Point{}) {
		return nrgba, nil
	}
	return imaging.Clone(img), nil
}

// decode tries the registered decoders first, falling back to the WebP decoder.
func decode(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err == nil {
		return img, nil
	}
	if !strings.EqualFold(filepath.Ext(path), ".webp") {
		return nil, err
	}

	f, ferr := os.Open(path)
	if ferr != nil {
		return nil, ferr
	}
	defer f.Close()
	return webp.Decode(f)
}
