package atlas

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ForeverZer0/texpack"
)

// Manifest is the file format of an atlas description.
type Manifest string

const (
	// LibGDX is the libgdx text format, with one image file per page.
	LibGDX Manifest = "libgdx"
	// Binary is the binary format, with the page pixels embedded.
	Binary Manifest = "bba"
)

// ParseManifest returns the manifest format matching name, case-insensitive.
func ParseManifest(name string) (Manifest, error) {
	switch m := Manifest(strings.ToLower(name)); m {
	case LibGDX, Binary:
		return m, nil
	}
	return "", fmt.Errorf("unsupported atlas format %q", name)
}

// Ext returns the file extension of the manifest, including the leading dot.
func (m Manifest) Ext() string {
	if m == Binary {
		return ".bba"
	}
	return ".atlas"
}

// Options controls the output of Export.
type Options struct {
	Manifest Manifest
	Image    Format
}

// Export renders the pages and writes the atlas named name into dir, returning the paths of the
// files written. The directory must exist.
func Export(dir, name string, pages []texpack.Page, opts Options) ([]string, error) {
	if opts.Manifest == "" {
		opts.Manifest = LibGDX
	}
	if opts.Image == "" {
		opts.Image = PNG
	}

	sheets := NewSheets(name, opts.Image, pages)
	var files []string

	if opts.Manifest == LibGDX {
		for _, sheet := range sheets {
			path := filepath.Join(dir, sheet.Name)
			err := writeFile(path, func(w io.Writer) error {
				return Encode(w, sheet.Image, opts.Image)
			})
			if err != nil {
				return files, err
			}
			files = append(files, path)
		}
	}

	path := filepath.Join(dir, name+opts.Manifest.Ext())
	err := writeFile(path, func(w io.Writer) error {
		if opts.Manifest == Binary {
			return WriteBinary(w, sheets)
		}
		return WriteLibGDX(w, sheets)
	})
	if err != nil {
		return files, err
	}
	return append(files, path), nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// vim: ts=4
