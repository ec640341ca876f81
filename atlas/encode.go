package atlas

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Format is the encoding of page images.
type Format string

const (
	// PNG is lossless and the default.
	PNG Format = "png"
	// JPEG drops the alpha channel.
	JPEG Format = "jpg"
	// WebP is encoded lossless.
	WebP Format = "webp"
)

// jpegQuality is used for JPEG pages. Atlases are usually sampled at 1:1, so artifacts show.
const jpegQuality = 95

// ParseFormat returns the format matching name, case-insensitive. "jpeg" is accepted for JPEG.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "webp":
		return WebP, nil
	}
	return "", fmt.Errorf("unsupported image format %q", name)
}

// Ext returns the file extension of the format, including the leading dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Encode writes img to w in the given format. WebP pages are lossless.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return imaging.Encode(w, img, imaging.PNG)
	case JPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	case WebP:
		return webp.Encode(w, img, &webp.Options{Lossless: true})
	}
	return fmt.Errorf("unsupported image format %q", string(format))
}

// vim: ts=4
