// Package atlas renders packed pages and writes them out as texture atlases.
//
// Two manifest formats are supported: the libgdx text format, written next to one image file per
// page, and a compact little-endian binary format that embeds the compressed page pixels.
package atlas

import (
	"fmt"
	"image"

	"github.com/ForeverZer0/texpack"
)

// Region is a named area of a page as it is stored in a manifest.
type Region struct {
	Name           string
	Rotated        bool
	X              int
	Y              int
	Width          int
	Height         int
	Splits         *[4]int
	Pads           *[4]int
	OriginalWidth  int
	OriginalHeight int
	OffsetX        int
	OffsetY        int
	Index          int
}

// NewRegion creates the manifest entry of a placement.
func NewRegion(p texpack.Placement) Region {
	req := p.Request
	return Region{
		Name:           req.Name,
		Rotated:        p.Rotated,
		X:              p.X,
		Y:              p.Y,
		Width:          p.Width,
		Height:         p.Height,
		Splits:         req.Splits,
		Pads:           req.Pads,
		OriginalWidth:  req.OriginalWidth,
		OriginalHeight: req.OriginalHeight,
		OffsetX:        req.OffsetX,
		OffsetY:        req.OffsetY,
		Index:          req.Index,
	}
}

// Sheet is a rendered page ready to be written.
type Sheet struct {
	// Name is the file name of the page image, including its extension.
	Name string
	// Image holds the rendered pixels of the page.
	Image *image.NRGBA
	// Regions describes every placement on the page, in placement order.
	Regions []Region
}

// NewSheets renders every page, naming the images after base: "base.ext", "base2.ext", ...
func NewSheets(base string, format Format, pages []texpack.Page) []Sheet {
	sheets := make([]Sheet, len(pages))
	for i, page := range pages {
		regions := make([]Region, len(page.Placements))
		for j, placement := range page.Placements {
			regions[j] = NewRegion(placement)
		}
		sheets[i] = Sheet{
			Name:    PageImageName(base, i) + format.Ext(),
			Image:   Render(page),
			Regions: regions,
		}
	}
	return sheets
}

// PageImageName returns the name of the image of the page at index, without an extension. The
// first page uses base as-is, following pages are numbered from 2.
func PageImageName(base string, index int) string {
	if index == 0 {
		return base
	}
	return fmt.Sprintf("%s%d", base, index+1)
}

// vim: ts=4
