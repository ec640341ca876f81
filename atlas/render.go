package atlas

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/ForeverZer0/texpack"
)

// Render composites the images of every placement onto a transparent page image. Placements
// without an image leave their area transparent.
func Render(page texpack.Page) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, page.Width, page.Height))
	for _, placement := range page.Placements {
		src := placement.Request.Image
		if src == nil {
			continue
		}
		r := image.Rect(placement.X, placement.Y, placement.Right(), placement.Bottom())
		draw.Draw(dst, r, src, src.Bounds().Min, draw.Src)
	}
	return dst
}

// vim: ts=4
