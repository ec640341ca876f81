package analyze

import "image"

// TrimOptions controls which transparent borders Trim removes.
type TrimOptions struct {
	// StripX removes transparent columns from the left and right.
	StripX bool
	// StripY removes transparent rows from the top and bottom.
	StripY bool
	// AlphaThreshold is the alpha value at or below which a pixel counts as transparent.
	AlphaThreshold uint8
	// DuplicatePadding keeps one transparent pixel on each side that was trimmed.
	DuplicatePadding bool
}

// Bounds is the region of an image kept after trimming, relative to the image origin.
type Bounds struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Rect returns the bounds as a rectangle in the coordinate space of img.
func (b Bounds) Rect(img image.Image) image.Rectangle {
	origin := img.Bounds().Min
	return image.Rect(b.Left, b.Top, b.Left+b.Width, b.Top+b.Height).Add(origin)
}

// Trim computes the bounds of img with transparent rows and columns removed from its edges.
// Rows are trimmed first, and columns are only examined within the remaining rows. The
// returned boolean is false when the image is blank, so that nothing would be left.
func Trim(img *image.NRGBA, opts TrimOptions) (Bounds, bool) {
	size := img.Bounds().Size()
	top, bottom := 0, size.Y
	left, right := 0, size.X

	if opts.StripY {
		for top < bottom && rowEmpty(img, top, left, right, opts.AlphaThreshold) {
			top++
		}
		if top == bottom {
			return Bounds{}, false
		}
		for bottom > top && rowEmpty(img, bottom-1, left, right, opts.AlphaThreshold) {
			bottom--
		}
		if opts.DuplicatePadding {
			if top > 0 {
				top--
			}
			if bottom < size.Y {
				bottom++
			}
		}
	}

	if opts.StripX {
		for left < right && columnEmpty(img, left, top, bottom, opts.AlphaThreshold) {
			left++
		}
		if left == right {
			return Bounds{}, false
		}
		for right > left && columnEmpty(img, right-1, top, bottom, opts.AlphaThreshold) {
			right--
		}
		if opts.DuplicatePadding {
			if left > 0 {
				left--
			}
			if right < size.X {
				right++
			}
		}
	}

	bounds := Bounds{Left: left, Top: top, Width: right - left, Height: bottom - top}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return Bounds{}, false
	}
	return bounds, true
}

// alpha returns the alpha of the pixel at x, y relative to the image origin.
func alpha(img *image.NRGBA, x, y int) uint8 {
	origin := img.Bounds().Min
	return img.Pix[img.PixOffset(origin.X+x, origin.Y+y)+3]
}

// rowEmpty reports whether every pixel of row y in [x0, x1) is transparent.
func rowEmpty(img *image.NRGBA, y, x0, x1 int, threshold uint8) bool {
	for x := x0; x < x1; x++ {
		if alpha(img, x, y) > threshold {
			return false
		}
	}
	return true
}

// columnEmpty reports whether every pixel of column x in [y0, y1) is transparent.
func columnEmpty(img *image.NRGBA, x, y0, y1 int, threshold uint8) bool {
	for y := y0; y < y1; y++ {
		if alpha(img, x, y) > threshold {
			return false
		}
	}
	return true
}

// vim: ts=4
