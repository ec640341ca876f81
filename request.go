package texpack

import "image"

// Request describes one image to be placed on a page.
//
// Width and Height are the trimmed size of the image, without padding. The packer inflates
// them by the configured padding internally and never modifies the request.
type Request struct {
	// Name is the stable identifier of the region, typically the file name without extension.
	Name string
	// Width is the trimmed width of the image.
	Width int
	// Height is the trimmed height of the image.
	Height int
	// Index is the number parsed from the name, or -1 when there is none.
	Index int
	// Splits contains the nine-patch stretch region as left, right, top, bottom.
	Splits *[4]int
	// Pads contains the nine-patch content padding as left, right, top, bottom.
	Pads *[4]int
	// OriginalWidth is the width of the image before trimming.
	OriginalWidth int
	// OriginalHeight is the height of the image before trimming.
	OriginalHeight int
	// OffsetX is the number of columns trimmed from the left.
	OffsetX int
	// OffsetY is the number of rows trimmed from the top.
	OffsetY int
	// Image contains the trimmed pixels. It may be nil when only the layout is required.
	Image *image.NRGBA
}

// Size returns the trimmed size of the request.
func (r *Request) Size() Size {
	return NewSize(r.Width, r.Height)
}

// Placement is the final location of a request on a page, in page image coordinates. Padding is
// not included in the size.
type Placement struct {
	Request *Request
	Rect
}

// Page is a single page of packed requests.
type Page struct {
	// Width is the final width of the page image, after edge padding, rounding and clamping.
	Width int
	// Height is the final height of the page image.
	Height int
	// Offset is the origin of the packed area within the page image, non-zero with edge padding.
	Offset Point
	// Content is the size of the packed area, excluding edge padding and rounding.
	Content Size
	// Placements lists the requests placed on the page, in placement order.
	Placements []Placement
	// Remaining lists the requests that were not placed on this page or any before it.
	Remaining []*Request
	// Occupancy is the ratio of the area used by the padded requests to the area of the page
	// they were packed into, in the range (0.0, 1.0].
	Occupancy float64
	// Heuristic is the heuristic that produced the page.
	Heuristic Heuristic
}

// vim: ts=4
