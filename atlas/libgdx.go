package atlas

import (
	"bufio"
	"fmt"
	"io"
)

// WriteLibGDX writes the libgdx text manifest of the sheets. Coordinates are measured from the
// top-left corner of the page image.
func WriteLibGDX(w io.Writer, sheets []Sheet) error {
	bw := bufio.NewWriter(w)
	for _, sheet := range sheets {
		size := sheet.Image.Bounds().Size()
		fmt.Fprintf(bw, "\n%s\n", sheet.Name)
		fmt.Fprintf(bw, "size: %d,%d\n", size.X, size.Y)
		fmt.Fprint(bw, "format: RGBA8888\n")
		fmt.Fprint(bw, "filter: Nearest,Nearest\n")
		fmt.Fprint(bw, "repeat: none\n")

		for _, region := range sheet.Regions {
			writeLibGDXRegion(bw, region)
		}
	}
	return bw.Flush()
}

func writeLibGDXRegion(w io.Writer, r Region) {
	fmt.Fprintf(w, "%s\n", r.Name)
	fmt.Fprintf(w, "  rotate: %t\n", r.Rotated)
	fmt.Fprintf(w, "  xy: %d, %d\n", r.X, r.Y)
	fmt.Fprintf(w, "  size: %d, %d\n", r.Width, r.Height)
	if r.Splits != nil {
		fmt.Fprintf(w, "  split: %d, %d, %d, %d\n", r.Splits[0], r.Splits[1], r.Splits[2], r.Splits[3])
	}
	if r.Pads != nil {
		// Readers expect a split before a pad.
		if r.Splits == nil {
			fmt.Fprint(w, "  split: 0, 0, 0, 0\n")
		}
		fmt.Fprintf(w, "  pad: %d, %d, %d, %d\n", r.Pads[0], r.Pads[1], r.Pads[2], r.Pads[3])
	}
	fmt.Fprintf(w, "  orig: %d, %d\n", r.OriginalWidth, r.OriginalHeight)
	fmt.Fprintf(w, "  offset: %d, %d\n", r.OffsetX, r.OffsetY)
	fmt.Fprintf(w, "  index: %d\n", r.Index)
}

// vim: ts=4
