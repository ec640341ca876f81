package analyze

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// NinePatchSuffix marks a source image as a nine-patch when it ends the name, e.g. "button.9".
const NinePatchSuffix = ".9"

// NinePatchError reports a pixel inside a nine-patch marker run that is neither opaque black nor
// fully transparent.
type NinePatchError struct {
	Name  string
	X     int
	Y     int
	Color color.NRGBA
}

// Error implements the error interface.
func (e *NinePatchError) Error() string {
	msg := fmt.Sprintf("invalid nine-patch pixel at %d, %d: rgba(%d, %d, %d, %d)",
		e.X, e.Y, e.Color.R, e.Color.G, e.Color.B, e.Color.A)
	if e.Name != "" {
		return e.Name + ": " + msg
	}
	return msg
}

var markerBlack = color.NRGBA{A: 255}

// SplitNinePatchName strips the nine-patch suffix from name, reporting whether it was present.
func SplitNinePatchName(name string) (string, bool) {
	if base, ok := strings.CutSuffix(name, NinePatchSuffix); ok {
		return base, true
	}
	return name, false
}

// Splits reads the stretch region from the top row and left column of a nine-patch image that
// still has its 1px marker border. The result is left, right, top, bottom in the coordinates of
// the image with the border removed, where right and bottom are distances from the far edge. An
// axis without markers stretches fully. Returns nil when neither axis has markers.
func Splits(img *image.NRGBA) (*[4]int, error) {
	size := img.Bounds().Size()

	startX, err := splitPoint(img, 1, 0, true, true)
	if err != nil {
		return nil, err
	}
	endX, err := splitPoint(img, startX, 0, false, true)
	if err != nil {
		return nil, err
	}
	startY, err := splitPoint(img, 0, 1, true, false)
	if err != nil {
		return nil, err
	}
	endY, err := splitPoint(img, 0, startY, false, false)
	if err != nil {
		return nil, err
	}

	if startX == 0 && endX == 0 && startY == 0 && endY == 0 {
		return nil, nil
	}

	left, right := splitAxis(startX, endX, size.X)
	top, bottom := splitAxis(startY, endY, size.Y)
	return &[4]int{left, right, top, bottom}, nil
}

// Pads reads the content padding from the bottom row and right column of a nine-patch image that
// still has its 1px marker border, in the same layout as Splits. An axis without markers is
// reported as -1, -1. Returns nil when there are no markers at all, or when the pads are equal
// to splits.
func Pads(img *image.NRGBA, splits *[4]int) (*[4]int, error) {
	size := img.Bounds().Size()
	bottomRow := size.Y - 1
	rightColumn := size.X - 1

	startX, err := splitPoint(img, 1, bottomRow, true, true)
	if err != nil {
		return nil, err
	}
	startY, err := splitPoint(img, rightColumn, 1, true, false)
	if err != nil {
		return nil, err
	}

	var endX, endY int
	if startX != 0 {
		if endX, err = splitPoint(img, startX+1, bottomRow, false, true); err != nil {
			return nil, err
		}
	}
	if startY != 0 {
		if endY, err = splitPoint(img, rightColumn, startY+1, false, false); err != nil {
			return nil, err
		}
	}

	if startX == 0 && endX == 0 && startY == 0 && endY == 0 {
		return nil, nil
	}

	left, right := -1, -1
	if startX != 0 || endX != 0 {
		left, right = splitAxis(startX, endX, size.X)
	}
	top, bottom := -1, -1
	if startY != 0 || endY != 0 {
		top, bottom = splitAxis(startY, endY, size.Y)
	}

	pads := &[4]int{left, right, top, bottom}
	if splits != nil && *pads == *splits {
		return nil, nil
	}
	return pads, nil
}

// splitAxis converts the raw start and end of a marker run into a start offset and a distance
// from the far edge, both relative to the image with its border removed.
func splitAxis(start, end, length int) (int, int) {
	if start == 0 {
		return 0, length - 2
	}
	return start - 1, length - 2 - (end - 1)
}

// splitPoint follows the row (xAxis) or column through x, y from the given coordinate, and
// returns the position of the first opaque pixel when start is set, or of the first transparent
// pixel otherwise. Zero is returned when there is none, as position 0 lies in the border corner
// and is never a valid marker. While looking for the end of a run, any pixel that is not opaque
// black is an error.
func splitPoint(img *image.NRGBA, x, y int, start, xAxis bool) (int, error) {
	bounds := img.Bounds()
	next, end := y, bounds.Dy()
	if xAxis {
		next, end = x, bounds.Dx()
	}

	var want uint8
	if start {
		want = 255
	}

	for ; next < end; next++ {
		if xAxis {
			x = next
		} else {
			y = next
		}

		c := img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
		if c.A == want {
			return next, nil
		}
		if !start && c != markerBlack {
			return 0, &NinePatchError{X: x, Y: y, Color: c}
		}
	}
	return 0, nil
}

// vim: ts=4
