package texpack

import "fmt"

// Point describes a location on a page, with the origin at the top-left corner.
type Point struct {
	// X is the location on the horizontal x-axis.
	X int `json:"x"`
	// Y is the location on the vertical y-axis.
	Y int `json:"y"`
}

// Size describes the dimensions of an entity on a page.
type Size struct {
	// Width is the dimension on the horizontal x-axis.
	Width int `json:"width"`
	// Height is the dimension on the vertical y-axis.
	Height int `json:"height"`
}

// NewSize creates a new size with specified dimensions.
func NewSize(width, height int) Size {
	return Size{Width: width, Height: height}
}

// Area returns the total area (width * height).
func (sz Size) Area() int {
	return sz.Width * sz.Height
}

// MaxSide returns the value of the greater side.
func (sz Size) MaxSide() int {
	return max(sz.Width, sz.Height)
}

// MinSide returns the value of the lesser side.
func (sz Size) MinSide() int {
	return min(sz.Width, sz.Height)
}

// String returns a string representation of the size.
func (sz Size) String() string {
	return fmt.Sprintf("%dx%d", sz.Width, sz.Height)
}

// Rect describes a location (top-left corner) and size on a page. The same type is used for
// free rectangles of the packer and for placed rectangles.
type Rect struct {
	// Point is the location of the rectangle.
	Point
	// Size is the dimensions of the rectangle.
	Size
	// Rotated indicates the rectangle was turned 90 degrees to achieve a better fit. Rotation is
	// never enabled by the packer, so this is always false for now.
	Rotated bool `json:"rotated,omitempty"`
}

// NewRect initializes a new rectangle using the specified point and size values.
func NewRect(x, y, w, h int) Rect {
	return Rect{
		Point: Point{X: x, Y: y},
		Size:  Size{Width: w, Height: h},
	}
}

// String returns a string describing the rectangle.
func (r Rect) String() string {
	return fmt.Sprintf("<%v, %v, %v, %v>", r.X, r.Y, r.Width, r.Height)
}

// Right returns the coordinate of the right-edge of the rectangle on the x-axis.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the coordinate of the bottom-edge of the rectangle on the y-axis.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// ContainsRect tests whether the specified rectangle is contained within the bounds of the
// receiver. A rectangle contains itself.
func (r Rect) ContainsRect(rect Rect) bool {
	return r.X <= rect.X &&
		rect.X+rect.Width <= r.X+r.Width &&
		r.Y <= rect.Y &&
		rect.Y+rect.Height <= r.Y+r.Height
}

// Intersects tests whether the interiors of the receiver and the specified rectangle overlap.
// Rectangles that merely share an edge do not intersect.
func (r Rect) Intersects(rect Rect) bool {
	return rect.X < r.X+r.Width &&
		r.X < rect.X+rect.Width &&
		rect.Y < r.Y+r.Height &&
		r.Y < rect.Y+rect.Height
}

// IsEmpty tests whether the width or height of the rectangle is less than 1.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// vim: ts=4
