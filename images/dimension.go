package images

import (
	"fmt"
	"image"
)

// Dimension is a (width, height) pair in pixels.
type Dimension struct {
	Width  uint `json:"width" yaml:"width"`
	Height uint `json:"height" yaml:"height"`
}

// DimensionOf returns the dimension of an image's bounds.
func DimensionOf(img image.Image) Dimension {
	b := img.Bounds()
	return Dimension{Width: uint(b.Dx()), Height: uint(b.Dy())}
}

// Area returns width × height. Computed in 64 bits so large rasters do not wrap.
func (d Dimension) Area() uint64 {
	return uint64(d.Width) * uint64(d.Height)
}

// Empty reports whether either side is zero.
func (d Dimension) Empty() bool {
	return d.Width == 0 || d.Height == 0
}

// String returns the dimension as "WxH".
func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// SmallestArea returns whichever dimension has the smaller area.
// Ties resolve to b.
//
// Arguments:
// - a: The first dimension.
// - b: The second dimension.
//
// Returns:
// - a if a.Area() < b.Area(), otherwise b.
//
// @example
// SmallestArea(Dimension{10, 10}, Dimension{5, 5}) // {5 5}
// SmallestArea(Dimension{2, 8}, Dimension{4, 4})   // {4 4}
func SmallestArea(a, b Dimension) Dimension {
	if a.Area() < b.Area() {
		return a
	}
	return b
}
