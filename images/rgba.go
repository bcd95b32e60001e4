package images

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// BytesPerPixel is the width of one pixel in an RGBA buffer.
const BytesPerPixel = 4

// ToRGBABuffer flattens an image into 8-bit, non-premultiplied RGBA bytes, row-major,
// with no row padding. The result has length width × height × 4.
//
// Arguments:
// - img: Any decoded image; its color model is converted as needed.
//
// Returns:
// - A newly allocated buffer that does not alias img's pixel storage.
func ToRGBABuffer(img image.Image) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	// Tight, zero-origin NRGBA already has the exact layout.
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == w*BytesPerPixel {
		out := make([]byte, w*h*BytesPerPixel)
		copy(out, n.Pix)
		return out
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst.Pix
}

// FromRGBABuffer wraps an RGBA buffer produced by ToRGBABuffer as an image for encoding.
// The buffer is not copied.
func FromRGBABuffer(buf []byte, d Dimension) *image.NRGBA {
	return &image.NRGBA{
		Pix:    buf,
		Stride: int(d.Width) * BytesPerPixel,
		Rect:   image.Rect(0, 0, int(d.Width), int(d.Height)),
	}
}
