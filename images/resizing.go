package images

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
)

// ErrZeroArea is returned when an image has no pixels along either axis.
var ErrZeroArea = errors.New("image has zero area")

// Resampler selects the triangle-class filter implementation used for exact resizes.
type Resampler string

const (
	// ResamplerNFNT resizes with github.com/nfnt/resize using its bilinear (triangle) kernel.
	ResamplerNFNT Resampler = "nfnt"
	// ResamplerXDraw resizes with golang.org/x/image/draw's BiLinear scaler.
	ResamplerXDraw Resampler = "xdraw"
)

// ParseResampler validates a resampler name. An empty name selects ResamplerNFNT.
func ParseResampler(name string) (Resampler, error) {
	switch Resampler(name) {
	case "", ResamplerNFNT:
		return ResamplerNFNT, nil
	case ResamplerXDraw:
		return ResamplerXDraw, nil
	default:
		return "", errors.Errorf("unknown resampler %q", name)
	}
}

// ResizeExact resamples img to exactly the target dimension. The source aspect
// ratio is not preserved.
//
// Arguments:
// - img: The source image.
// - target: The output dimension; both sides must be positive.
//
// Returns:
// - A new image with bounds (0, 0, target.Width, target.Height).
//
// @example
// thumb := ResamplerNFNT.ResizeExact(src, Dimension{Width: 5, Height: 5})
func (r Resampler) ResizeExact(img image.Image, target Dimension) image.Image {
	switch r {
	case ResamplerXDraw:
		dst := image.NewRGBA(image.Rect(0, 0, int(target.Width), int(target.Height)))
		xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		return dst
	default:
		// nfnt/resize treats a zero side as "keep aspect ratio"; callers never pass one.
		return resize.Resize(target.Width, target.Height, img, resize.Bilinear)
	}
}

// NormalizeSizes brings two images to the same dimension: the one with the smaller
// area (ties go to b). Whichever image does not already match that target is resized
// down to it; the other is returned unchanged.
//
// Arguments:
// - a: The first image.
// - b: The second image.
// - r: The resampler to use for the resize.
//
// Returns:
// - The two images, now sharing a dimension.
// - ErrZeroArea if either input has a zero side.
func NormalizeSizes(a, b image.Image, r Resampler) (image.Image, image.Image, error) {
	da, db := DimensionOf(a), DimensionOf(b)
	if da.Empty() {
		return nil, nil, errors.Wrapf(ErrZeroArea, "first image is %s", da)
	}
	if db.Empty() {
		return nil, nil, errors.Wrapf(ErrZeroArea, "second image is %s", db)
	}

	target := SmallestArea(da, db)
	if da != target {
		a = r.ResizeExact(a, target)
	}
	if db != target {
		b = r.ResizeExact(b, target)
	}

	return a, b, nil
}
