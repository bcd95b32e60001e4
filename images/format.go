package images

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ImageFormat represents the on-disk encoding of an image.
type ImageFormat string

const (
	FormatJPEG ImageFormat = "jpeg"
	FormatPNG  ImageFormat = "png"
	FormatGIF  ImageFormat = "gif"
	FormatBMP  ImageFormat = "bmp"
	FormatTIFF ImageFormat = "tiff"
	FormatWebP ImageFormat = "webp"
)

var (
	// ErrDifferentImageFormats is returned when two images do not share an encoding.
	ErrDifferentImageFormats = errors.New("different image formats")
	// ErrUnsupportedFormat is returned for encodings the codec cannot handle.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// extensions lists the canonical file extension for each format, first entry wins.
var extensions = map[ImageFormat][]string{
	FormatJPEG: {".jpg", ".jpeg"},
	FormatPNG:  {".png"},
	FormatGIF:  {".gif"},
	FormatBMP:  {".bmp"},
	FormatTIFF: {".tiff", ".tif"},
	FormatWebP: {".webp"},
}

// ParseFormat maps a codec name, as reported by image.Decode, to an ImageFormat.
//
// Arguments:
// - name: The registered codec name (e.g. "jpeg", "png").
//
// Returns:
// - The matching ImageFormat.
// - ErrUnsupportedFormat if the name is not one of the supported formats.
func ParseFormat(name string) (ImageFormat, error) {
	f := ImageFormat(strings.ToLower(name))
	if _, ok := extensions[f]; !ok {
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", name)
	}
	return f, nil
}

// Extension returns the canonical file extension for the format, including the dot.
func (f ImageFormat) Extension() string {
	if ext, ok := extensions[f]; ok {
		return ext[0]
	}
	return ""
}

// MatchesExtension reports whether path carries one of the format's extensions.
func (f ImageFormat) MatchesExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions[f] {
		if e == ext {
			return true
		}
	}
	return false
}

// EnsureFormatCompatibility verifies that two images share the same encoding.
// Combination must not proceed when it fails.
//
// Arguments:
// - a: The format of the first image.
// - b: The format of the second image.
//
// Returns:
// - nil if the formats are equal.
// - ErrDifferentImageFormats otherwise.
func EnsureFormatCompatibility(a, b ImageFormat) error {
	if a != b {
		return errors.Wrapf(ErrDifferentImageFormats, "%s != %s", a, b)
	}
	return nil
}
