package images

import (
	"bufio"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DefaultJPEGQuality is the quality used when EncodeOptions leaves it unset.
const DefaultJPEGQuality = 90

// EncodeOptions tunes the lossy encoders.
type EncodeOptions struct {
	// JPEGQuality is the JPEG quality, 1-100.
	JPEGQuality int
	// WebPLossless selects lossless WebP output.
	WebPLossless bool
}

// FileCodec decodes images from and encodes images to the local filesystem.
// Formats are detected from file content, not the extension.
type FileCodec struct {
	Options EncodeOptions
}

// NewFileCodec creates a filesystem codec.
func NewFileCodec(opts EncodeOptions) *FileCodec {
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = DefaultJPEGQuality
	}
	return &FileCodec{Options: opts}
}

// Decode reads and decodes the image at path.
//
// Arguments:
// - path: The image file to read.
//
// Returns:
// - The decoded image.
// - The detected format.
// - An error if the file is unreadable, undecodable, or in an unsupported format.
func (c *FileCodec) Decode(path string) (image.Image, ImageFormat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "open image")
	}
	defer f.Close()

	img, name, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, "", errors.Wrapf(err, "decode %s", path)
	}

	format, err := ParseFormat(name)
	if err != nil {
		return nil, "", err
	}

	return img, format, nil
}

// Encode writes an RGBA buffer of the given dimension to path in the given format.
// The buffer holds non-premultiplied 8-bit RGBA pixels, row-major. The file is
// written to a temporary sibling and renamed into place, so a failed encode leaves
// nothing at path.
//
// Arguments:
// - path: The destination file.
// - buf: The pixel data, len(buf) == width × height × 4.
// - d: The image dimension.
// - format: The output encoding.
//
// Returns:
// - An error if the buffer does not match the dimension.
// - ErrUnsupportedFormat for an unknown format, or an error if writing fails.
func (c *FileCodec) Encode(path string, buf []byte, d Dimension, format ImageFormat) (err error) {
	if uint64(len(buf)) != d.Area()*BytesPerPixel {
		return errors.Errorf("buffer holds %d bytes, %s needs %d", len(buf), d, d.Area()*BytesPerPixel)
	}
	if format.Extension() == "" {
		return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".weave-*"+format.Extension())
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = c.encode(w, FromRGBABuffer(buf, d), format); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "encode %s", format)
	}
	if err = w.Flush(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "flush output")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "close output")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "rename output")
	}

	return nil
}

func (c *FileCodec) encode(w io.Writer, img image.Image, format ImageFormat) error {
	switch format {
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: c.Options.JPEGQuality})
	case FormatPNG:
		return png.Encode(w, img)
	case FormatGIF:
		return gif.Encode(w, img, nil)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatWebP:
		return webp.Encode(w, img, &webp.Options{
			Lossless: c.Options.WebPLossless,
			Quality:  float32(c.Options.JPEGQuality),
		})
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
}
