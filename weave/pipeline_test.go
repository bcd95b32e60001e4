package weave

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nvr-ai/go-weave/images"
	"github.com/nvr-ai/go-weave/logger"
)

type source struct {
	img    image.Image
	format images.ImageFormat
}

type encoded struct {
	path   string
	buf    []byte
	dim    images.Dimension
	format images.ImageFormat
}

// memCodec serves decoded images from memory and records encodes.
type memCodec struct {
	sources   map[string]source
	encodeErr error
	encoded   []encoded
}

func (m *memCodec) Decode(path string) (image.Image, images.ImageFormat, error) {
	s, ok := m.sources[path]
	if !ok {
		return nil, "", errors.Errorf("no such image: %s", path)
	}
	return s.img, s.format, nil
}

func (m *memCodec) Encode(path string, buf []byte, d images.Dimension, format images.ImageFormat) error {
	if m.encodeErr != nil {
		return m.encodeErr
	}
	m.encoded = append(m.encoded, encoded{path: path, buf: buf, dim: d, format: format})
	return nil
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

var (
	redPx  = color.NRGBA{R: 255, A: 255}
	bluePx = color.NRGBA{B: 255, A: 255}
)

func TestPipelineRun(t *testing.T) {
	codec := &memCodec{sources: map[string]source{
		"a.png": {img: solid(4, 4, redPx), format: images.FormatPNG},
		"b.png": {img: solid(4, 4, bluePx), format: images.FormatPNG},
	}}

	report, err := NewPipeline(codec, DefaultConfig(), logger.Nop()).Run(Request{
		ImageA: "a.png",
		ImageB: "b.png",
		Output: "combined",
	})
	require.NoError(t, err)
	require.Len(t, codec.encoded, 1)

	out := codec.encoded[0]
	assert.Equal(t, "combined.png", out.path, "missing extension is filled from the format")
	assert.Equal(t, images.FormatPNG, out.format)
	assert.Equal(t, images.Dimension{Width: 4, Height: 4}, out.dim)
	require.Len(t, out.buf, 64)
	assert.Equal(t, []byte{255, 0, 0, 255}, out.buf[0:4])
	assert.Equal(t, []byte{255, 0, 0, 255}, out.buf[4:8])
	assert.Equal(t, []byte{0, 0, 255, 255}, out.buf[8:12])
	assert.Equal(t, []byte{0, 0, 255, 255}, out.buf[12:16])

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, images.FormatPNG, report.Format)
	assert.Equal(t, images.Dimension{Width: 4, Height: 4}, report.Target)
	assert.Equal(t, 64, report.Bytes)
	assert.Equal(t, images.Checksum(out.buf), report.Checksum)
	assert.Equal(t, "combined.png", report.Output)

	var names []string
	for _, s := range report.Stages {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"decode image-1", "decode image-2", "normalize", "extract", "interleave", "encode"}, names)
}

func TestPipelineResizesLargerImage(t *testing.T) {
	codec := &memCodec{sources: map[string]source{
		"a.jpg": {img: solid(10, 10, redPx), format: images.FormatJPEG},
		"b.jpg": {img: solid(5, 5, bluePx), format: images.FormatJPEG},
	}}

	for _, r := range []images.Resampler{images.ResamplerNFNT, images.ResamplerXDraw} {
		t.Run(string(r), func(t *testing.T) {
			codec.encoded = nil
			cfg := DefaultConfig()
			cfg.Resampler = r

			report, err := NewPipeline(codec, cfg, nil).Run(Request{ImageA: "a.jpg", ImageB: "b.jpg", Output: "out.jpg"})
			require.NoError(t, err)

			assert.Equal(t, images.Dimension{Width: 10, Height: 10}, report.SourceA)
			assert.Equal(t, images.Dimension{Width: 5, Height: 5}, report.SourceB)
			assert.Equal(t, images.Dimension{Width: 5, Height: 5}, report.Target)
			require.Len(t, codec.encoded, 1)
			assert.Len(t, codec.encoded[0].buf, 100)
			assert.Equal(t, "out.jpg", codec.encoded[0].path)
		})
	}
}

func TestPipelineErrors(t *testing.T) {
	big := solid(64, 64, redPx)

	tests := []struct {
		name    string
		sources map[string]source
		cfg     func(*Config)
		encErr  error
		target  error
		stage   string
	}{
		{
			name: "different formats",
			sources: map[string]source{
				"a": {img: solid(2, 2, redPx), format: images.FormatPNG},
				"b": {img: solid(2, 2, redPx), format: images.FormatJPEG},
			},
			target: images.ErrDifferentImageFormats,
			stage:  "format guard",
		},
		{
			name: "buffer exceeds reservation",
			sources: map[string]source{
				"a": {img: big, format: images.FormatPNG},
				"b": {img: big, format: images.FormatPNG},
			},
			cfg:    func(c *Config) { c.MaxBufferBytes = 1024 },
			target: ErrBufferTooSmall,
			stage:  "set data",
		},
		{
			name: "buffer reservation above the limit",
			sources: map[string]source{
				"a": {img: big, format: images.FormatPNG},
				"b": {img: big, format: images.FormatPNG},
			},
			cfg:   func(c *Config) { c.MaxBufferBytes = MaxCapacity + 1 },
			stage: "config",
		},
		{
			name: "zero area",
			sources: map[string]source{
				"a": {img: image.NewNRGBA(image.Rect(0, 0, 0, 0)), format: images.FormatPNG},
				"b": {img: big, format: images.FormatPNG},
			},
			target: images.ErrZeroArea,
			stage:  "normalize",
		},
		{
			name: "missing second image",
			sources: map[string]source{
				"a": {img: big, format: images.FormatPNG},
			},
			stage: "decode image-2",
		},
		{
			name: "encoder failure",
			sources: map[string]source{
				"a": {img: big, format: images.FormatPNG},
				"b": {img: big, format: images.FormatPNG},
			},
			encErr: errors.New("disk full"),
			stage:  "encode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := &memCodec{sources: tt.sources, encodeErr: tt.encErr}
			cfg := DefaultConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}

			report, err := NewPipeline(codec, cfg, logger.Nop()).Run(Request{ImageA: "a", ImageB: "b", Output: "out"})
			require.Error(t, err)
			assert.Nil(t, report)
			assert.Contains(t, err.Error(), tt.stage)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
			assert.Empty(t, codec.encoded, "nothing may be encoded after a failure")
		})
	}
}

func TestPipelineCapacityHint(t *testing.T) {
	big := solid(64, 64, redPx)
	codec := &memCodec{sources: map[string]source{
		"a": {img: big, format: images.FormatPNG},
		"b": {img: big, format: images.FormatPNG},
	}}
	cfg := DefaultConfig()
	cfg.MaxBufferBytes = 1024
	enforce := false
	cfg.EnforceCapacity = &enforce

	report, err := NewPipeline(codec, cfg, nil).Run(Request{ImageA: "a", ImageB: "b", Output: "out.png"})
	require.NoError(t, err)
	assert.Equal(t, 64*64*4, report.Bytes)
}

func TestPipelineWarnsOnExtensionMismatch(t *testing.T) {
	tests := []struct {
		output   string
		wantWarn bool
	}{
		{output: "out.jpeg", wantWarn: true},
		{output: "out.png", wantWarn: false},
		{output: "out", wantWarn: false},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			codec := &memCodec{sources: map[string]source{
				"a": {img: solid(2, 2, redPx), format: images.FormatPNG},
				"b": {img: solid(2, 2, bluePx), format: images.FormatPNG},
			}}
			core, logs := observer.New(zapcore.WarnLevel)

			_, err := NewPipeline(codec, DefaultConfig(), zap.New(core)).Run(Request{ImageA: "a", ImageB: "b", Output: tt.output})
			require.NoError(t, err)
			require.Len(t, codec.encoded, 1)
			assert.Equal(t, images.FormatPNG, codec.encoded[0].format, "the input format is always used")

			warnings := logs.FilterMessage("output extension does not match encoding; writing anyway")
			if tt.wantWarn {
				require.Equal(t, 1, warnings.Len())
				assert.Equal(t, "png", warnings.All()[0].ContextMap()["format"])
			} else {
				assert.Equal(t, 0, warnings.Len())
			}
		})
	}
}
