package weave

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-weave/images"
)

const (
	// DefaultCapacity is the byte reservation of a new OutputContainer (8 MiB).
	DefaultCapacity = 8 * 1024 * 1024
	// MaxCapacity is the largest reservation a config may ask for, just under 2 GiB.
	MaxCapacity = 1<<31 - 1
)

// ErrBufferTooSmall is returned when data exceeds the container's reservation.
var ErrBufferTooSmall = errors.New("buffer too small")

// OutputContainer holds the combined pixel buffer together with the dimension and
// destination name it will be encoded with.
type OutputContainer struct {
	Width  uint
	Height uint
	Name   string

	data    []byte
	enforce bool
}

// ContainerOption configures an OutputContainer.
type ContainerOption func(*containerOptions)

type containerOptions struct {
	capacity int
	enforce  bool
}

// WithCapacity overrides the byte reservation. Non-positive values keep the default.
func WithCapacity(n int) ContainerOption {
	return func(o *containerOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithoutCapacityLimit turns the reservation into an allocation hint: SetData accepts
// buffers of any size.
func WithoutCapacityLimit() ContainerOption {
	return func(o *containerOptions) {
		o.enforce = false
	}
}

// NewOutputContainer reserves capacity for the output buffer. The buffer starts empty.
func NewOutputContainer(width, height uint, name string, opts ...ContainerOption) *OutputContainer {
	o := containerOptions{capacity: DefaultCapacity, enforce: true}
	for _, opt := range opts {
		opt(&o)
	}

	return &OutputContainer{
		Width:   width,
		Height:  height,
		Name:    name,
		data:    make([]byte, 0, o.capacity),
		enforce: o.enforce,
	}
}

// SetData replaces the stored buffer. With the limit enforced (the default) it fails
// with ErrBufferTooSmall when len(data) exceeds the current reservation, and the
// stored buffer is left untouched.
func (c *OutputContainer) SetData(data []byte) error {
	if c.enforce && len(data) > cap(c.data) {
		return errors.Wrapf(ErrBufferTooSmall, "%d bytes exceeds reserved %d", len(data), cap(c.data))
	}

	c.data = data
	return nil
}

// Data returns the stored buffer.
func (c *OutputContainer) Data() []byte {
	return c.data
}

// Capacity returns the current reservation in bytes.
func (c *OutputContainer) Capacity() int {
	return cap(c.data)
}

// Dimension returns the declared output dimension.
func (c *OutputContainer) Dimension() images.Dimension {
	return images.Dimension{Width: c.Width, Height: c.Height}
}
