// Package weave combines two equally sized RGBA buffers into one image.
package weave

import (
	"fmt"

	"github.com/nvr-ai/go-weave/images"
)

// sourceMask is the byte-offset bit that selects the source buffer for a pixel.
// With a 4-byte stride the selection flips every 8 bytes: pixels 0-1 come from the
// first buffer, 2-3 from the second, 4-5 from the first, and so on.
const sourceMask = 8

// InvariantError describes a violated precondition of the interleaver. It is raised
// with panic, never returned: callers are expected to uphold the preconditions by
// normalizing both images first.
type InvariantError struct {
	Reason string
	Index  int
	LenA   int
	LenB   int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("interleave invariant violated: %s (index=%d, len_a=%d, len_b=%d)",
		e.Reason, e.Index, e.LenA, e.LenB)
}

// Combine interleaves two RGBA buffers. For each 4-byte pixel at byte offset i the
// output takes a's pixel when i&8 == 0 and b's pixel otherwise. Pixels are copied
// whole; channels are never mixed.
//
// Combine panics with *InvariantError if the buffers differ in length or their
// length is not a whole number of pixels.
func Combine(a, b []byte) []byte {
	if len(a) != len(b) {
		panic(&InvariantError{Reason: "buffer lengths differ", LenA: len(a), LenB: len(b)})
	}
	if len(a)%images.BytesPerPixel != 0 {
		panic(&InvariantError{Reason: "length is not a whole number of pixels", LenA: len(a), LenB: len(b)})
	}

	out := make([]byte, len(a))
	for i := 0; i < len(out); i += images.BytesPerPixel {
		src := a
		if i&sourceMask != 0 {
			src = b
		}
		copy(out[i:i+images.BytesPerPixel], pixelAt(src, i, len(a), len(b)))
	}

	return out
}

func pixelAt(buf []byte, i, lenA, lenB int) []byte {
	if i < 0 || i+images.BytesPerPixel > len(buf) {
		panic(&InvariantError{Reason: "pixel index out of bounds", Index: i, LenA: lenA, LenB: lenB})
	}
	return buf[i : i+images.BytesPerPixel]
}
