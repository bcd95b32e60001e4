package images

import (
	"crypto/md5"
	"fmt"
)

// Checksum generates a deterministic checksum of a pixel buffer.
//
// Arguments:
// - buf: The RGBA buffer to checksum.
//
// Returns:
// - A hex-encoded MD5 checksum string, or "empty" for a zero-length buffer.
//
// Example:
//
// ```go
//
//	checksum := Checksum(combined)
//	fmt.Printf("Output checksum: %s\n", checksum)
//
// ```
func Checksum(buf []byte) string {
	if len(buf) == 0 {
		return "empty"
	}

	hash := md5.New()
	hash.Write(buf)
	return fmt.Sprintf("%x", hash.Sum(nil))
}
