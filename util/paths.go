package util

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-weave/images"
)

// ValidateInputFile checks that path names an existing regular file.
//
// Arguments:
// - path: The input image path.
//
// Returns:
// - error: An error if the path is empty, missing, or a directory.
func ValidateInputFile(path string) error {
	if path == "" {
		return errors.New("empty image path")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return errors.Errorf("file not found: %s", path)
	}
	if err != nil {
		return errors.Wrapf(err, "stat %s", path)
	}
	if info.IsDir() {
		return errors.Errorf("not a file: %s", path)
	}

	return nil
}

// ResolveOutputPath appends the format's canonical extension to name when name has
// no extension. Names that already carry an extension are returned unchanged, even
// if the extension disagrees with the format.
//
// Arguments:
// - name: The output name given by the user.
// - format: The format the output will be encoded in.
//
// Returns:
// - string: The path to write.
func ResolveOutputPath(name string, format images.ImageFormat) string {
	if filepath.Ext(name) != "" {
		return name
	}
	return name + format.Extension()
}
