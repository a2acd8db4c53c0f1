// Package output lays out generated certificates on disk.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot indicates a certificate path that leaves the output root.
var ErrOutsideRoot = errors.New("path outside output root")

// ImageExt is the extension of generated certificate images.
const ImageExt = ".png"

// BatchDir returns the folder holding one batch's certificates.
func BatchDir(root, batch string) string {
	return filepath.Join(root, batch)
}

// CertificatePath returns <root>/<batch>/<email>.png.
func CertificatePath(root, batch, email string) string {
	return filepath.Join(BatchDir(root, batch), email+ImageExt)
}

// CheckWithin fails with ErrOutsideRoot unless path lies below root.
func CheckWithin(root, path string) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutsideRoot, path, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return nil
}

// EnsureDir creates dir and its parents when it does not exist yet.
// It reports whether the directory was created.
func EnsureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", dir)
		}
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create directory: %w", err)
	}
	return true, nil
}
