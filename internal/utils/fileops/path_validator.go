package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator resolves project-relative paths and keeps them inside the root
type PathValidator struct {
	root string
}

// NewPathValidator creates a PathValidator for the given project root
func NewPathValidator(root string) *PathValidator {
	return &PathValidator{root: filepath.Clean(root)}
}

// Resolve joins a project-relative path onto the root. Absolute paths are
// accepted when they lie inside the root.
func (pv *PathValidator) Resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	full := filepath.Clean(path)
	if !filepath.IsAbs(full) {
		full = filepath.Join(pv.root, full)
	}

	rel, err := filepath.Rel(pv.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal not allowed in file path: %s", path)
	}

	return full, nil
}

// Exists checks if a resolved path exists
func (pv *PathValidator) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
