package fileops

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/toyz/svcmaker/internal/errors"
)

const (
	filePerm = 0644
	dirPerm  = 0755
)

// FileOps reads and writes project files. Every path it accepts is relative
// to the project root.
type FileOps struct {
	pathValidator *PathValidator
	errorWrapper  *ErrorWrapper
}

// NewFileOps creates a FileOps rooted at the given project directory
func NewFileOps(root string) *FileOps {
	return &FileOps{
		pathValidator: NewPathValidator(root),
		errorWrapper:  NewErrorWrapper(),
	}
}

// Exists reports whether a file is present at path
func (f *FileOps) Exists(path string) (bool, error) {
	full, err := f.pathValidator.Resolve(path)
	if err != nil {
		return false, f.errorWrapper.WrapPathError(path, err)
	}
	exists, err := f.pathValidator.Exists(full)
	if err != nil {
		return false, f.errorWrapper.WrapFileReadError(path, err)
	}
	return exists, nil
}

// ReadFile returns the content of the file at path
func (f *FileOps) ReadFile(path string) (string, error) {
	full, err := f.pathValidator.Resolve(path)
	if err != nil {
		return "", f.errorWrapper.WrapPathError(path, err)
	}
	content, err := os.ReadFile(full)
	if err != nil {
		return "", f.errorWrapper.WrapFileReadError(path, err)
	}
	return string(content), nil
}

// CreateFile writes content to a new file, creating parent directories as
// needed. An existing file is never overwritten; kind names the artifact in
// the resulting AlreadyExists error.
func (f *FileOps) CreateFile(path, kind, content string) error {
	full, err := f.pathValidator.Resolve(path)
	if err != nil {
		return f.errorWrapper.WrapPathError(path, err)
	}

	if err := os.MkdirAll(filepath.Dir(full), dirPerm); err != nil {
		return f.errorWrapper.WrapDirectoryCreateError(path, err)
	}

	file, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return errors.NewAlreadyExists(kind, path)
		}
		return f.errorWrapper.WrapFileWriteError(path, err)
	}

	if _, err := file.WriteString(content); err != nil {
		file.Close()
		os.Remove(full)
		return f.errorWrapper.WrapFileWriteError(path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(full)
		return f.errorWrapper.WrapFileWriteError(path, err)
	}
	return nil
}

// ReplaceFile atomically replaces the content of the file at path. The new
// content is written to a sibling temp file that is renamed over the target,
// so readers see either the old or the new document.
func (f *FileOps) ReplaceFile(path, content string) error {
	full, err := f.pathValidator.Resolve(path)
	if err != nil {
		return f.errorWrapper.WrapPathError(path, err)
	}

	perm := os.FileMode(filePerm)
	if info, err := os.Stat(full); err == nil {
		perm = info.Mode().Perm()
	}

	tmp := filepath.Join(filepath.Dir(full), "."+filepath.Base(full)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, []byte(content), perm); err != nil {
		os.Remove(tmp)
		return f.errorWrapper.WrapFileWriteError(path, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		os.Remove(tmp)
		return f.errorWrapper.WrapFileWriteError(path, err)
	}
	return nil
}
