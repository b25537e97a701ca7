package fileops

import (
	"github.com/toyz/svcmaker/internal/errors"
)

// ErrorWrapper provides consistent error wrapping for file operations
type ErrorWrapper struct{}

// NewErrorWrapper creates a new ErrorWrapper instance
func NewErrorWrapper() *ErrorWrapper {
	return &ErrorWrapper{}
}

// WrapFileReadError wraps file reading errors with context
func (ew *ErrorWrapper) WrapFileReadError(filePath string, err error) error {
	return errors.WrapFileSystemError("read", filePath, err)
}

// WrapFileWriteError wraps file writing errors with context
func (ew *ErrorWrapper) WrapFileWriteError(filePath string, err error) error {
	return errors.WrapFileSystemError("write", filePath, err)
}

// WrapDirectoryCreateError wraps directory creation errors with context
func (ew *ErrorWrapper) WrapDirectoryCreateError(dirPath string, err error) error {
	return errors.WrapFileSystemError("create directory for", dirPath, err)
}

// WrapLockError wraps lock acquisition errors with context
func (ew *ErrorWrapper) WrapLockError(filePath string, err error) error {
	return errors.WrapFileSystemError("lock", filePath, err)
}

// WrapPathError wraps path validation errors with context
func (ew *ErrorWrapper) WrapPathError(filePath string, err error) error {
	return errors.Wrap(errors.ValidationErrorCode, "invalid path '"+filePath+"'", err)
}
