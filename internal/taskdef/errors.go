package taskdef

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceNotFound indicates the input descriptor does not exist or cannot be read
	ErrResourceNotFound = errors.New("resource not found")

	// ErrMalformedInput indicates the input is not a JSON object or cannot be walked
	ErrMalformedInput = errors.New("malformed input")

	// ErrResourceWrite indicates the output descriptor could not be created or written
	ErrResourceWrite = errors.New("resource write failed")
)

// FileError records a failed load or save together with the path involved.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a FileError whose cause matches kind under errors.Is.
// A nil cause yields an error that only carries kind.
func NewFileError(op, path string, kind, cause error) *FileError {
	err := kind
	if cause != nil {
		err = fmt.Errorf("%w: %w", kind, cause)
	}
	return &FileError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// malformed builds an ErrMalformedInput with a description of what was wrong.
func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}
