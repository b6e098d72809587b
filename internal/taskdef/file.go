package taskdef

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

// LoadFile reads and parses the descriptor at path.
func LoadFile(fs afero.Fs, path string) (*Document, error) {
	data, err := readFile(fs, path)
	if err != nil {
		return nil, NewFileError("read", path, ErrResourceNotFound, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, &FileError{Op: "parse", Path: path, Err: err}
	}
	return doc, nil
}

func readFile(fs afero.Fs, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// SaveFile writes doc to path, truncating any existing file.
func SaveFile(fs afero.Fs, path string, doc *Document) (err error) {
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return NewFileError("write", path, ErrResourceWrite, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = NewFileError("write", path, ErrResourceWrite, cerr)
		}
	}()

	if _, err := f.Write(doc.Bytes()); err != nil {
		return NewFileError("write", path, ErrResourceWrite, err)
	}
	return nil
}
