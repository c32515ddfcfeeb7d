package imageupload

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File is a selected local file.
type File interface {
	Name() string
	Size() int64
	Open() (io.ReadCloser, error)
}

type bytesFile struct {
	name string
	data []byte
}

// BytesFile wraps in-memory content as a File.
func BytesFile(name string, data []byte) File {
	return bytesFile{name: name, data: data}
}

func (f bytesFile) Name() string { return f.name }

func (f bytesFile) Size() int64 { return int64(len(f.data)) }

func (f bytesFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

type osFile struct {
	path string
	size int64
}

// OSFile returns the regular file at path as a File.
func OSFile(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	return osFile{path: path, size: info.Size()}, nil
}

func (f osFile) Name() string { return filepath.Base(f.path) }

func (f osFile) Size() int64 { return f.size }

func (f osFile) Open() (io.ReadCloser, error) {
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	return fh, nil
}
