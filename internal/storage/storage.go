package storage

import (
	"os"

	"github.com/pkg/errors"
)

const DefaultFilePerm os.FileMode = 0666

type Closer func() error

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func OpenFile(path string) (*os.File, Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not open file %s", path)
	}

	return f, f.Close, nil
}

// CreateFile truncates or creates the file at path.
func CreateFile(path string, perm os.FileMode) (*os.File, Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, perm)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not create file %s", path)
	}

	return f, f.Close, nil
}

func FileSize(f *os.File) (int, error) {
	info, err := f.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "could not measure file %s size", f.Name())
	}

	size64 := info.Size()
	if int64(int(size64)) != size64 {
		return 0, errors.Errorf("file %s is too large", f.Name())
	}

	return int(size64), nil
}
