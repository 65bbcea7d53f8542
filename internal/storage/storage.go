package storage

import (
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Storage is the durable blob store. It accepts a byte stream plus a logical
// path and returns the stored reference. Backed by the local filesystem in
// production and an in-memory fs in tests.
type Storage struct {
	fs   afero.Fs
	root string
}

func New(root string) (*Storage, error) {
	fs := afero.NewOsFs()
	if err := fs.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed create upload dir")
	}
	return &Storage{fs: afero.NewBasePathFs(fs, root), root: root}, nil
}

// NewWithFs wires an arbitrary afero filesystem, used by tests.
func NewWithFs(fs afero.Fs) *Storage {
	return &Storage{fs: fs}
}

// Store writes the blob under the logical path's directory with a uuid
// prefix on the file name, so repeated uploads of the same name never
// collide. Returns the stored reference.
func (s *Storage) Store(r io.Reader, logicalPath string) (string, error) {
	dst, err := normalizePath(logicalPath)
	if err != nil {
		return "", err
	}
	dir, name := path.Split(dst)
	stored := path.Join(dir, uuid.NewString()[:8]+"_"+name)
	if dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrapf(err, "failed create dir %s", dir)
		}
	}
	f, err := s.fs.Create(stored)
	if err != nil {
		return "", errors.Wrapf(err, "failed create %s", stored)
	}
	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(stored)
		return "", errors.Wrapf(err, "failed write %s", stored)
	}
	if err = f.Close(); err != nil {
		_ = s.fs.Remove(stored)
		return "", errors.Wrapf(err, "failed close %s", stored)
	}
	return stored, nil
}

// Remove deletes a stored blob. Used to undo a partially written batch.
func (s *Storage) Remove(storedPath string) error {
	dst, err := normalizePath(storedPath)
	if err != nil {
		return err
	}
	return errors.WithStack(s.fs.Remove(dst))
}

func (s *Storage) Open(storedPath string) (io.ReadCloser, error) {
	dst, err := normalizePath(storedPath)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(dst)
	return f, errors.WithStack(err)
}

func normalizePath(p string) (string, error) {
	p = path.Clean(strings.TrimPrefix(filepath.ToSlash(p), "/"))
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return "", errors.Errorf("invalid storage path %q", p)
	}
	return p, nil
}
