package huffarc

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// An Opener opens the named input files of an archive.
// Sources are read twice, so they must be seekable.
type Opener interface {
	Open(name string) (io.ReadSeekCloser, error)
}

// A Creator creates the named output files of an archive.
type Creator interface {
	Create(name string) (io.WriteCloser, error)
}

// A Dir opens and creates files relative to a directory of the native file system.
// The empty Dir is the working directory.
type Dir string

// Open opens name for reading.
func (d Dir) Open(name string) (io.ReadSeekCloser, error) {
	f, err := os.Open(d.join(name))
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return f, nil
}

// Create creates or truncates name, making parent directories as needed.
// Names must be relative and stay inside d.
func (d Dir) Create(name string) (io.WriteCloser, error) {
	if !localName(name) {
		return nil, errors.Wrapf(ErrUnsafeName, "%q", name)
	}
	p := d.join(name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, errors.Wrap(err, "")
	}
	f, err := os.Create(p)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return f, nil
}

func (d Dir) join(name string) string {
	return filepath.Join(string(d), filepath.FromSlash(name))
}

// localName reports whether name is a non-empty relative path that does not climb out of its root.
func localName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return false
	}
	c := filepath.Clean(filepath.FromSlash(name))
	if c == "." || c == ".." || strings.HasPrefix(c, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}
