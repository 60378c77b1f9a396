package huffarc

import (
	"io"

	"github.com/pkg/errors"
)

// Compress writes an archive of the named files, opened through src, to dst.
// Files are stored in the given order under the given names.
// On failure the whole bytes coded so far are still written to dst.
func Compress(dst io.Writer, src Opener, names []string) ([]FileStat, error) {
	if len(names) == 0 {
		return nil, ErrNoFiles
	}
	enc := NewEncoder(dst)
	for i, name := range names {
		if err := encodeNamed(enc, src, name, i == len(names)-1); err != nil {
			enc.Flush()
			return enc.Stats(), err
		}
	}
	return enc.Stats(), nil
}

func encodeNamed(enc *Encoder, src Opener, name string, last bool) error {
	if !localName(name) {
		return errors.Wrapf(ErrUnsafeName, "%q", name)
	}
	f, err := src.Open(name)
	if err != nil {
		return errors.Wrapf(err, "open %s", name)
	}
	defer f.Close()
	return enc.EncodeFile(name, f, last)
}

// Decompress extracts every file of the archive read from src into dst,
// and returns their names in archive order.
// It stops at the end of the archive, and fails if src ends before it.
func Decompress(src io.Reader, dst Creator) ([]string, error) {
	dec := NewDecoder(src)
	names := []string{}
	for {
		name, last, err := dec.DecodeFile(dst)
		if err != nil {
			return names, err
		}
		names = append(names, name)
		if last {
			return names, nil
		}
	}
}
