package huffarc

import (
	"io"

	"github.com/fumin/huffarc/bitstream"
	"github.com/fumin/huffarc/canonical"
	"github.com/fumin/huffarc/trie"
	"github.com/pkg/errors"
)

// A Decoder extracts the files of an archive one after another.
// The byte reader and the pending bits are shared by all files of the archive,
// since a file's block may start in the middle of a byte.
type Decoder struct {
	r     *bitstream.ByteReader
	bits  bitstream.BitString
	ended bool
}

// NewDecoder returns a Decoder reading an archive from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bitstream.NewByteReader(r)}
}

// fill makes at least count bits pending.
func (d *Decoder) fill(count uint) error {
	err := d.bits.Fill(d.r, count)
	if err == io.ErrUnexpectedEOF {
		return errors.Wrap(ErrCorrupt, "unexpected end of archive")
	}
	return err
}

func (d *Decoder) field() (int, error) {
	if err := d.fill(ArchivedByte); err != nil {
		return 0, err
	}
	return int(d.bits.GetBits(ArchivedByte)), nil
}

// readHeader reads the code of the next file and returns its decoding tree.
func (d *Decoder) readHeader() (*trie.Tree, error) {
	k, err := d.field()
	if err != nil {
		return nil, err
	}
	if k == 0 || k > AlphabetSize {
		return nil, errors.Wrapf(ErrCorrupt, "symbol count %d", k)
	}
	symbols := make([]int, k)
	for i := range symbols {
		if symbols[i], err = d.field(); err != nil {
			return nil, err
		}
	}

	counts := []int{}
	for total := 0; total < k; {
		if len(counts) == canonical.MaxCodeLen {
			return nil, errors.Wrapf(ErrCorrupt, "codes longer than %d bits", canonical.MaxCodeLen)
		}
		n, err := d.field()
		if err != nil {
			return nil, err
		}
		counts = append(counts, n)
		total += n
	}

	codes, err := canonical.FromHeader(symbols, counts, AlphabetSize)
	if err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "%v", err)
	}
	t := trie.New()
	for _, c := range codes {
		if err := t.AddPath(c.Len, c.Bits, c.Symbol); err != nil {
			return nil, errors.Wrapf(ErrCorrupt, "%v", err)
		}
	}
	return t, nil
}

// next walks t bit by bit from its root and returns the symbol of the leaf reached.
func (d *Decoder) next(t *trie.Tree) (int, error) {
	cur := t.Root()
	for {
		if err := d.fill(1); err != nil {
			return 0, err
		}
		var ok bool
		cur, ok = t.Next(cur, d.bits.GetBits(1))
		if !ok {
			return 0, errors.Wrap(ErrCorrupt, "unknown code")
		}
		if t.Terminal(cur) {
			return t.Symbol(cur), nil
		}
	}
}

// DecodeFile extracts the next file of the archive into dst.
// It returns the name of the file, and whether it was the last one of the archive.
// The created file is flushed and closed on every return path.
func (d *Decoder) DecodeFile(dst Creator) (name string, last bool, err error) {
	if d.ended {
		return "", false, ErrClosed
	}
	t, err := d.readHeader()
	if err != nil {
		return "", false, err
	}

	nameBytes := []byte{}
	for {
		sym, err := d.next(t)
		if err != nil {
			return "", false, err
		}
		if sym == FilenameEnd {
			break
		}
		if sym > 0xff {
			return "", false, errors.Wrapf(ErrCorrupt, "symbol %d in file name", sym)
		}
		nameBytes = append(nameBytes, byte(sym))
	}
	name = string(nameBytes)

	out, err := dst.Create(name)
	if err != nil {
		return name, false, errors.Wrapf(err, "create %s", name)
	}
	w := bitstream.NewByteWriter(out)
	defer func() {
		ferr := w.Flush()
		cerr := out.Close()
		if err != nil {
			return
		}
		if ferr != nil {
			err = errors.Wrapf(ferr, "write %s", name)
		} else if cerr != nil {
			err = errors.Wrapf(cerr, "close %s", name)
		}
	}()

	for {
		sym, err := d.next(t)
		if err != nil {
			return name, false, errors.Wrapf(err, "%s", name)
		}
		switch sym {
		case OneMoreFile:
			return name, false, nil
		case ArchiveEnd:
			d.ended = true
			return name, true, nil
		case FilenameEnd:
			return name, false, errors.Wrapf(ErrCorrupt, "%s: file name end in content", name)
		}
		if err := w.WriteNext(byte(sym)); err != nil {
			return name, false, errors.Wrapf(err, "write %s", name)
		}
	}
}
