package huffarc

import (
	"io"

	"github.com/fumin/huffarc/bitstream"
	"github.com/fumin/huffarc/canonical"
	"github.com/fumin/huffarc/trie"
	"github.com/pkg/errors"
)

// An Encoder writes files into an archive one after another.
// The bit position carries over from one file to the next, so files must be written in order
// and the last one flagged as such.
type Encoder struct {
	w     *bitstream.ByteWriter
	bits  bitstream.BitString
	nbits uint64 // bits emitted for the current file
	ended bool
	stats []FileStat
}

// NewEncoder returns an Encoder writing an archive to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bitstream.NewByteWriter(w)}
}

func (e *Encoder) put(count int, bits uint64) error {
	e.nbits += uint64(count)
	return e.bits.Update(e.w, uint(count), bits)
}

// EncodeFile appends the content of src to the archive under name.
// name must be a relative path that stays inside the directory it is extracted into.
// src is read twice: once for statistics and once for coding.
// When last is true the archive is terminated, aligned and flushed.
func (e *Encoder) EncodeFile(name string, src io.Reader, last bool) error {
	if e.ended {
		return ErrClosed
	}
	if !localName(name) {
		return errors.Wrapf(ErrUnsafeName, "%q", name)
	}
	e.nbits = 0

	// Statistics
	r := bitstream.NewByteReader(src)
	freqs := make([]uint64, AlphabetSize)
	var size int64
	for !r.Empty() {
		b, err := r.ReadNext()
		if err != nil {
			return errors.Wrapf(err, "read %s", name)
		}
		freqs[b]++
		size++
	}
	if err := r.Reset(); err != nil {
		return errors.Wrapf(err, "rewind %s", name)
	}
	freqs[FilenameEnd] = 1
	freqs[OneMoreFile] = 1
	freqs[ArchiveEnd] = 1
	for i := 0; i < len(name); i++ {
		freqs[name[i]]++
	}

	codes, err := canonical.Assign(trie.Build(freqs).CodeLengths())
	if err != nil {
		return errors.Wrapf(err, "%s", name)
	}
	table := make([]canonical.Code, AlphabetSize)
	for _, c := range codes {
		table[c.Symbol] = c
	}
	emit := func(sym int) error {
		if table[sym].Len == 0 {
			return errors.Errorf("%s changed while being archived", name)
		}
		return e.put(table[sym].Len, table[sym].Bits)
	}

	// Header
	if err := e.put(ArchivedByte, uint64(len(codes))); err != nil {
		return err
	}
	for _, sym := range canonical.Symbols(codes) {
		if err := e.put(ArchivedByte, uint64(sym)); err != nil {
			return err
		}
	}
	counts := canonical.Counts(codes)
	for _, n := range counts {
		if err := e.put(ArchivedByte, uint64(n)); err != nil {
			return err
		}
	}

	// Name
	for i := 0; i < len(name); i++ {
		if err := emit(int(name[i])); err != nil {
			return err
		}
	}
	if err := emit(FilenameEnd); err != nil {
		return err
	}

	// Payload
	for !r.Empty() {
		b, err := r.ReadNext()
		if err != nil {
			return errors.Wrapf(err, "read %s", name)
		}
		if err := emit(int(b)); err != nil {
			return err
		}
	}

	if last {
		e.ended = true
		if err := emit(ArchiveEnd); err != nil {
			return err
		}
		e.nbits += uint64((8 - e.bits.Len()%8) % 8)
		if err := e.bits.Align(e.w); err != nil {
			return err
		}
		if err := e.w.Flush(); err != nil {
			return err
		}
	} else if err := emit(OneMoreFile); err != nil {
		return err
	}

	e.stats = append(e.stats, FileStat{
		Name:       name,
		Size:       size,
		Symbols:    len(codes),
		MaxCodeLen: len(counts),
		Bits:       e.nbits,
	})
	return nil
}

// Stats returns the statistics of the files encoded so far.
func (e *Encoder) Stats() []FileStat {
	return e.stats
}

// Flush writes out every whole byte produced so far.
// Bits of an unfinished byte stay pending until the next file or the end of the archive.
func (e *Encoder) Flush() error {
	return e.w.Flush()
}
