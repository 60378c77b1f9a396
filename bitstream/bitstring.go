package bitstream

import (
	"io"

	"github.com/pkg/errors"
)

// Capacity is the number of bits a BitString can hold.
const Capacity = 64

// A BitString is a register of pending bits.
// Bits are appended at the least significant end and taken from the most significant end,
// so the bits that went in first come out first.
type BitString struct {
	bits uint64
	n    uint
}

// AddBits appends the low count bits of bits.
// The caller keeps Len()+count within Capacity.
func (s *BitString) AddBits(count uint, bits uint64) {
	if count == 0 {
		return
	}
	if count < 64 {
		bits &= 1<<count - 1
	}
	s.bits = s.bits<<count | bits
	s.n += count
}

// GetBits removes and returns the oldest count bits.
func (s *BitString) GetBits(count uint) uint64 {
	rest := s.n - count
	v := s.bits >> rest
	s.bits &= 1<<rest - 1
	s.n = rest
	return v
}

// Has reports whether at least count bits are pending.
func (s *BitString) Has(count uint) bool {
	return s.n >= count
}

// Len returns the number of pending bits.
func (s *BitString) Len() uint {
	return s.n
}

// Update appends the low count bits of bits and writes every whole byte to w.
// At most 7 bits stay pending afterwards.
func (s *BitString) Update(w *ByteWriter, count uint, bits uint64) error {
	s.AddBits(count, bits)
	for s.Has(8) {
		if err := w.WriteNext(byte(s.GetBits(8))); err != nil {
			return err
		}
	}
	return nil
}

// Align pads the pending bits with zeros up to a byte boundary and writes the byte to w.
func (s *BitString) Align(w *ByteWriter) error {
	if s.n%8 == 0 {
		return s.Update(w, 0, 0)
	}
	return s.Update(w, 8-s.n%8, 0)
}

// Fill reads whole bytes from r until at least count bits are pending.
// It returns io.ErrUnexpectedEOF if the source ends first.
func (s *BitString) Fill(r *ByteReader, count uint) error {
	for s.n < count {
		b, err := r.ReadNext()
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			return errors.Wrap(err, "")
		}
		s.AddBits(8, uint64(b))
	}
	return nil
}
