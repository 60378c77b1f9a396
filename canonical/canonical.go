// Package canonical assigns canonical Huffman codes.
//
// A canonical code is fully determined by the code length of every symbol:
// symbols are ordered by length then by value, the first gets the all zero code of its length,
// and each following code is the previous one plus one, shifted left by the growth in length.
// Only the ordered symbols and the number of codes of each length need to be stored.
package canonical

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// MaxCodeLen is the longest code supported.
// Seven pending bits plus one code must fit a 64 bit accumulator.
const MaxCodeLen = 57

var (
	// ErrCodeTooLong is returned when a length exceeds MaxCodeLen.
	ErrCodeTooLong = fmt.Errorf("code length exceeds %d bits", MaxCodeLen)

	// ErrInvalidHeader is returned when symbols and length counts do not describe a code.
	ErrInvalidHeader = fmt.Errorf("invalid code header")
)

// A Code is the canonical code of a symbol.
// The low Len bits of Bits hold the code, most significant bit first.
type Code struct {
	Symbol int
	Len    int
	Bits   uint64
}

// Assign returns the canonical codes for lengths, keyed by symbol, in canonical order.
func Assign(lengths map[int]int) ([]Code, error) {
	codes := make([]Code, 0, len(lengths))
	for s, l := range lengths {
		if l < 1 {
			return nil, errors.Wrapf(ErrInvalidHeader, "symbol %d has length %d", s, l)
		}
		if l > MaxCodeLen {
			return nil, errors.Wrapf(ErrCodeTooLong, "symbol %d has length %d", s, l)
		}
		codes = append(codes, Code{Symbol: s, Len: l})
	}
	sort.Slice(codes, func(i, j int) bool {
		if codes[i].Len != codes[j].Len {
			return codes[i].Len < codes[j].Len
		}
		return codes[i].Symbol < codes[j].Symbol
	})

	var code uint64
	length := 0
	for i := range codes {
		code <<= uint(codes[i].Len - length)
		length = codes[i].Len
		if code >= 1<<uint(length) {
			return nil, errors.Wrapf(ErrInvalidHeader, "lengths oversubscribe the code space at length %d", length)
		}
		codes[i].Bits = code
		code++
	}
	return codes, nil
}

// Counts returns the number of codes of each length, where the element i counts length i+1,
// up to the longest length in codes.
func Counts(codes []Code) []int {
	max := 0
	for _, c := range codes {
		if c.Len > max {
			max = c.Len
		}
	}
	counts := make([]int, max)
	for _, c := range codes {
		counts[c.Len-1]++
	}
	return counts
}

// Symbols returns the symbols of codes in order.
func Symbols(codes []Code) []int {
	symbols := make([]int, len(codes))
	for i, c := range codes {
		symbols[i] = c.Symbol
	}
	return symbols
}

// FromHeader rebuilds the codes stored as symbols in canonical order together with
// counts, the number of codes of each length starting at length 1.
// alphabet bounds the symbol values.
func FromHeader(symbols []int, counts []int, alphabet int) ([]Code, error) {
	if len(symbols) == 0 {
		return nil, errors.Wrap(ErrInvalidHeader, "no symbols")
	}
	if len(counts) > MaxCodeLen {
		return nil, errors.Wrapf(ErrCodeTooLong, "%d lengths", len(counts))
	}

	lengths := make(map[int]int, len(symbols))
	i := 0
	for l, n := range counts {
		if n > len(symbols)-i {
			return nil, errors.Wrapf(ErrInvalidHeader, "%d codes of length %d overshoot %d symbols", n, l+1, len(symbols))
		}
		for _, s := range symbols[i : i+n] {
			if s < 0 || s >= alphabet {
				return nil, errors.Wrapf(ErrInvalidHeader, "symbol %d out of range", s)
			}
			if _, ok := lengths[s]; ok {
				return nil, errors.Wrapf(ErrInvalidHeader, "duplicate symbol %d", s)
			}
			lengths[s] = l + 1
		}
		i += n
	}
	if i != len(symbols) {
		return nil, errors.Wrapf(ErrInvalidHeader, "counts cover %d of %d symbols", i, len(symbols))
	}
	return Assign(lengths)
}
