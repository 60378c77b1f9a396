package canonical

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

func TestAssign(t *testing.T) {
	lengths := map[int]int{'A': 2, 'B': 2, 'C': 3, 257: 3, 258: 3, 'D': 4, 256: 4}
	want := []Code{
		{'A', 2, 0x0},
		{'B', 2, 0x1},
		{'C', 3, 0x4},
		{257, 3, 0x5},
		{258, 3, 0x6},
		{'D', 4, 0xe},
		{256, 4, 0xf},
	}
	codes, err := Assign(lengths)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if len(codes) != len(want) {
		t.Fatalf("%v", codes)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("%d: %+v, want %+v", i, codes[i], want[i])
		}
	}

	counts := Counts(codes)
	wantCounts := []int{0, 2, 3, 2}
	if len(counts) != len(wantCounts) {
		t.Fatalf("%v", counts)
	}
	for i := range wantCounts {
		if counts[i] != wantCounts[i] {
			t.Errorf("length %d: %d codes, want %d", i+1, counts[i], wantCounts[i])
		}
	}
}

func TestAssignSingle(t *testing.T) {
	codes, err := Assign(map[int]int{7: 1})
	if err != nil {
		t.Fatalf("%v", err)
	}
	if len(codes) != 1 || codes[0] != (Code{7, 1, 0}) {
		t.Errorf("%v", codes)
	}
}

func TestAssignErrors(t *testing.T) {
	if _, err := Assign(map[int]int{1: 1, 2: 1, 3: 1}); errors.Cause(err) != ErrInvalidHeader {
		t.Errorf("oversubscribed: %v", err)
	}
	if _, err := Assign(map[int]int{1: 0}); errors.Cause(err) != ErrInvalidHeader {
		t.Errorf("zero length: %v", err)
	}
	if _, err := Assign(map[int]int{1: MaxCodeLen + 1}); errors.Cause(err) != ErrCodeTooLong {
		t.Errorf("too long: %v", err)
	}
}

// randomLengths returns the lengths of a random complete prefix code by splitting leaves.
func randomLengths(rnd *rand.Rand, n int) map[int]int {
	depths := []int{0}
	for len(depths) < n {
		i := rnd.Intn(len(depths))
		d := depths[i] + 1
		depths[i] = d
		depths = append(depths, d)
	}
	perm := rnd.Perm(259)
	lengths := map[int]int{}
	for i, d := range depths {
		lengths[perm[i]] = d
	}
	return lengths
}

func TestHeaderRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for trial := 0; trial < 50; trial++ {
		lengths := randomLengths(rnd, 2+rnd.Intn(257))
		codes, err := Assign(lengths)
		if err != nil {
			t.Fatalf("%v", err)
		}
		rebuilt, err := FromHeader(Symbols(codes), Counts(codes), 259)
		if err != nil {
			t.Fatalf("%v", err)
		}
		if len(rebuilt) != len(codes) {
			t.Fatalf("trial %d: %d codes, want %d", trial, len(rebuilt), len(codes))
		}
		for i := range codes {
			if rebuilt[i] != codes[i] {
				t.Fatalf("trial %d, %d: %+v, want %+v", trial, i, rebuilt[i], codes[i])
			}
		}
	}
}

func TestPrefixFree(t *testing.T) {
	rnd := rand.New(rand.NewSource(4))
	codes, err := Assign(randomLengths(rnd, 259))
	if err != nil {
		t.Fatalf("%v", err)
	}
	for _, a := range codes {
		for _, b := range codes {
			if a.Symbol == b.Symbol || a.Len > b.Len {
				continue
			}
			if b.Bits>>uint(b.Len-a.Len) == a.Bits {
				t.Fatalf("%+v is a prefix of %+v", a, b)
			}
		}
	}
}

func TestFromHeaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		symbols []int
		counts  []int
	}{
		{"empty", nil, nil},
		{"overshoot", []int{1, 2}, []int{3}},
		{"undershoot", []int{1, 2, 3}, []int{2}},
		{"duplicate", []int{1, 1}, []int{2}},
		{"out of range", []int{1, 259}, []int{2}},
		{"oversubscribed", []int{1, 2, 3}, []int{3}},
	}
	for _, test := range tests {
		if _, err := FromHeader(test.symbols, test.counts, 259); errors.Cause(err) != ErrInvalidHeader {
			t.Errorf("%s: %v", test.name, err)
		}
	}
}
