// Package trie implements the binary code tree of a Huffman code.
//
// Nodes live in an arena and refer to their children by index.
// On the encoding side the tree is grown bottom-up by merging the two lightest fragments,
// on the decoding side it is grown top-down by inserting each symbol's code as a path.
package trie

import (
	"fmt"

	"github.com/fumin/huffarc/pq"
	"github.com/pkg/errors"
)

// None marks a missing child.
const None = -1

// ErrPathConflict is returned when a code collides with a code already in the tree.
var ErrPathConflict = fmt.Errorf("code conflicts with an existing code")

// A node is either a terminal leaf holding a symbol, or an internal node.
// Internal nodes built bottom-up hold the smallest symbol below them, used only to break ties.
type node struct {
	symbol   int
	freq     uint64
	terminal bool
	left     int // child on bit 0
	right    int // child on bit 1
}

// A Tree is a binary code tree.
type Tree struct {
	nodes []node
	root  int
}

// New returns a tree consisting of an empty internal root, ready for AddPath.
func New() *Tree {
	t := &Tree{}
	t.root = t.add(node{left: None, right: None})
	return t
}

func (t *Tree) add(n node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

// Leaf adds a detached leaf for symbol with frequency freq and returns its index.
func (t *Tree) Leaf(symbol int, freq uint64) int {
	return t.add(node{symbol: symbol, freq: freq, terminal: true, left: None, right: None})
}

// Merge adds an internal node with children a (bit 0) and b (bit 1) and returns its index.
func (t *Tree) Merge(a, b int) int {
	na, nb := t.nodes[a], t.nodes[b]
	sym := na.symbol
	if nb.symbol < sym {
		sym = nb.symbol
	}
	return t.add(node{symbol: sym, freq: na.freq + nb.freq, left: a, right: b})
}

// SetRoot makes i the root of the tree.
func (t *Tree) SetRoot(i int) { t.root = i }

// Root returns the index of the root.
func (t *Tree) Root() int { return t.root }

// Terminal reports whether i is a leaf.
func (t *Tree) Terminal(i int) bool { return t.nodes[i].terminal }

// Symbol returns the symbol of node i.
func (t *Tree) Symbol(i int) int { return t.nodes[i].symbol }

// Freq returns the frequency of node i.
func (t *Tree) Freq(i int) uint64 { return t.nodes[i].freq }

// Build builds the Huffman tree of freqs, where freqs[s] is the frequency of symbol s.
// Symbols with zero frequency are left out.
// Fragments are combined lightest first; among equal frequencies the one holding the smaller symbol goes first.
// Build returns nil if every frequency is zero.
func Build(freqs []uint64) *Tree {
	t := &Tree{root: None}
	h := pq.New(func(a, b int) bool {
		na, nb := t.nodes[a], t.nodes[b]
		if na.freq != nb.freq {
			return na.freq < nb.freq
		}
		return na.symbol < nb.symbol
	})
	for sym, f := range freqs {
		if f > 0 {
			h.Insert(t.Leaf(sym, f))
		}
	}
	if h.Size() == 0 {
		return nil
	}
	for h.Size() > 1 {
		first := h.ExtractRoot()
		second := h.ExtractRoot()
		h.Insert(t.Merge(first, second))
	}
	t.SetRoot(h.GetRoot())
	return t
}

type frame struct {
	node  int
	depth int
}

// CodeLengths returns the depth of every leaf, keyed by symbol.
// A tree whose root is itself a leaf gives that symbol length 1.
func (t *Tree) CodeLengths() map[int]int {
	lengths := map[int]int{}
	if t.root == None {
		return lengths
	}
	if t.nodes[t.root].terminal {
		lengths[t.nodes[t.root].symbol] = 1
		return lengths
	}

	stack := []frame{{node: t.root, depth: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[f.node]
		if n.terminal {
			lengths[n.symbol] = f.depth
			continue
		}
		if n.right != None {
			stack = append(stack, frame{node: n.right, depth: f.depth + 1})
		}
		if n.left != None {
			stack = append(stack, frame{node: n.left, depth: f.depth + 1})
		}
	}
	return lengths
}

// AddPath inserts symbol at the end of the path spelled by the low length bits of code,
// most significant bit first, creating internal nodes as needed.
func (t *Tree) AddPath(length int, code uint64, symbol int) error {
	if length < 1 {
		return errors.Wrapf(ErrPathConflict, "symbol %d length %d", symbol, length)
	}
	cur := t.root
	for i := length - 1; i >= 0; i-- {
		if t.nodes[cur].terminal {
			return errors.Wrapf(ErrPathConflict, "symbol %d", symbol)
		}
		bit := code >> uint(i) & 1
		next := t.child(cur, bit)
		if next == None {
			next = t.add(node{left: None, right: None})
			if bit == 0 {
				t.nodes[cur].left = next
			} else {
				t.nodes[cur].right = next
			}
		}
		cur = next
	}
	n := &t.nodes[cur]
	if n.terminal || n.left != None || n.right != None {
		return errors.Wrapf(ErrPathConflict, "symbol %d", symbol)
	}
	n.terminal = true
	n.symbol = symbol
	return nil
}

func (t *Tree) child(i int, bit uint64) int {
	if bit == 0 {
		return t.nodes[i].left
	}
	return t.nodes[i].right
}

// Next follows the edge for bit out of node i.
// It reports false if there is no such edge.
func (t *Tree) Next(i int, bit uint64) (int, bool) {
	next := t.child(i, bit)
	return next, next != None
}
