// Package pq implements an array backed binary min-heap ordered by a caller supplied comparator.
package pq

// Less reports whether a must be extracted before b.
// It must define a strict weak ordering; ties leave the extraction order to the heap layout.
type Less[T any] func(a, b T) bool

// A Heap is a binary min-heap with respect to its Less.
type Heap[T any] struct {
	items []T
	less  Less[T]
}

// New returns an empty heap ordered by less.
func New[T any](less func(a, b T) bool) *Heap[T] {
	return &Heap[T]{less: less}
}

// Insert adds x to the heap.
func (h *Heap[T]) Insert(x T) {
	h.items = append(h.items, x)
	h.siftUp(len(h.items) - 1)
}

// ExtractRoot removes and returns the minimum element.
// It panics if the heap is empty.
func (h *Heap[T]) ExtractRoot() T {
	root := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	var zero T
	h.items[last] = zero
	h.items = h.items[:last]
	h.siftDown(0)
	return root
}

// GetRoot returns the minimum element without removing it.
// It panics if the heap is empty.
func (h *Heap[T]) GetRoot() T {
	return h.items[0]
}

// Size returns the number of elements in the heap.
func (h *Heap[T]) Size() int {
	return len(h.items)
}

func (h *Heap[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(h.items[i], h.items[parent]) {
			return
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *Heap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		min := 2*i + 1
		if min >= n {
			return
		}
		if right := min + 1; right < n && h.less(h.items[right], h.items[min]) {
			min = right
		}
		if !h.less(h.items[min], h.items[i]) {
			return
		}
		h.items[i], h.items[min] = h.items[min], h.items[i]
		i = min
	}
}
