// Package buffer provides an append-only growable buffer with
// amortized doubling growth. It backs both the raw page content and
// the parsed element list of a document.
package buffer

// Buffer never shrinks; capacity only grows. The zero value is ready
// to use.
type Buffer[T any] struct {
	items []T
}

// New returns a buffer with room for capacity items.
func New[T any](capacity int) *Buffer[T] {
	return &Buffer[T]{items: make([]T, 0, capacity)}
}

func (b *Buffer[T]) Len() int { return len(b.items) }
func (b *Buffer[T]) Cap() int { return cap(b.items) }

// Items returns the in-use portion of the buffer. The slice is only
// valid until the next growth.
func (b *Buffer[T]) Items() []T { return b.items }

// EnsureCapacity grows the buffer so that at least total items fit.
// When growth is needed the new capacity is max(total, 2*cap).
func (b *Buffer[T]) EnsureCapacity(total int) {
	if total <= cap(b.items) {
		return
	}
	newCap := 2 * cap(b.items)
	if total > newCap {
		newCap = total
	}
	items := make([]T, len(b.items), newCap)
	copy(items, b.items)
	b.items = items
}

// Append adds items to the end of the buffer, growing if needed.
func (b *Buffer[T]) Append(items ...T) {
	b.EnsureCapacity(len(b.items) + len(items))
	b.items = append(b.items, items...)
}

// Spare returns the unused region between length and capacity. A
// caller may fill a prefix of it and commit with Advance, which
// avoids an intermediate copy when reading from a stream.
func (b *Buffer[T]) Spare() []T {
	return b.items[len(b.items):cap(b.items)]
}

// Advance marks n items of the spare region as in use.
func (b *Buffer[T]) Advance(n int) {
	b.items = b.items[:len(b.items)+n]
}
