package log

import (
	"fmt"
	"io"
	"sync"
)

// Ring is a bounded, thread-safe [io.Writer] that keeps the most recent
// entries written to it. It holds log output while a child process owns the
// terminal, so that handler writes never interleave with subprocess stdio.
// Once the terminal is released, [Ring.WriteTo] flushes the retained entries
// in chronological order.
type Ring struct {
	entries [][]byte
	start   int
	count   int
	mu      sync.Mutex
}

// NewRing creates a [Ring] holding up to capacity entries. Each Write call
// stores one entry; when full, the oldest entry is dropped.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 100
	}

	return &Ring{entries: make([][]byte, capacity)}
}

// Write implements [io.Writer]. The data is copied, so the caller may reuse p.
func (r *Ring) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry := make([]byte, len(p))
	copy(entry, p)

	idx := (r.start + r.count) % len(r.entries)
	r.entries[idx] = entry

	if r.count < len(r.entries) {
		r.count++
	} else {
		// Full, the oldest entry was just overwritten.
		r.start = (r.start + 1) % len(r.entries)
	}

	return len(p), nil
}

// Len returns the number of retained entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.count
}

// Reset discards all retained entries.
func (r *Ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.start = 0
	r.count = 0
	for i := range r.entries {
		r.entries[i] = nil
	}
}

// WriteTo flushes all retained entries to w, oldest first, and resets the
// ring. It implements [io.WriterTo].
func (r *Ring) WriteTo(w io.Writer) (int64, error) {
	r.mu.Lock()

	flushed := make([][]byte, 0, r.count)
	for i := range r.count {
		flushed = append(flushed, r.entries[(r.start+i)%len(r.entries)])
	}

	r.start = 0
	r.count = 0
	for i := range r.entries {
		r.entries[i] = nil
	}
	r.mu.Unlock()

	var total int64

	for _, entry := range flushed {
		n, err := w.Write(entry)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("flush entry: %w", err)
		}
	}

	return total, nil
}
