package sysalloc

import (
	"github.com/joshuapare/memtrack/internal/buf"
	"github.com/joshuapare/memtrack/track"
)

// Limit wraps an allocator with a byte budget. Requests that would push the
// outstanding total past the budget fail with ErrBudget; everything else is
// forwarded untouched. Outstanding sizes are remembered so Free and Realloc
// give bytes back to the budget.
type Limit struct {
	inner       track.Allocator
	budget      int
	outstanding int
	sizes       map[uintptr]int
}

// NewLimit wraps inner with a budget of maxBytes outstanding bytes.
func NewLimit(inner track.Allocator, maxBytes int) *Limit {
	return &Limit{inner: inner, budget: maxBytes, sizes: make(map[uintptr]int)}
}

// Outstanding returns the bytes currently charged against the budget.
func (l *Limit) Outstanding() int {
	return l.outstanding
}

func (l *Limit) charge(size int) bool {
	next, ok := buf.AddOverflowSafe(l.outstanding, size)
	if !ok || next > l.budget {
		return false
	}
	l.outstanding = next
	return true
}

// Alloc forwards to the inner allocator when the budget allows.
func (l *Limit) Alloc(size int) (uintptr, error) {
	if size < 0 {
		return 0, ErrBadSize
	}
	if !l.charge(size) {
		return 0, ErrBudget
	}
	addr, err := l.inner.Alloc(size)
	if err != nil {
		l.outstanding -= size
		return 0, err
	}
	l.sizes[addr] = size
	return addr, nil
}

// AllocZero forwards to the inner allocator when the budget allows.
func (l *Limit) AllocZero(count, size int) (uintptr, error) {
	if count < 0 || size < 0 {
		return 0, ErrBadSize
	}
	total, ok := buf.MulOverflowSafe(count, size)
	if !ok {
		return 0, ErrSizeOverflow
	}
	if !l.charge(total) {
		return 0, ErrBudget
	}
	addr, err := l.inner.AllocZero(count, size)
	if err != nil {
		l.outstanding -= total
		return 0, err
	}
	l.sizes[addr] = total
	return addr, nil
}

// Realloc re-charges the delta between the old and new sizes before
// forwarding. A failed forward restores the budget.
func (l *Limit) Realloc(addr uintptr, size int) (uintptr, error) {
	if size < 0 {
		return 0, ErrBadSize
	}
	oldSize := l.sizes[addr]
	if size > oldSize && !l.charge(size-oldSize) {
		return 0, ErrBudget
	}
	newAddr, err := l.inner.Realloc(addr, size)
	if err != nil {
		if size > oldSize {
			l.outstanding -= size - oldSize
		}
		return 0, err
	}
	if size <= oldSize {
		l.outstanding -= oldSize - size
	}
	delete(l.sizes, addr)
	if newAddr != 0 {
		l.sizes[newAddr] = size
	}
	return newAddr, nil
}

// Free releases the block and returns its bytes to the budget.
func (l *Limit) Free(addr uintptr) {
	if size, ok := l.sizes[addr]; ok {
		l.outstanding -= size
		delete(l.sizes, addr)
	}
	l.inner.Free(addr)
}

// interface checks
var (
	_ track.Allocator = (*Limit)(nil)
	_ track.Allocator = (*Heap)(nil)
	_ track.Allocator = (*Mmap)(nil)
)
