//go:build !unix

package sysalloc

// Mmap falls back to the Heap allocator on platforms without anonymous
// mappings. The interface contract is identical; only the provenance of the
// memory differs.
type Mmap struct {
	*Heap
}

// NewMmap creates the fallback allocator.
func NewMmap() *Mmap {
	return &Mmap{Heap: NewHeap()}
}
