package sysalloc

import (
	"unsafe"

	"github.com/joshuapare/memtrack/internal/buf"
)

// Heap allocates from the Go heap and pins every block in a map so the
// garbage collector keeps it alive while its address is outstanding. The
// address of a block is the address of its first byte.
type Heap struct {
	blocks map[uintptr][]byte
}

// NewHeap creates an empty heap allocator.
func NewHeap() *Heap {
	return &Heap{blocks: make(map[uintptr][]byte)}
}

// Alloc obtains size bytes. Size zero yields a unique address usable for
// zero bytes, mirroring malloc(0).
func (h *Heap) Alloc(size int) (uintptr, error) {
	if size < 0 {
		return 0, ErrBadSize
	}
	backing := size
	if backing == 0 {
		backing = 1 // zero-size blocks still need a distinct address
	}
	b := make([]byte, backing)
	addr := uintptr(unsafe.Pointer(&b[0]))
	h.blocks[addr] = b[:size]
	return addr, nil
}

// AllocZero obtains count*size bytes. Go heap memory is already zeroed.
func (h *Heap) AllocZero(count, size int) (uintptr, error) {
	if count < 0 || size < 0 {
		return 0, ErrBadSize
	}
	total, ok := buf.MulOverflowSafe(count, size)
	if !ok {
		return 0, ErrSizeOverflow
	}
	return h.Alloc(total)
}

// Realloc moves the block at addr to a fresh block of size bytes,
// preserving the common prefix. Realloc(0, size) allocates; a successful
// Realloc to size zero releases the block and returns 0.
func (h *Heap) Realloc(addr uintptr, size int) (uintptr, error) {
	if addr == 0 {
		return h.Alloc(size)
	}
	if size < 0 {
		return 0, ErrBadSize
	}
	old, ok := h.blocks[addr]
	if !ok {
		return 0, ErrBadAddr
	}
	if size == 0 {
		delete(h.blocks, addr)
		return 0, nil
	}
	newAddr, err := h.Alloc(size)
	if err != nil {
		return 0, err
	}
	copy(h.blocks[newAddr], old)
	delete(h.blocks, addr)
	return newAddr, nil
}

// Free releases the block at addr. Unknown addresses are ignored; the
// tracking layer above is responsible for flagging them.
func (h *Heap) Free(addr uintptr) {
	delete(h.blocks, addr)
}

// Live returns the number of blocks currently pinned.
func (h *Heap) Live() int {
	return len(h.blocks)
}
