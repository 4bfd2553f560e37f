//go:build unix

package sysalloc

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/memtrack/internal/buf"
)

// headerSize is the per-block bookkeeping prefix. The payload size lives in
// the first 8 bytes; the full 16 keep the payload 16-byte aligned.
const headerSize = 16

// Mmap allocates each block as its own anonymous mapping, so addresses are
// real OS memory outside the Go heap. Every block carries a size-prefix
// header, which is how Free and Realloc recover the mapping length.
type Mmap struct{}

// NewMmap creates an mmap-backed allocator.
func NewMmap() *Mmap {
	return &Mmap{}
}

// Alloc maps size+headerSize anonymous bytes and returns the payload
// address.
func (m *Mmap) Alloc(size int) (uintptr, error) {
	if size < 0 {
		return 0, ErrBadSize
	}
	total, ok := buf.AddOverflowSafe(size, headerSize)
	if !ok {
		return 0, ErrSizeOverflow
	}
	block, err := unix.Mmap(-1, 0, total,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return 0, fmt.Errorf("sysalloc: mmap %d bytes: %w", total, err)
	}
	binary.LittleEndian.PutUint64(block, uint64(size))
	return uintptr(unsafe.Pointer(&block[0])) + headerSize, nil
}

// AllocZero obtains count*size bytes. Anonymous pages arrive zero-filled
// from the kernel, so no explicit clearing is needed.
func (m *Mmap) AllocZero(count, size int) (uintptr, error) {
	if count < 0 || size < 0 {
		return 0, ErrBadSize
	}
	total, ok := buf.MulOverflowSafe(count, size)
	if !ok {
		return 0, ErrSizeOverflow
	}
	return m.Alloc(total)
}

// Realloc maps a new block of size bytes, copies the common prefix, and
// unmaps the old block. Realloc(0, size) allocates; a successful Realloc to
// size zero unmaps the block and returns 0.
func (m *Mmap) Realloc(addr uintptr, size int) (uintptr, error) {
	if addr == 0 {
		return m.Alloc(size)
	}
	if size < 0 {
		return 0, ErrBadSize
	}
	if size == 0 {
		m.Free(addr)
		return 0, nil
	}
	oldSize := payloadSize(addr)
	newAddr, err := m.Alloc(size)
	if err != nil {
		return 0, err
	}
	n := oldSize
	if size < n {
		n = size
	}
	if n > 0 {
		copy(Bytes(newAddr, n), Bytes(addr, n))
	}
	m.Free(addr)
	return newAddr, nil
}

// Free unmaps the block at addr. Free(0) is a no-op. Double-unmap of the
// same address is undefined, exactly as with the C allocator this mirrors;
// the tracking layer exists to catch that before it happens.
func (m *Mmap) Free(addr uintptr) {
	if addr == 0 {
		return
	}
	base := addr - headerSize
	total := payloadSize(addr) + headerSize
	block := unsafe.Slice((*byte)(unsafe.Pointer(base)), total)
	_ = unix.Munmap(block)
}

// payloadSize reads the size-prefix header of a live block.
func payloadSize(addr uintptr) int {
	hdr := unsafe.Slice((*byte)(unsafe.Pointer(addr-headerSize)), 8)
	return int(binary.LittleEndian.Uint64(hdr))
}
