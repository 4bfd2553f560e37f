package sysalloc

import "unsafe"

// Bytes exposes size bytes at addr as a slice. The caller must know the
// block's size and must not use the slice after the block is freed.
func Bytes(addr uintptr, size int) []byte {
	if addr == 0 || size <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
}
