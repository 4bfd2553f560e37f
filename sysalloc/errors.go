package sysalloc

import "errors"

var (
	// ErrBadSize indicates a negative allocation size.
	ErrBadSize = errors.New("sysalloc: negative size")

	// ErrBadAddr indicates an address this allocator does not own.
	ErrBadAddr = errors.New("sysalloc: unknown address")

	// ErrBudget indicates that a Limit wrapper's byte budget is exhausted.
	ErrBudget = errors.New("sysalloc: allocation budget exhausted")

	// ErrSizeOverflow indicates a count*size request that overflows int.
	ErrSizeOverflow = errors.New("sysalloc: allocation size overflows int")
)
