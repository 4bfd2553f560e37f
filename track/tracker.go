package track

import (
	"log/slog"

	"github.com/joshuapare/memtrack/internal/buf"
)

// Allocator is the raw allocation capability a Tracker wraps. It performs
// the actual memory management and carries no tracking logic of its own.
//
// Implementations report failure through the error return; an address of 0
// with a nil error is a valid outcome only for Realloc to size zero, which
// acts as a release. Free is assumed to always succeed.
type Allocator interface {
	// Alloc obtains size bytes and returns their address.
	Alloc(size int) (uintptr, error)

	// AllocZero obtains count*size zero-initialized bytes.
	AllocZero(count, size int) (uintptr, error)

	// Realloc resizes the block at addr to size bytes, possibly moving
	// it, and returns the new address. On failure the original block is
	// left valid. Realloc(0, size) behaves like Alloc(size);
	// Realloc(addr, 0) releases the block and returns 0.
	Realloc(addr uintptr, size int) (uintptr, error)

	// Free releases the block at addr. Free(0) is a no-op.
	Free(addr uintptr)
}

// Tracker is the tracked allocation API: a thin composition of a raw
// Allocator and a Registry. Every successful allocation is registered with
// its call-site origin; every release is unregistered and forwarded.
//
// Tracker is not thread-safe.
type Tracker struct {
	alloc Allocator
	reg   *Registry
	log   *slog.Logger
}

// NewTracker wraps alloc so that every allocation routed through the
// returned tracker is recorded in reg.
func NewTracker(alloc Allocator, reg *Registry) (*Tracker, error) {
	if alloc == nil {
		return nil, ErrNilAllocator
	}
	if reg == nil {
		return nil, ErrNilRegistry
	}
	return &Tracker{alloc: alloc, reg: reg, log: reg.log}, nil
}

// Registry returns the registry this tracker records into.
func (t *Tracker) Registry() *Registry {
	return t.reg
}

// Malloc obtains size bytes from the underlying allocator and registers the
// block. On allocator failure nothing is registered, no counter moves, and
// the allocator's error is returned as-is.
func (t *Tracker) Malloc(size int, org Origin) (uintptr, error) {
	addr, err := t.alloc.Alloc(size)
	if err != nil {
		t.log.Error("malloc failed", "size", size, "origin", org.String(), "error", err)
		return 0, err
	}
	t.reg.register(addr, size, org)
	return addr, nil
}

// Calloc obtains count*size zero-initialized bytes and registers the block
// with the combined size.
func (t *Tracker) Calloc(count, size int, org Origin) (uintptr, error) {
	total, ok := buf.MulOverflowSafe(count, size)
	if !ok {
		t.log.Error("calloc size overflow",
			"count", count, "size", size, "origin", org.String())
		return 0, ErrSizeOverflow
	}
	addr, err := t.alloc.AllocZero(count, size)
	if err != nil {
		t.log.Error("calloc failed",
			"count", count, "size", size, "origin", org.String(), "error", err)
		return 0, err
	}
	t.reg.register(addr, total, org)
	return addr, nil
}

// Realloc resizes the block at addr to size bytes. The registry is mutated
// only after the allocator's verdict is known: on success the old record is
// unregistered and the new address registered with the new size; on failure
// the original record stays tracked and the error is returned.
//
// Realloc(0, size) behaves like Malloc. A successful Realloc to size zero
// releases the block: the old record is unregistered and no new record is
// created.
func (t *Tracker) Realloc(addr uintptr, size int, org Origin) (uintptr, error) {
	newAddr, err := t.alloc.Realloc(addr, size)
	if err != nil {
		t.log.Error("realloc failed",
			"addr", addr, "size", size, "origin", org.String(), "error", err)
		return 0, err
	}
	if addr != 0 {
		if !t.reg.unregister(addr, org) {
			t.log.Warn("realloc of untracked address",
				"addr", addr, "origin", org.String())
		}
	}
	t.reg.register(newAddr, size, org)
	return newAddr, nil
}

// Free unregisters addr and forwards the release to the underlying
// allocator. A release on an address the registry does not know about is
// forwarded anyway, to avoid leaking the real resource, and flagged to the
// diagnostic logger. Free(0) does nothing.
func (t *Tracker) Free(addr uintptr, org Origin) {
	if addr == 0 {
		return
	}
	if !t.reg.unregister(addr, org) {
		t.log.Warn("free of untracked address",
			"addr", addr, "origin", org.String())
	}
	t.alloc.Free(addr)
}
