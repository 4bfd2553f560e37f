package track

import (
	"log/slog"
	"time"
)

// Registry is a fixed-bucket hash table of live allocation records plus the
// aggregate counter set maintained alongside it. It owns all records it
// holds. Registries are explicit handles: create as many as you need, one
// per subsystem or test case.
//
// Registry is not thread-safe.
type Registry struct {
	buckets []*Record
	mask    uintptr

	// Aggregate counters, updated incrementally on every
	// register/unregister.
	totalAllocated uint64
	totalFreed     uint64
	peakMemory     uint64
	allocCalls     uint64
	freeCalls      uint64

	maxReport int
	log       *slog.Logger
}

// Stats is a point-in-time snapshot of a registry's counter set.
type Stats struct {
	TotalAllocated  uint64 `json:"total_allocated"`
	TotalFreed      uint64 `json:"total_freed"`
	CurrentUsage    uint64 `json:"current_usage"`
	PeakUsage       uint64 `json:"peak_usage"`
	AllocationCalls uint64 `json:"allocation_calls"`
	FreeCalls       uint64 `json:"free_calls"`
	PotentialLeaks  uint64 `json:"potential_leaks"`
	Buckets         int    `json:"buckets"`
}

// New creates an empty registry. A nil cfg selects the defaults
// (DefaultBuckets buckets, DefaultMaxReportBytes report cap, discarded
// diagnostics). Returns ErrBucketCount if cfg.Buckets is not a power of two.
func New(cfg *Config) (*Registry, error) {
	c, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	log := c.Logger
	if log == nil {
		log = discardLogger()
	}
	r := &Registry{
		buckets:   make([]*Record, c.Buckets),
		mask:      uintptr(c.Buckets - 1),
		maxReport: c.MaxReportBytes,
		log:       log,
	}
	return r, nil
}

// Buckets returns the configured bucket count.
func (r *Registry) Buckets() int {
	return len(r.buckets)
}

// Reset returns the registry to its initial state: all records destroyed,
// all counters zero.
func (r *Registry) Reset() {
	clear(r.buckets)
	r.totalAllocated = 0
	r.totalFreed = 0
	r.peakMemory = 0
	r.allocCalls = 0
	r.freeCalls = 0
}

// Shutdown destroys all tracked records and resets the counters, bounding
// the registry's lifetime explicitly. Records still live at shutdown are
// reported to the diagnostic logger as a leak summary.
func (r *Registry) Shutdown() {
	leaked, bytes := 0, 0
	r.Range(func(rec *Record) bool {
		leaked++
		bytes += rec.Size
		return true
	})
	if leaked > 0 {
		r.log.Warn("shutdown with live allocations",
			"count", leaked, "bytes", bytes)
	}
	r.Reset()
}

// hash maps an address to its bucket index. The bucket count is a power of
// two, so masking the address value is the whole hash.
func (r *Registry) hash(addr uintptr) uintptr {
	return addr & r.mask
}

// register creates a record for addr and prepends it to the owning bucket
// chain. A zero addr is a silent no-op. No duplicate scan is performed:
// registering an already-tracked address creates a shadow record that wins
// until it is unregistered (last-registered-wins).
func (r *Registry) register(addr uintptr, size int, org Origin) {
	if addr == 0 {
		return
	}
	h := r.hash(addr)
	rec := &Record{
		Addr:   addr,
		Size:   size,
		Origin: org,
		Time:   time.Now(),
		next:   r.buckets[h],
	}
	r.buckets[h] = rec

	r.totalAllocated += uint64(size)
	r.allocCalls++
	if usage := r.totalAllocated - r.totalFreed; usage > r.peakMemory {
		r.peakMemory = usage
	}
	if logAlloc {
		r.log.Debug("register", "addr", addr, "size", size, "origin", org.String())
	}
}

// unregister unlinks and destroys the most recently registered record for
// addr, updating the freed counters. Returns false, with counters untouched,
// when addr is not tracked (never registered, or already unregistered).
// A zero addr returns true: releasing nothing is not an error.
func (r *Registry) unregister(addr uintptr, org Origin) bool {
	if addr == 0 {
		return true
	}
	for pp := &r.buckets[r.hash(addr)]; *pp != nil; pp = &(*pp).next {
		rec := *pp
		if rec.Addr != addr {
			continue
		}
		*pp = rec.next
		rec.next = nil

		r.totalFreed += uint64(rec.Size)
		r.freeCalls++
		if logAlloc {
			r.log.Debug("unregister", "addr", addr, "size", rec.Size, "origin", org.String())
		}
		return true
	}
	return false
}

// Range calls fn for every live record, walking buckets in index order and
// each chain most-recently-registered first. Iteration stops early when fn
// returns false. The registry must not be mutated during the walk.
func (r *Registry) Range(fn func(*Record) bool) {
	for _, rec := range r.buckets {
		for ; rec != nil; rec = rec.next {
			if !fn(rec) {
				return
			}
		}
	}
}

// Stats returns a snapshot of the counter set.
func (r *Registry) Stats() Stats {
	return Stats{
		TotalAllocated:  r.totalAllocated,
		TotalFreed:      r.totalFreed,
		CurrentUsage:    r.totalAllocated - r.totalFreed,
		PeakUsage:       r.peakMemory,
		AllocationCalls: r.allocCalls,
		FreeCalls:       r.freeCalls,
		PotentialLeaks:  r.allocCalls - r.freeCalls,
		Buckets:         len(r.buckets),
	}
}

// CurrentUsage returns the bytes currently tracked as live.
func (r *Registry) CurrentUsage() uint64 {
	return r.totalAllocated - r.totalFreed
}

// PeakUsage returns the maximum observed concurrent usage.
func (r *Registry) PeakUsage() uint64 {
	return r.peakMemory
}

// AllocationCalls returns the number of successful tracked allocations.
func (r *Registry) AllocationCalls() uint64 {
	return r.allocCalls
}

// FreeCalls returns the number of tracked releases that found a record.
func (r *Registry) FreeCalls() uint64 {
	return r.freeCalls
}
