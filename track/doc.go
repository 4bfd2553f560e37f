// Package track provides an allocation-tracking layer over raw memory
// allocators. It records the provenance (call site), size, and lifetime of
// every live allocation and renders aggregate statistics, a live-allocation
// dump, and a leak report on demand.
//
// # Overview
//
// The core abstraction is the Registry: a fixed-bucket hash table mapping a
// raw address to its tracking record. A Tracker wraps any Allocator and keeps
// the Registry up to date on every Malloc/Calloc/Realloc/Free:
//
//	reg, err := track.New(nil)
//	if err != nil {
//	    return err
//	}
//	defer reg.Shutdown()
//
//	tr := track.NewTracker(sysalloc.NewHeap(), reg)
//
//	addr, err := tr.Malloc(256, track.Here())
//	if err != nil {
//	    return err
//	}
//	// ... use the block ...
//	tr.Free(addr, track.Here())
//
// # Registries are explicit
//
// There is no package-level singleton. Every tracked operation and report
// function goes through a Registry handle, so independent registries can
// coexist (one per subsystem, one per test case) and startup ordering is a
// non-issue. Reset returns a registry to its initial empty state; Shutdown
// destroys all live records at the end of the registry's lifetime.
//
// # Reports
//
// Three formatters walk the registry and write bounded, truncation-safe text
// into a caller-supplied buffer:
//
//   - FormatStats: aggregate counters plus the configured bucket count
//   - FormatAllocations: one line per live allocation
//   - FormatLeaks: the same records framed as leak findings
//
// All three never write past the buffer bound, terminate the buffer with a
// NUL whenever its capacity is at least one byte, and return -1 for a nil or
// empty buffer. StatsString, AllocationsString, and LeaksString are
// convenience wrappers that allocate up to Config.MaxReportBytes.
//
// A record still live when a leak report is generated is a *potential* leak:
// the registry has no notion of "freed versus still expected to be freed",
// so the leak report is simply what is live right now.
//
// # Duplicate registrations
//
// Registering an address that is already tracked creates a shadow record.
// The policy is last-registered-wins: registration prepends without scanning
// for duplicates, and unregistration removes the most recently registered
// record for that address first. See the Registry documentation.
//
// # Diagnostics
//
// Failures never change control flow; they surface through the configured
// *slog.Logger (discarded by default). Setting the MEMTRACK_LOG_ALLOC
// environment variable additionally logs every register and unregister at
// debug level.
//
// # Thread safety
//
// Registry and Tracker are not thread-safe. Callers must synchronize
// externally; because bucket chains and aggregate counters are mutated
// together, a single lock around each tracked operation is the only safe
// granularity.
package track
