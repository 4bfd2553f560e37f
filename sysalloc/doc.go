// Package sysalloc provides raw allocator adapters for the track package.
//
// Two families are available:
//
//   - Heap: a pure-Go allocator that hands out addresses of pinned byte
//     slices. Portable, cheap, and the right default for tests and demos.
//   - Mmap: anonymous-page allocations obtained directly from the operating
//     system on unix builds, with a Heap-backed fallback elsewhere.
//
// Limit wraps any allocator with a byte budget, turning it into one that can
// fail deterministically; useful for exercising allocation-failure paths.
//
// Allocators are not thread-safe. None of them perform any tracking; that is
// the track package's job.
package sysalloc
