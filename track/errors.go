package track

import "errors"

var (
	// ErrBucketCount indicates a bucket count that is not a power of two.
	ErrBucketCount = errors.New("track: bucket count must be a power of two")

	// ErrReportSize indicates a non-positive MaxReportBytes setting.
	ErrReportSize = errors.New("track: max report bytes must be positive")

	// ErrNilAllocator indicates that a Tracker was constructed without an
	// allocator to wrap.
	ErrNilAllocator = errors.New("track: nil allocator")

	// ErrNilRegistry indicates that a Tracker was constructed without a
	// registry to record into.
	ErrNilRegistry = errors.New("track: nil registry")

	// ErrSizeOverflow indicates a count*size request that overflows int.
	ErrSizeOverflow = errors.New("track: allocation size overflows int")
)
