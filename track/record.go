package track

import "time"

// Record is the tracking metadata for one live allocation. Records are owned
// exclusively by the registry bucket that holds them and are immutable once
// registered; an address reused after release gets a fresh record.
type Record struct {
	// Addr is the raw address of the tracked block and acts as the
	// unique key.
	Addr uintptr

	// Size is the byte count requested at allocation or resize time.
	Size int

	// Origin is the call site that performed the allocation.
	Origin Origin

	// Time is the wall-clock time of registration.
	Time time.Time

	next *Record // bucket chain link, most recent first
}
