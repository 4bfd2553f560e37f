package main

import (
	"math/rand"

	"github.com/joshuapare/memtrack/sysalloc"
	"github.com/joshuapare/memtrack/track"
)

// workload drives a random allocation churn through a Tracker so the
// explorer has live data to render. Growth is biased slightly above
// release so leaks accumulate over time.
type workload struct {
	tracker *track.Tracker
	rng     *rand.Rand
	live    []uintptr
}

func newWorkload(reg *track.Registry, seed int64) (*workload, error) {
	tracker, err := track.NewTracker(sysalloc.NewHeap(), reg)
	if err != nil {
		return nil, err
	}
	return &workload{
		tracker: tracker,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

// step performs one round of churn: a few allocations, the occasional
// resize, and fewer frees than allocations.
func (w *workload) step() {
	for i := 0; i < 2+w.rng.Intn(3); i++ {
		size := 16 + w.rng.Intn(4096)
		addr, err := w.tracker.Malloc(size, track.Here())
		if err != nil {
			continue
		}
		w.live = append(w.live, addr)
	}

	if len(w.live) > 0 && w.rng.Intn(4) == 0 {
		i := w.rng.Intn(len(w.live))
		addr, err := w.tracker.Realloc(w.live[i], 16+w.rng.Intn(8192), track.Here())
		if err == nil {
			w.live[i] = addr
		}
	}

	for i := 0; i < 1+w.rng.Intn(3) && len(w.live) > 0; i++ {
		j := w.rng.Intn(len(w.live))
		w.tracker.Free(w.live[j], track.Here())
		w.live[j] = w.live[len(w.live)-1]
		w.live = w.live[:len(w.live)-1]
	}
}

// drain frees everything the workload still holds.
func (w *workload) drain() {
	for _, addr := range w.live {
		w.tracker.Free(addr, track.Here())
	}
	w.live = w.live[:0]
}
