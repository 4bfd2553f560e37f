package track

import (
	"errors"
	"testing"
)

// Test_Registry_Defaults checks that a nil config selects the documented
// defaults.
func Test_Registry_Defaults(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Buckets() != DefaultBuckets {
		t.Fatalf("expected %d buckets, got %d", DefaultBuckets, r.Buckets())
	}
	if r.maxReport != DefaultMaxReportBytes {
		t.Fatalf("expected report cap %d, got %d", DefaultMaxReportBytes, r.maxReport)
	}
}

// Test_Registry_BucketValidation checks that non-power-of-two bucket counts
// are rejected at configuration time.
func Test_Registry_BucketValidation(t *testing.T) {
	for _, n := range []int{1000, 3, -8, 2047} {
		if _, err := New(&Config{Buckets: n}); !errors.Is(err, ErrBucketCount) {
			t.Fatalf("Buckets=%d: expected ErrBucketCount, got %v", n, err)
		}
	}
	for _, n := range []int{1, 2, 64, 2048} {
		if _, err := New(&Config{Buckets: n}); err != nil {
			t.Fatalf("Buckets=%d: unexpected error %v", n, err)
		}
	}
}

// Test_Registry_RoundTrip registers one address and unregisters it,
// expecting a zero net change and no trace of the address afterwards.
func Test_Registry_RoundTrip(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}

	r.register(0xbeef0, 64, Origin{File: "a.go", Line: 1})
	if got := r.CurrentUsage(); got != 64 {
		t.Fatalf("usage after register = %d, want 64", got)
	}

	if !r.unregister(0xbeef0, Origin{}) {
		t.Fatal("unregister of tracked address returned false")
	}
	if got := r.AllocationCalls() - r.FreeCalls(); got != 0 {
		t.Fatalf("net call count = %d, want 0", got)
	}
	r.Range(func(rec *Record) bool {
		t.Fatalf("unexpected live record: %+v", rec)
		return false
	})
}

// Test_Registry_NullAddress checks the null edge cases: registering address
// zero is a silent no-op, unregistering it reports success, and neither
// touches a counter.
func Test_Registry_NullAddress(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	r.register(0, 100, Origin{})
	if !r.unregister(0, Origin{}) {
		t.Fatal("unregister(0) must return true")
	}
	if st := r.Stats(); st.AllocationCalls != 0 || st.FreeCalls != 0 || st.TotalAllocated != 0 {
		t.Fatalf("counters moved on null address: %+v", st)
	}
}

// Test_Registry_UnknownUnregister checks that a miss leaves every counter
// untouched.
func Test_Registry_UnknownUnregister(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	r.register(0x100, 10, Origin{})
	before := r.Stats()

	if r.unregister(0xdead, Origin{}) {
		t.Fatal("unregister of unknown address returned true")
	}
	if after := r.Stats(); after != before {
		t.Fatalf("counters changed on miss: before=%+v after=%+v", before, after)
	}
}

// Test_Registry_ShadowRecords pins the duplicate-registration policy:
// last-registered-wins. The newest record for an address is found first and
// removed first.
func Test_Registry_ShadowRecords(t *testing.T) {
	r, err := New(&Config{Buckets: 1})
	if err != nil {
		t.Fatal(err)
	}

	r.register(0x500, 10, Origin{File: "old.go", Line: 1})
	r.register(0x500, 20, Origin{File: "new.go", Line: 2})

	var first *Record
	r.Range(func(rec *Record) bool {
		first = rec
		return false
	})
	if first == nil || first.Size != 20 {
		t.Fatalf("expected newest shadow first, got %+v", first)
	}

	if !r.unregister(0x500, Origin{}) {
		t.Fatal("unregister failed")
	}
	if got := r.Stats().TotalFreed; got != 20 {
		t.Fatalf("freed %d bytes, want the newest shadow's 20", got)
	}

	var left []*Record
	r.Range(func(rec *Record) bool {
		left = append(left, rec)
		return true
	})
	if len(left) != 1 || left[0].Size != 10 {
		t.Fatalf("expected the older record to survive, got %v", left)
	}
}

// Test_Registry_CollisionChains forces every address into one bucket and
// removes from the middle of the chain.
func Test_Registry_CollisionChains(t *testing.T) {
	r, err := New(&Config{Buckets: 2})
	if err != nil {
		t.Fatal(err)
	}

	// All even addresses collide in bucket 0.
	r.register(0x10, 1, Origin{})
	r.register(0x20, 2, Origin{})
	r.register(0x30, 3, Origin{})

	if !r.unregister(0x20, Origin{}) {
		t.Fatal("failed to unlink mid-chain record")
	}

	var sizes []int
	r.Range(func(rec *Record) bool {
		sizes = append(sizes, rec.Size)
		return true
	})
	if len(sizes) != 2 || sizes[0] != 3 || sizes[1] != 1 {
		t.Fatalf("chain broken after mid-chain removal: %v", sizes)
	}
}

// Test_Registry_CounterInvariants exercises a mixed sequence and checks the
// §invariants that hold after every operation: usage equals allocated minus
// freed, and peak is monotone and never below usage.
func Test_Registry_CounterInvariants(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}

	check := func(lastPeak uint64) uint64 {
		st := r.Stats()
		if st.CurrentUsage != st.TotalAllocated-st.TotalFreed {
			t.Fatalf("usage invariant broken: %+v", st)
		}
		if st.PeakUsage < st.CurrentUsage {
			t.Fatalf("peak below usage: %+v", st)
		}
		if st.PeakUsage < lastPeak {
			t.Fatalf("peak decreased: %d -> %d", lastPeak, st.PeakUsage)
		}
		return st.PeakUsage
	}

	peak := uint64(0)
	addrs := []uintptr{0x1000, 0x2000, 0x3000, 0x4000}
	for i, a := range addrs {
		r.register(a, (i+1)*100, Origin{})
		peak = check(peak)
	}
	r.unregister(addrs[1], Origin{})
	peak = check(peak)
	r.unregister(addrs[3], Origin{})
	peak = check(peak)
	r.register(0x5000, 50, Origin{})
	check(peak)

	if got := r.PeakUsage(); got != 1000 {
		t.Fatalf("peak = %d, want 1000", got)
	}
}

// Test_Registry_ResetAndShutdown checks that both lifecycle hooks destroy
// all records and zero the counters.
func Test_Registry_ResetAndShutdown(t *testing.T) {
	for _, method := range []string{"reset", "shutdown"} {
		r, err := New(nil)
		if err != nil {
			t.Fatal(err)
		}
		r.register(0x100, 10, Origin{})
		r.register(0x200, 20, Origin{})

		if method == "reset" {
			r.Reset()
		} else {
			r.Shutdown()
		}

		if st := r.Stats(); st != (Stats{Buckets: r.Buckets()}) {
			t.Fatalf("%s left non-zero state: %+v", method, st)
		}
		count := 0
		r.Range(func(*Record) bool { count++; return true })
		if count != 0 {
			t.Fatalf("%s left %d live records", method, count)
		}

		// The registry stays usable afterwards.
		r.register(0x300, 30, Origin{})
		if r.CurrentUsage() != 30 {
			t.Fatalf("registry unusable after %s", method)
		}
	}
}

func BenchmarkRegisterUnregister(b *testing.B) {
	r, err := New(nil)
	if err != nil {
		b.Fatal(err)
	}
	org := Origin{File: "bench.go", Line: 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		addr := uintptr(i)*16 + 0x1000
		r.register(addr, 64, org)
		r.unregister(addr, org)
	}
}
