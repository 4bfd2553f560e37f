package track

import (
	"fmt"
	"io"
)

// boundedWriter appends formatted text to a fixed-capacity buffer, always
// reserving the final byte for a NUL terminator. Once full it drops further
// writes rather than overflowing.
type boundedWriter struct {
	buf []byte
	n   int // bytes written, excluding the terminator
}

func newBoundedWriter(b []byte) (*boundedWriter, bool) {
	if len(b) == 0 {
		return nil, false
	}
	b[0] = 0
	return &boundedWriter{buf: b}, true
}

// room reports whether at least one more content byte fits.
func (w *boundedWriter) room() bool {
	return w.n < len(w.buf)-1
}

// printf appends formatted text, truncating at capacity-1 and keeping the
// buffer NUL-terminated. Returns false once the buffer is full.
func (w *boundedWriter) printf(format string, args ...any) bool {
	if !w.room() {
		return false
	}
	s := fmt.Sprintf(format, args...)
	w.n += copy(w.buf[w.n:len(w.buf)-1], s)
	w.buf[w.n] = 0
	return w.room()
}

// FormatStats renders the counter set plus the configured bucket count into
// buffer as a single fixed-order report. The whole report is truncated if it
// does not fit. Returns the number of bytes written excluding the NUL
// terminator, len(buffer)-1 when truncated, or -1 for a nil or empty buffer.
func (r *Registry) FormatStats(buffer []byte) int {
	w, ok := newBoundedWriter(buffer)
	if !ok {
		return -1
	}
	st := r.Stats()
	w.printf("=== MEMORY STATISTICS ===\n"+
		"Total allocated:      %d bytes\n"+
		"Total freed:          %d bytes\n"+
		"Current usage:        %d bytes\n"+
		"Peak memory usage:    %d bytes\n"+
		"Allocation calls:     %d\n"+
		"Free calls:           %d\n"+
		"Potential leaks:      %d objects\n"+
		"Hash table size:      %d buckets\n",
		st.TotalAllocated,
		st.TotalFreed,
		st.CurrentUsage,
		st.PeakUsage,
		st.AllocationCalls,
		st.FreeCalls,
		st.PotentialLeaks,
		st.Buckets,
	)
	return w.n
}

// FormatAllocations renders a header line, one line per live record in
// registry iteration order, and a closing summary line into buffer. Record
// lines stop once capacity is exhausted; the buffer is NUL-terminated in
// every case. Return value follows the FormatStats contract.
func (r *Registry) FormatAllocations(buffer []byte) int {
	w, ok := newBoundedWriter(buffer)
	if !ok {
		return -1
	}
	if !w.printf("=== CURRENT ALLOCATIONS ===\n") {
		return w.n
	}
	count, bytes := 0, 0
	r.Range(func(rec *Record) bool {
		count++
		bytes += rec.Size
		return w.printf("  0x%x: %6d bytes @ %s\n", rec.Addr, rec.Size, rec.Origin)
	})
	if count == 0 {
		w.printf("  No active allocations\n")
	} else {
		w.printf("  Total: %d allocations, %d bytes\n", count, bytes)
	}
	return w.n
}

// FormatLeaks renders every record still live at the time of the call as a
// leak finding. Structure and bounds behavior match FormatAllocations; only
// the framing differs.
func (r *Registry) FormatLeaks(buffer []byte) int {
	w, ok := newBoundedWriter(buffer)
	if !ok {
		return -1
	}
	if !w.printf("=== MEMORY LEAK REPORT ===\n") {
		return w.n
	}
	count, bytes := 0, 0
	r.Range(func(rec *Record) bool {
		count++
		bytes += rec.Size
		return w.printf("  LEAK: %6d bytes at 0x%x (%s)\n", rec.Size, rec.Addr, rec.Origin)
	})
	if count == 0 {
		w.printf("  No memory leaks detected!\n")
	} else {
		w.printf("  TOTAL LEAKS: %d allocations, %d bytes\n", count, bytes)
	}
	return w.n
}

// StatsString renders the statistics report into a fresh buffer of up to
// Config.MaxReportBytes and returns it as a string (no NUL).
func (r *Registry) StatsString() string {
	return r.reportString((*Registry).FormatStats)
}

// AllocationsString renders the live-allocation report as a string.
func (r *Registry) AllocationsString() string {
	return r.reportString((*Registry).FormatAllocations)
}

// LeaksString renders the leak report as a string.
func (r *Registry) LeaksString() string {
	return r.reportString((*Registry).FormatLeaks)
}

func (r *Registry) reportString(format func(*Registry, []byte) int) string {
	buffer := make([]byte, r.maxReport)
	n := format(r, buffer)
	if n <= 0 {
		return ""
	}
	return string(buffer[:n])
}

// WriteReports writes all three reports to w, each followed by a blank
// line. Reports larger than Config.MaxReportBytes are truncated.
func (r *Registry) WriteReports(w io.Writer) error {
	for _, report := range []string{
		r.StatsString(),
		r.AllocationsString(),
		r.LeaksString(),
	} {
		if _, err := io.WriteString(w, report+"\n"); err != nil {
			return err
		}
	}
	return nil
}
