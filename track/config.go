package track

import (
	"io"
	"log/slog"
	"os"
)

// Runtime debug flag for register/unregister logging - controlled by the
// MEMTRACK_LOG_ALLOC env var.
var logAlloc = os.Getenv("MEMTRACK_LOG_ALLOC") != ""

const (
	// DefaultBuckets is the default size of the registry's bucket table.
	DefaultBuckets = 2048

	// DefaultMaxReportBytes caps the convenience report helpers
	// (StatsString and friends). Increase it if 2048 is not enough for
	// your allocation volume.
	DefaultMaxReportBytes = 2048
)

// Config configures a Registry. The zero value (or a nil *Config) selects
// the defaults.
type Config struct {
	// Buckets is the size of the fixed bucket table. Must be a power of
	// two; addresses are hashed by masking their numeric value to
	// Buckets-1. 0 selects DefaultBuckets.
	Buckets int

	// MaxReportBytes bounds the buffers allocated by the convenience
	// string helpers. 0 selects DefaultMaxReportBytes.
	MaxReportBytes int

	// Logger receives diagnostics (untracked frees, allocator failures).
	// Nil discards all diagnostic output.
	Logger *slog.Logger
}

func (cfg *Config) withDefaults() (Config, error) {
	out := Config{
		Buckets:        DefaultBuckets,
		MaxReportBytes: DefaultMaxReportBytes,
	}
	if cfg == nil {
		return out, nil
	}
	if cfg.Buckets != 0 {
		if cfg.Buckets < 0 || cfg.Buckets&(cfg.Buckets-1) != 0 {
			return out, ErrBucketCount
		}
		out.Buckets = cfg.Buckets
	}
	if cfg.MaxReportBytes != 0 {
		if cfg.MaxReportBytes < 0 {
			return out, ErrReportSize
		}
		out.MaxReportBytes = cfg.MaxReportBytes
	}
	out.Logger = cfg.Logger
	return out, nil
}

// discardLogger is the sink for diagnostics when no logger is configured.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
