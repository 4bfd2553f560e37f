package track

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Origin is the call-site label attached to an allocation for diagnostic
// purposes. It replaces the usual preprocessor-style file/line capture with
// an explicit value the caller passes alongside each tracked operation.
type Origin struct {
	File string
	Line int
}

// Here captures the origin of its own caller.
func Here() Origin {
	return Caller(1)
}

// Caller captures an origin skip frames above the caller of Caller.
// Caller(0) is equivalent to Here() called from the same spot.
func Caller(skip int) Origin {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Origin{}
	}
	return Origin{File: filepath.Base(file), Line: line}
}

// String renders the origin as "file:line". A zero origin renders as
// "unknown:0".
func (o Origin) String() string {
	if o.File == "" {
		return fmt.Sprintf("unknown:%d", o.Line)
	}
	return fmt.Sprintf("%s:%d", o.File, o.Line)
}
