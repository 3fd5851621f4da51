// package shared defines shared helpers
package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger creates the root [log.Logger] writing to w, with timestamps and
// caller reporting enabled.
//
// A nil writer logs to [os.Stderr] so dialog and report output on stdout
// stays clean.
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true}
	return log.NewWithOptions(w, opts)
}

// WithLogger derives a child [log.Logger] carrying the given key-value pairs
// on every entry. Each pipeline tags its entries with a component key.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevel adjusts the minimum [log.Level] the logger emits.
func SetLogLevel(l *log.Logger, ll log.Level) {
	l.SetLevel(ll)
}

// GenerateID generates a new v4 [uuid.UUID] as a string, used to make
// bootstrap staging directories unique per invocation.
func GenerateID() string {
	return uuid.New().String()
}
