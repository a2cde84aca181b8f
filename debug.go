package scrollview

import (
	"fmt"
	"os"
)

// SetDebugMode enables or disables debug logging for the whole package.
// When enabled, per-scroll redraw stats, clamp events, zoom changes, and
// tile window rebuilds are logged to stderr. Off by default.
func SetDebugMode(enabled bool) {
	debugMode = enabled
}

var debugMode bool

// debugf prints one line to stderr when debug mode is on.
func debugf(format string, args ...any) {
	if !debugMode {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[scrollview] "+format+"\n", args...)
}
