package scrollview

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with stderr redirected to a pipe and returns
// everything written to it.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDebugMode_LogsScrollActivity(t *testing.T) {
	SetDebugMode(true)
	defer SetDebugMode(false)

	v, _ := newTestViewport(t)
	out := captureStderr(t, func() {
		v.Scroll(Vec2{50, 0})  // strip redraw stats
		v.Scroll(Vec2{500, 0}) // clamped at the right edge
	})
	if !strings.Contains(out, "[scrollview]") {
		t.Fatalf("no debug prefix in output: %q", out)
	}
	if !strings.Contains(out, "redrew") {
		t.Errorf("expected redraw stats in output: %q", out)
	}
	if !strings.Contains(out, "clamped") {
		t.Errorf("expected a clamp line in output: %q", out)
	}
}

func TestReleaseMode_Silent(t *testing.T) {
	SetDebugMode(false)
	v, _ := newTestViewport(t)
	out := captureStderr(t, func() {
		v.Scroll(Vec2{500, 0})
		v.RedrawDisplay()
	})
	if out != "" {
		t.Errorf("debug output while disabled: %q", out)
	}
}
