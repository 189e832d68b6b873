// Package testutil provides shared helpers for tests.
//
// The Require* helpers call Skipf with a clear human-readable reason when the
// named prerequisite is absent, so integration tests remain runnable in
// partial environments without failing noisily.
//
// Typical usage:
//
//	func TestAssistIntegration(t *testing.T) {
//	    key := testutil.RequireGeminiKey(t)
//	    ...
//	}
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/example/go-toolhub/internal/textio"
)

// UpdateGoldenEnv, when set to 1, makes AssertGolden rewrite golden files.
const UpdateGoldenEnv = "TOOLHUB_UPDATE_GOLDEN"

// RequireGeminiKey skips the test unless GEMINI_API_KEY or
// TOOLHUB_ASSIST_API_KEY is set, and returns the key.
func RequireGeminiKey(tb testing.TB) string {
	tb.Helper()

	for _, env := range []string{"TOOLHUB_ASSIST_API_KEY", "GEMINI_API_KEY"} {
		if k := os.Getenv(env); k != "" {
			return k
		}
	}

	tb.Skipf("no Gemini API key; set GEMINI_API_KEY to run assistant integration tests")
	return ""
}

// RequireClipboard skips the test when no clipboard utility is available or,
// on Linux, when there is no display to own the selection.
func RequireClipboard(tb testing.TB) {
	tb.Helper()

	if !textio.ClipboardSupported() {
		tb.Skipf("clipboard utility not available (install xclip, xsel or wl-clipboard)")
		return
	}

	if runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		tb.Skipf("no DISPLAY or WAYLAND_DISPLAY; clipboard needs a graphical session")
	}
}

// WriteTempFile writes content to name inside a fresh temp dir and returns
// the full path.
func WriteTempFile(tb testing.TB, name, content string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("write temp file %s: %v", path, err)
	}
	return path
}

// AssertGolden compares got with the contents of the golden file at path.
// With TOOLHUB_UPDATE_GOLDEN=1 the file is rewritten instead.
func AssertGolden(tb testing.TB, path, got string) {
	tb.Helper()

	if os.Getenv(UpdateGoldenEnv) == "1" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			tb.Fatalf("create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			tb.Fatalf("update golden %s: %v", path, err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read golden %s: %v (run with %s=1 to create it)", path, err, UpdateGoldenEnv)
		return
	}
	if string(want) != got {
		tb.Errorf("output does not match %s\n--- got ---\n%s\n--- want ---\n%s", path, got, want)
	}
}
