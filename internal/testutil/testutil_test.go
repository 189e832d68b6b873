package testutil_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/example/go-toolhub/internal/testutil"
)

func TestRequireGeminiKey_SkipsWhenAbsent(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("TOOLHUB_ASSIST_API_KEY", "")

	skipped := false
	fakeT := &skipTracker{TB: t, onSkip: func() { skipped = true }}
	if k := testutil.RequireGeminiKey(fakeT); k != "" {
		t.Errorf("key = %q; want empty", k)
	}
	if !skipped {
		t.Error("expected RequireGeminiKey to skip when no key is set")
	}
}

func TestRequireGeminiKey_ReturnsKey(t *testing.T) {
	t.Setenv("TOOLHUB_ASSIST_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "from-env")

	fakeT := &skipTracker{TB: t, onSkip: func() { t.Error("unexpected skip") }}
	if k := testutil.RequireGeminiKey(fakeT); k != "from-env" {
		t.Errorf("key = %q; want from-env", k)
	}
}

func TestRequireClipboard_SkipsWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	skipped := false
	fakeT := &skipTracker{TB: t, onSkip: func() { skipped = true }}
	testutil.RequireClipboard(fakeT)
	if !skipped && runtime.GOOS == "linux" {
		t.Error("expected RequireClipboard to skip without a display")
	}
}

func TestWriteTempFile(t *testing.T) {
	p := testutil.WriteTempFile(t, "in.txt", "hello")

	got, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("content = %q; want hello", got)
	}
}

func TestAssertGolden_UpdateThenCompare(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testdata", "out.golden")

	t.Setenv(testutil.UpdateGoldenEnv, "1")
	testutil.AssertGolden(t, path, "line\n")

	t.Setenv(testutil.UpdateGoldenEnv, "")
	testutil.AssertGolden(t, path, "line\n")
}

// skipTracker is a minimal testing.TB implementation that intercepts Skip calls.
type skipTracker struct {
	testing.TB
	onSkip func()
}

func (s *skipTracker) Helper() {}

func (s *skipTracker) Skipf(_ string, _ ...any) {
	s.onSkip()
	// Calling s.TB.Skip here would skip the outer test.
}
