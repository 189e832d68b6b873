package doctor_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-toolhub/internal/doctor"
)

func supported() bool   { return true }
func unsupported() bool { return false }

// ---------------------------------------------------------------------------
// all-pass scenario
// ---------------------------------------------------------------------------

func TestRun_AllChecksPass(t *testing.T) {
	cfg := doctor.Config{
		APIKey:             "AIzaSyExample1234",
		Model:              "gemini-2.0-flash",
		ClipboardSupported: supported,
		OutputDir:          t.TempDir(),
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Errorf("expected all checks to pass; failures: %v", result.Failures())
	}

	if !strings.Contains(out.String(), "assistant") {
		t.Error("output should mention the assistant")
	}

	if strings.Contains(out.String(), "AIzaSyExample") {
		t.Error("output must not contain the full API key")
	}

	if !strings.Contains(out.String(), "1234") {
		t.Error("output should show the key suffix")
	}
}

// ---------------------------------------------------------------------------
// assistant
// ---------------------------------------------------------------------------

func TestRun_MissingAPIKeyFails(t *testing.T) {
	cfg := doctor.Config{Model: "gemini-2.0-flash"}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure when API key is missing")
	}

	if !hasFailureContaining(result.Failures(), "API key") {
		t.Errorf("expected failure mentioning API key, got: %v", result.Failures())
	}
}

func TestRun_EmptyModelFails(t *testing.T) {
	cfg := doctor.Config{APIKey: "k-123456"}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "model") {
		t.Errorf("expected failure mentioning model, got: %v", result.Failures())
	}
}

func TestRun_SkipAssist(t *testing.T) {
	var out strings.Builder
	result := doctor.Run(doctor.Config{SkipAssist: true}, &out)

	if result.Failed() {
		t.Errorf("skipped assistant should not fail: %v", result.Failures())
	}

	if !strings.Contains(out.String(), "skipped") {
		t.Errorf("output should say skipped, got %q", out.String())
	}
}

// ---------------------------------------------------------------------------
// clipboard
// ---------------------------------------------------------------------------

func TestRun_ClipboardUnavailableFails(t *testing.T) {
	cfg := doctor.Config{SkipAssist: true, ClipboardSupported: unsupported}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "clipboard") {
		t.Errorf("expected clipboard failure, got: %v", result.Failures())
	}

	if !strings.Contains(out.String(), doctor.FailMark) {
		t.Error("output should contain the fail mark")
	}
}

// ---------------------------------------------------------------------------
// output directory
// ---------------------------------------------------------------------------

func TestRun_OutputDirMissingFails(t *testing.T) {
	cfg := doctor.Config{
		SkipAssist: true,
		OutputDir:  filepath.Join(t.TempDir(), "does-not-exist"),
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "output dir") {
		t.Errorf("expected output dir failure, got: %v", result.Failures())
	}
}

func TestRun_OutputDirProbeIsRemoved(t *testing.T) {
	dir := t.TempDir()

	var out strings.Builder
	doctor.Run(doctor.Config{SkipAssist: true, OutputDir: dir}, &out)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("probe file left behind: %v", entries)
	}
}

// ---------------------------------------------------------------------------
// input files
// ---------------------------------------------------------------------------

func TestRun_InputFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(present, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	missing := filepath.Join(dir, "missing.txt")

	cfg := doctor.Config{SkipAssist: true, InputFiles: []string{present, missing}}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	failures := result.Failures()
	if len(failures) != 1 || !strings.Contains(failures[0], "missing.txt") {
		t.Errorf("want one failure for missing.txt, got %v", failures)
	}
}

func TestResult_AddFailure(t *testing.T) {
	var r doctor.Result
	if r.Failed() {
		t.Fatal("zero Result should not be failed")
	}

	r.AddFailure("config: bad")
	if !r.Failed() || r.Failures()[0] != "config: bad" {
		t.Errorf("Failures() = %v", r.Failures())
	}
}

func hasFailureContaining(failures []string, substr string) bool {
	for _, f := range failures {
		if strings.Contains(f, substr) {
			return true
		}
	}
	return false
}
