// Package doctor provides environment preflight checks for toolhub.
package doctor

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// APIKey is the configured assistant key. Only its presence is reported.
	APIKey string
	// Model is the configured assistant model name.
	Model string
	// SkipAssist skips the assistant checks.
	SkipAssist bool
	// ClipboardSupported reports whether a clipboard utility is available.
	ClipboardSupported func() bool
	// OutputDir must be writable for saved output files.
	OutputDir string
	// InputFiles are import files to verify on disk.
	InputFiles []string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- assistant --------------------------------------------------------
	if cfg.SkipAssist {
		fmt.Fprintf(w, "%s assistant: skipped\n", PassMark)
	} else {
		if strings.TrimSpace(cfg.APIKey) == "" {
			res.fail("assistant API key: not set")
			fmt.Fprintf(w, "%s assistant API key: not set (set GEMINI_API_KEY or assist.api_key)\n", FailMark)
		} else {
			fmt.Fprintf(w, "%s assistant API key: %s\n", PassMark, maskKey(cfg.APIKey))
		}
		if strings.TrimSpace(cfg.Model) == "" {
			res.fail("assistant model: empty")
			fmt.Fprintf(w, "%s assistant model: empty\n", FailMark)
		} else {
			fmt.Fprintf(w, "%s assistant model: %s\n", PassMark, cfg.Model)
		}
	}

	// ---- clipboard --------------------------------------------------------
	if cfg.ClipboardSupported != nil {
		if cfg.ClipboardSupported() {
			fmt.Fprintf(w, "%s clipboard: available\n", PassMark)
		} else {
			res.fail("clipboard: no clipboard utility found")
			fmt.Fprintf(w, "%s clipboard: unavailable (install xclip, xsel or wl-clipboard)\n", FailMark)
		}
	}

	// ---- output directory -------------------------------------------------
	if cfg.OutputDir != "" {
		if err := checkWritable(cfg.OutputDir); err != nil {
			res.fail(fmt.Sprintf("output dir %q: %v", cfg.OutputDir, err))
			fmt.Fprintf(w, "%s output dir %s: not writable (%v)\n", FailMark, cfg.OutputDir, err)
		} else {
			fmt.Fprintf(w, "%s output dir: %s\n", PassMark, cfg.OutputDir)
		}
	}

	// ---- input files ------------------------------------------------------
	for _, path := range cfg.InputFiles {
		if _, err := os.Stat(path); err != nil {
			res.fail(fmt.Sprintf("input file %q: %v", path, err))
			fmt.Fprintf(w, "%s input file %s: not found\n", FailMark, path)
		} else {
			fmt.Fprintf(w, "%s input file: %s\n", PassMark, path)
		}
	}

	return res
}

// checkWritable creates and removes a probe file in dir.
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".toolhub-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// maskKey keeps the last four characters of a key.
func maskKey(k string) string {
	k = strings.TrimSpace(k)
	if len(k) <= 4 {
		return strings.Repeat("*", len(k))
	}
	return strings.Repeat("*", len(k)-4) + k[len(k)-4:]
}
