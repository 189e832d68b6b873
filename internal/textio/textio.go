// Package textio moves text buffers in and out of toolhub: file import,
// file export and the system clipboard.
package textio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ContentType is the MIME type of every exported buffer.
const ContentType = "text/plain; charset=utf-8"

// ErrClipboardUnsupported is returned when no clipboard utility is available.
var ErrClipboardUnsupported = errors.New("clipboard not supported on this system")

// DownloadName returns the fixed export filename for a tool id,
// e.g. "case-converter-output.txt".
func DownloadName(toolID string) string {
	if toolID == "" {
		toolID = "toolhub"
	}
	return toolID + "-output.txt"
}

// ReadAll decodes r as UTF-8. A leading byte order mark is dropped and
// invalid byte sequences become U+FFFD.
func ReadAll(r io.Reader) (string, error) {
	dec := transform.NewReader(r, xunicode.UTF8BOM.NewDecoder())
	b, err := io.ReadAll(dec)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadFile imports a whole text file. "-" reads stdin.
func ReadFile(path string) (string, error) {
	if path == "-" {
		s, err := ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return s, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read input %s: %w", path, err)
	}
	return s, nil
}

// ReadInput picks the input buffer: explicit text first, then the file at
// path, then stdin. The buffer is returned verbatim.
func ReadInput(text, path string, stdin io.Reader) (string, error) {
	if text != "" {
		return text, nil
	}
	if path != "" {
		return ReadFile(path)
	}
	if stdin == nil {
		return "", fmt.Errorf("either provide --text, --in, or pipe text on stdin")
	}
	s, err := ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return s, nil
}

// WriteFile exports text exactly as given, without a byte order mark.
// "-" writes to stdout.
func WriteFile(path, text string, stdout io.Writer) error {
	if path == "-" {
		if stdout == nil {
			return fmt.Errorf("stdout writer is nil")
		}
		_, err := io.WriteString(stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Clipboard is the sink used by Copy.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// SystemClipboard returns the OS clipboard.
func SystemClipboard() Clipboard { return systemClipboard{} }

// ClipboardSupported reports whether a clipboard utility was found.
func ClipboardSupported() bool { return !clipboard.Unsupported }

// Copy writes text to cb. A failure is logged and returned; callers keep
// their displayed state as it was.
func Copy(cb Clipboard, text string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	if err := cb.WriteAll(text); err != nil {
		log.Error("copy failed",
			slog.Int("text_len", len(text)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	log.Debug("copied to clipboard", slog.Int("text_len", len(text)))
	return nil
}
