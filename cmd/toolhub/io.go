package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/example/go-toolhub/internal/textio"
	"github.com/spf13/cobra"
)

// ioFlags are the input/output flags shared by the text commands.
type ioFlags struct {
	text string
	in   string
	out  string
	copy bool
}

func (f *ioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.text, "text", "", "Input text (if empty, read --in or stdin)")
	cmd.Flags().StringVar(&f.in, "in", "", "Input file ('-' for stdin)")
	cmd.Flags().StringVar(&f.out, "out", "-",
		"Output file ('-' for stdout, 'auto' for the tool's download filename)")
	cmd.Flags().BoolVar(&f.copy, "copy", false, "Also copy the result to the clipboard")
}

func (f *ioFlags) read(cmd *cobra.Command) (string, error) {
	return textio.ReadInput(f.text, f.in, cmd.InOrStdin())
}

// emit writes result to --out and optionally the clipboard.
// A clipboard failure is logged and does not fail the command.
func (f *ioFlags) emit(cmd *cobra.Command, toolID, result string) error {
	if err := writeResult(outputPath(f.out, toolID), result, cmd.OutOrStdout()); err != nil {
		return err
	}
	if f.copy {
		_ = textio.Copy(textio.SystemClipboard(), result, slog.Default())
	}
	return nil
}

// writeResult writes the exact bytes to a file. Stdout gets a trailing
// newline when the result lacks one.
func writeResult(out, result string, stdout io.Writer) error {
	if out == "" || out == "-" {
		if !strings.HasSuffix(result, "\n") {
			result += "\n"
		}
		_, err := io.WriteString(stdout, result)
		return err
	}
	if err := textio.WriteFile(out, result, stdout); err != nil {
		return err
	}
	slog.Debug("wrote output", slog.String("path", out), slog.Int("bytes", len(result)))
	return nil
}

// outputPath maps "auto" to the tool's download filename.
func outputPath(out, toolID string) string {
	if out == "auto" {
		return textio.DownloadName(toolID)
	}
	return out
}
