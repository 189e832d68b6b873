package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/example/go-toolhub/internal/catalog"
	"github.com/example/go-toolhub/internal/config"
	"github.com/example/go-toolhub/internal/live"
	"github.com/example/go-toolhub/internal/text"
	"github.com/example/go-toolhub/internal/textio"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var tool string
	var mode string
	var unit string
	var side string
	var count int
	var in string
	var out string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run a text tool whenever the input file changes",
		Example: `  toolhub watch --in draft.txt --mode title --out auto
  toolhub watch --tool trim --count 1 --in list.txt --out trimmed.txt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if in == "" || in == "-" {
				return fmt.Errorf("--in must name a file to watch")
			}

			transform, toolID, delay, err := watchTransform(cfg.Live, tool, mode, unit, side, count)
			if err != nil {
				return err
			}

			target := outputPath(out, toolID)
			if sameFile(in, target) {
				return fmt.Errorf("--out must differ from --in")
			}

			log := slog.Default().With(slog.String("input", in), slog.String("tool", toolID))
			run := func() {
				input, err := textio.ReadFile(in)
				if err != nil {
					log.Warn("read failed", slog.String("error", err.Error()))
					return
				}
				if err := writeResult(target, transform(input), cmd.OutOrStdout()); err != nil {
					log.Error("write failed", slog.String("error", err.Error()))
					return
				}
				log.Info("updated", slog.String("output", target))
			}

			run()
			return live.Watch(cmd.Context(), in, live.NewDebouncer(delay), run, log)
		},
	}

	def := text.DefaultTrimSpec()
	cmd.Flags().StringVar(&tool, "tool", "case", "Tool to run (case|trim)")
	cmd.Flags().StringVar(&mode, "mode", string(text.CaseSentence), "Case mode for --tool case")
	cmd.Flags().StringVar(&unit, "unit", string(def.Unit), "Unit for --tool trim (word|letter)")
	cmd.Flags().StringVar(&side, "side", string(def.Side), "Side for --tool trim (left|right)")
	cmd.Flags().IntVar(&count, "count", def.Count, "Count for --tool trim")
	cmd.Flags().StringVar(&in, "in", "", "Input file to watch")
	cmd.Flags().StringVar(&out, "out", "-", "Output file ('-' for stdout, 'auto' for the download filename)")

	return cmd
}

// watchTransform resolves the tool flags into a transform, its catalog id
// and its recompute delay.
func watchTransform(cfg config.LiveConfig, tool, mode, unit, side string, count int) (text.Transform, string, time.Duration, error) {
	switch tool {
	case "case", catalog.CaseConverter:
		m, err := text.ParseCaseMode(mode)
		if err != nil {
			return nil, "", 0, err
		}
		return text.CaseTransform(m), catalog.CaseConverter, cfg.CaseDebounce(), nil
	case "trim", catalog.WordRemover:
		spec, err := buildTrimSpec(unit, side, count)
		if err != nil {
			return nil, "", 0, err
		}
		return text.TrimTransform(spec), catalog.WordRemover, cfg.TrimDebounce(), nil
	default:
		return nil, "", 0, fmt.Errorf("unknown tool %q (want case|trim)", tool)
	}
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
