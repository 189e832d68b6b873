package main

import (
	"fmt"
	"log/slog"

	"github.com/example/go-toolhub/internal/text"
	"github.com/example/go-toolhub/internal/textio"
	"github.com/example/go-toolhub/internal/tui"
	"github.com/spf13/cobra"
)

func newTUICmd() *cobra.Command {
	var tool string
	var mode string
	var in string
	var outDir string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive case converter and word remover",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			opts := tui.Options{
				ImportPath: in,
				OutputDir:  outDir,
				CaseDelay:  cfg.Live.CaseDebounce(),
				TrimDelay:  cfg.Live.TrimDebounce(),
				Clipboard:  textio.SystemClipboard(),
				Logger:     slog.Default(),
			}

			switch tool {
			case "case":
				opts.Tool = tui.ToolCase
			case "trim":
				opts.Tool = tui.ToolTrim
			default:
				return fmt.Errorf("unknown tool %q (want case|trim)", tool)
			}

			if opts.Mode, err = text.ParseCaseMode(mode); err != nil {
				return err
			}

			if in != "" {
				if opts.InitialText, err = textio.ReadFile(in); err != nil {
					return err
				}
			}

			return tui.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&tool, "tool", "case", "Tool to open first (case|trim)")
	cmd.Flags().StringVar(&mode, "mode", string(text.CaseSentence), "Initial case mode")
	cmd.Flags().StringVar(&in, "in", "", "File loaded at start and re-imported with ctrl+o")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for files saved with ctrl+s (default: working directory)")

	return cmd
}
