package main

import (
	"errors"
	"fmt"

	"github.com/example/go-toolhub/internal/doctor"
	"github.com/example/go-toolhub/internal/textio"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	var skipAssist bool
	var outDir string
	var inputs []string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run local environment checks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			result := doctor.Run(doctor.Config{
				APIKey:             cfg.Assist.APIKey,
				Model:              cfg.Assist.Model,
				SkipAssist:         skipAssist,
				ClipboardSupported: textio.ClipboardSupported,
				OutputDir:          outDir,
				InputFiles:         inputs,
			}, w)

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(w, "doctor checks passed")

			return nil
		},
	}

	cmd.Flags().BoolVar(&skipAssist, "skip-assist", false, "Skip the assistant configuration checks")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory that must be writable for saved output")
	cmd.Flags().StringArrayVar(&inputs, "input", nil, "Input file that must exist (repeatable)")

	return cmd
}
