package main

import (
	"fmt"

	"github.com/example/go-toolhub/internal/catalog"
	"github.com/example/go-toolhub/internal/text"
	"github.com/spf13/cobra"
)

func newCaseCmd() *cobra.Command {
	var inout ioFlags
	var mode string
	var list bool

	cmd := &cobra.Command{
		Use:   "case",
		Short: "Convert text between casing styles",
		Example: `  toolhub case --mode title --text "the lord of the rings"
  cat notes.txt | toolhub case --mode upper --out auto`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if list {
				for _, m := range text.CaseModes() {
					fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", m.Mode, m.Label)
				}
				return nil
			}

			selected, err := text.ParseCaseMode(mode)
			if err != nil {
				return err
			}
			input, err := inout.read(cmd)
			if err != nil {
				return err
			}

			return inout.emit(cmd, catalog.CaseConverter, text.ApplyCase(input, selected))
		},
	}

	inout.register(cmd)
	cmd.Flags().StringVar(&mode, "mode", string(text.CaseSentence),
		"Case mode (sentence|lower|upper|capitalized|title|toggle|alternating|inverse)")
	cmd.Flags().BoolVar(&list, "list", false, "List case modes and exit")

	return cmd
}
