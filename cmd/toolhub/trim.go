package main

import (
	"github.com/example/go-toolhub/internal/catalog"
	"github.com/example/go-toolhub/internal/text"
	"github.com/spf13/cobra"
)

func newTrimCmd() *cobra.Command {
	var inout ioFlags
	var unit string
	var side string
	var count int

	cmd := &cobra.Command{
		Use:   "trim",
		Short: "Remove words or letters from one side of every line",
		Example: `  toolhub trim --count 2 --side right --in list.txt
  toolhub trim --unit letter --count 3 --text "prefix-value"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec, err := buildTrimSpec(unit, side, count)
			if err != nil {
				return err
			}
			input, err := inout.read(cmd)
			if err != nil {
				return err
			}

			return inout.emit(cmd, catalog.WordRemover, text.ApplyTrim(input, spec))
		},
	}

	def := text.DefaultTrimSpec()
	inout.register(cmd)
	cmd.Flags().StringVar(&unit, "unit", string(def.Unit), "What to remove (word|letter)")
	cmd.Flags().StringVar(&side, "side", string(def.Side), "Which end of each line (left|right)")
	cmd.Flags().IntVar(&count, "count", def.Count, "How many units to remove per line (negative counts as 0)")

	return cmd
}

func buildTrimSpec(unit, side string, count int) (text.TrimSpec, error) {
	u, err := text.ParseUnit(unit)
	if err != nil {
		return text.TrimSpec{}, err
	}
	s, err := text.ParseSide(side)
	if err != nil {
		return text.TrimSpec{}, err
	}
	return text.TrimSpec{Unit: u, Count: count, Side: s}.Normalized(), nil
}
