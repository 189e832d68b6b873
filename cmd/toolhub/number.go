package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/go-toolhub/internal/numbase"
	"github.com/spf13/cobra"
)

func newNumberCmd() *cobra.Command {
	var base string
	var table int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "number [value]",
		Short: "Convert numbers between decimal, binary, octal and hexadecimal",
		Example: `  toolhub number 255
  toolhub number --base hex FF
  toolhub number --table 16`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if table > 0 {
				fmt.Fprintf(w, "%-8s %-10s %-6s %s\n", "Decimal", "Binary", "Octal", "Hex")
				for _, row := range numbase.ReferenceTable(table) {
					fmt.Fprintf(w, "%-8s %-10s %-6s %s\n", row.Decimal, row.Binary, row.Octal, row.Hexadecimal)
				}
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("a value is required (or use --table)")
			}

			from, err := numbase.ParseBase(base)
			if err != nil {
				return err
			}
			conv, err := numbase.Convert(args[0], from)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(conv)
			}

			fmt.Fprintf(w, "%s: %s\n", from.Label(), strings.TrimSpace(args[0]))
			for _, r := range conv.Others(from) {
				fmt.Fprintf(w, "%s: %s\n", r.Base.Label(), r.Value)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", numbase.Decimal.ID, "Base of the input value (decimal|binary|octal|hexadecimal, or 10|2|8|16)")
	cmd.Flags().IntVar(&table, "table", 0, "Print a quick-reference table for 0..N-1 and exit")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the conversion as JSON")

	return cmd
}
