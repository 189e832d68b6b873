package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/go-toolhub/internal/catalog"
	"github.com/spf13/cobra"
)

func newToolsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tools [query]",
		Short: "List the bundled tools, optionally filtered by a search query",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			tools := catalog.Filter(strings.Join(args, " "))

			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(tools)
			}

			if len(tools) == 0 {
				_, err := fmt.Fprintln(w, "No tools found")
				return err
			}
			for _, t := range tools {
				line := fmt.Sprintf("%-18s %s", t.ID, t.Description)
				if t.External() {
					line += " (" + t.ExternalURL + ")"
				}
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the tool list as JSON")

	return cmd
}
