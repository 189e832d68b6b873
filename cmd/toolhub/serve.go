package main

import (
	"github.com/example/go-toolhub/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the toolhub HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			return server.New(cfg, nil).Start(cmd.Context())
		},
	}

	return cmd
}
