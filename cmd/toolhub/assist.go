package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/go-toolhub/internal/assist"
	"github.com/example/go-toolhub/internal/catalog"
	"github.com/example/go-toolhub/internal/config"
	"github.com/example/go-toolhub/internal/textio"
	"github.com/spf13/cobra"
)

// newAsker builds the assistant client; tests replace it.
var newAsker = func(ctx context.Context, cfg config.Config) (assist.Asker, error) {
	return assist.New(ctx, cfg.Assist.APIKey,
		assist.WithModel(cfg.Assist.Model),
		assist.WithTemperature(cfg.Assist.Temperature),
		assist.WithMaxImageBytes(cfg.Assist.MaxImageBytes),
		assist.WithRequestsPerMinute(cfg.Assist.RequestsPerMinute),
		assist.WithLogger(slog.Default()),
	)
}

func newAssistCmd() *cobra.Command {
	var topic string
	var vendor string
	var image string
	var out string
	var raw bool
	var width int
	var list bool

	cmd := &cobra.Command{
		Use:   "assist [question...]",
		Short: "Ask the network assistant, optionally about a topology diagram",
		Example: `  toolhub assist --topic routing --vendor juniper "configure OSPF area 0"
  toolhub assist --image lab.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if list {
				fmt.Fprintln(w, "Topics:")
				for _, t := range assist.Topics() {
					fmt.Fprintf(w, "  %-11s %s %s\n", t.ID, t.Icon, t.Label)
				}
				fmt.Fprintln(w, "Vendors:")
				for _, v := range assist.Vendors() {
					fmt.Fprintf(w, "  %-11s %s\n", v.ID, v.Label)
				}
				return nil
			}

			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			req, err := buildAssistRequest(topic, vendor, strings.Join(args, " "), image, cfg.Assist.MaxImageBytes)
			if err != nil {
				return err
			}

			asker, err := newAsker(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			ans, err := asker.Ask(cmd.Context(), req)
			if err != nil {
				return err
			}

			path := outputPath(out, catalog.NetworkAssistant)
			if path != "-" && path != "" {
				return textio.WriteFile(path, ans.Text, w)
			}
			if raw {
				return writeResult("-", ans.Text, w)
			}
			_, err = fmt.Fprint(w, assist.Render(ans.Text, width))
			return err
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "general", "Topic id (see --list)")
	cmd.Flags().StringVar(&vendor, "vendor", "cisco", "Vendor id for configuration examples (see --list)")
	cmd.Flags().StringVar(&image, "image", "", "Network diagram image to analyze")
	cmd.Flags().StringVar(&out, "out", "-", "Save the markdown answer to a file ('auto' for the download filename)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown instead of rendering it")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for rendered answers")
	cmd.Flags().BoolVar(&list, "list", false, "List topics and vendors and exit")

	return cmd
}

func buildAssistRequest(topicID, vendorID, query, imagePath string, maxImageBytes int) (assist.Request, error) {
	topic, err := assist.LookupTopic(topicID)
	if err != nil {
		return assist.Request{}, err
	}
	vendor, err := assist.LookupVendor(vendorID)
	if err != nil {
		return assist.Request{}, err
	}

	req := assist.Request{Topic: topic, Vendor: vendor, Query: query}
	if imagePath != "" {
		img, err := assist.LoadImage(imagePath, maxImageBytes)
		if err != nil {
			return assist.Request{}, err
		}
		req.Image = img
	}
	if err := req.Validate(maxImageBytes); err != nil {
		return assist.Request{}, err
	}
	return req, nil
}
