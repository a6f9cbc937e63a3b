package main

import (
	"encoding/json"
	"time"

	"portfolio/internal/infrastructure/ogmeta"
	"portfolio/internal/usecase"

	"github.com/spf13/cobra"
)

func (c *cli) newPreviewCmd() *cobra.Command {
	var (
		timeout  time.Duration
		headless bool
	)
	cmd := &cobra.Command{
		Use:   "preview [url]",
		Short: "Fetch a page and print its link-preview metadata as JSON",
		Long: `Runs the same extraction as GET /api/og-image, without the cache.

Example:
  sitectl preview https://go.dev`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var renderer usecase.PageRenderer
			if headless {
				renderer = ogmeta.NewHeadless(0)
			}
			uc := usecase.NewLinkPreviewUsecase(ogmeta.NewFetcher(timeout), renderer, nil, c.logger())

			res, err := uc.Preview(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 8*time.Second, "Upstream fetch timeout")
	cmd.Flags().BoolVar(&headless, "headless", false, "Render with headless Chrome when the static fetch has no title")
	return cmd
}
