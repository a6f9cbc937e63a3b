package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"portfolio/internal/app"
	"portfolio/internal/usecase"

	"github.com/spf13/cobra"
)

func (c *cli) newReposCmd() *cobra.Command {
	var static bool
	cmd := &cobra.Command{
		Use:   "repos",
		Short: "Refresh GitHub stars once and print the repository table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			container, err := app.NewContainer(cfg, c.logger())
			if err != nil {
				return err
			}
			defer container.Close()

			var res usecase.ReposResult
			if static {
				res = container.Repos.Static()
			} else if res, err = container.Repos.Refresh(cmd.Context()); err != nil {
				return err
			}
			return printRepos(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().BoolVar(&static, "static", false, "Print the seed data without calling GitHub")
	return cmd
}

func printRepos(w io.Writer, res usecase.ReposResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTARS\tFORKS\tLANGUAGE\tSOURCE")
	for _, r := range res.Repositories {
		lang := "-"
		if r.Language != nil && *r.Language != "" {
			lang = *r.Language
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", r.Name, r.StargazersCount, r.ForksCount, lang, r.DataSource)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fetched := "never"
	if res.FetchedAt != nil {
		fetched = res.FetchedAt.UTC().Format(time.RFC3339)
	}
	_, err := fmt.Fprintf(w, "\ntotal: %d (~ %s stars) source=%s fetched_at=%s\n", res.TotalStars, res.TotalStarsDisplay, res.Source, fetched)
	return err
}
