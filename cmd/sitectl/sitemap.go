package main

import (
	"portfolio/internal/content"
	"portfolio/internal/usecase"

	"github.com/spf13/cobra"
)

func (c *cli) newSitemapCmd() *cobra.Command {
	var robots bool
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Print sitemap.xml (or robots.txt) for the configured content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			res, err := content.LoadResume(cfg.Content.ContentDir)
			if err != nil {
				return err
			}

			blog := usecase.NewBlogUsecase(res.Blogs, res.Name, cfg.App.SiteURL, nil, nil, c.logger())
			profile := usecase.NewProfileUsecase(res, cfg.App.SiteURL, nil)
			sm := usecase.NewSitemapUsecase(cfg.App.SiteURL, blog).WithBookmarks(profile)

			out := cmd.OutOrStdout()
			if robots {
				_, err := out.Write([]byte(sm.Robots()))
				return err
			}
			b, err := sm.XML()
			if err != nil {
				return err
			}
			_, err = out.Write(append(b, '\n'))
			return err
		},
	}
	cmd.Flags().BoolVar(&robots, "robots", false, "Print robots.txt instead")
	return cmd
}
