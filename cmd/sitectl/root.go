package main

import (
	"fmt"

	"portfolio/internal/config"
	"portfolio/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type cli struct {
	verbose bool
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "sitectl",
		Short: "Operate the portfolio site: tokens, migrations, repo stars, previews, sitemap",
		Long: `sitectl runs the site's maintenance tasks against the same configuration as the server.

Configuration is read from the environment (APP_NAME, APP_ENV, HTTP_PORT, CONTENT_DIR, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewDevelopmentConfig()
			zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if c.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		c.newTokenCmd(),
		c.newMigrateCmd(),
		c.newReposCmd(),
		c.newPreviewCmd(),
		c.newSitemapCmd(),
	)
	return root
}

func (c *cli) logger() *zap.Logger {
	return logger.OrNop(c.log)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
