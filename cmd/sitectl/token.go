package main

import (
	"errors"
	"fmt"
	"time"

	"portfolio/internal/pkg/jwt"

	"github.com/spf13/cobra"
)

func (c *cli) newTokenCmd() *cobra.Command {
	var (
		ttl     time.Duration
		subject string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin bearer token",
		Long: `Signs an HS256 token with ADMIN_JWT_SECRET carrying role=admin.

Example:
  sitectl token --ttl 24h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Admin.Enabled() {
				return errors.New("ADMIN_JWT_SECRET is not set")
			}
			token, err := jwt.NewHMACService(cfg.Admin.JWTSecret, cfg.App.AppName).GenerateAdminToken(subject, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	cmd.Flags().StringVar(&subject, "subject", "admin", "Token subject")
	return cmd
}
