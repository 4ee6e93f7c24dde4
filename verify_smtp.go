package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/sumitcodes/portfolio-backend/config"
	"github.com/sumitcodes/portfolio-backend/services"
)

var verifySMTPCmd = &cobra.Command{
	Use:   "verify-smtp",
	Short: "Connect and authenticate against the configured SMTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load(config.New())
		configureLogging(cfg)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.SMTP.Timeout)
		defer cancel()

		email := services.NewEmailService(services.NewSMTPMailer(cfg.SMTP), cfg.SMTP)
		if err := email.Verify(ctx); err != nil {
			return fmt.Errorf("email configuration test failed: %w", err)
		}

		log.Info().Str("host", cfg.SMTP.Host).Int("port", cfg.SMTP.Port).Msg("SMTP configuration verified")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifySMTPCmd)
}
