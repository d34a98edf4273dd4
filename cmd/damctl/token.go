package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mediavault/internal/infrastructure/auth"
)

func newTokenCmd(a *app) *cobra.Command {
	var (
		secret  string
		subject string
		expiry  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a server started with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return fmt.Errorf("--secret (or JWT_SECRET) is required")
			}
			token, err := auth.NewTokenService(secret, expiry).Issue(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", envOr("JWT_SECRET", ""), "HMAC secret shared with the server")
	cmd.Flags().StringVar(&subject, "subject", "damctl", "Token subject")
	cmd.Flags().DurationVar(&expiry, "expiry", 24*time.Hour, "Token lifetime")
	return cmd
}
