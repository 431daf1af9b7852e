package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/cardflow/internal/config"
	"github.com/phrazzld/cardflow/internal/service/auth"
)

func newTokenCmd() *cobra.Command {
	var (
		secret   string
		subject  string
		lifetime time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the intake API",
		Long: `Issue a bearer token signed with the server's JWT secret. The secret
defaults to CARDFLOW_AUTH_JWT_SECRET.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			minutes := int(lifetime / time.Minute)
			if minutes < 1 {
				return fmt.Errorf("lifetime must be at least one minute")
			}
			svc, err := auth.NewJWTService(config.AuthConfig{
				JWTSecret:            secret,
				TokenLifetimeMinutes: minutes,
			})
			if err != nil {
				return err
			}
			token, err := svc.GenerateToken(cmd.Context(), subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("CARDFLOW_AUTH_JWT_SECRET"), "JWT signing secret")
	cmd.Flags().StringVar(&subject, "subject", "cardctl", "producer name carried by the token")
	cmd.Flags().DurationVar(&lifetime, "lifetime", time.Hour, "token lifetime")
	return cmd
}
