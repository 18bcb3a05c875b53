package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/finfreedom/fincalc/internal/config"
	"github.com/finfreedom/fincalc/internal/httpapi"
)

// newTokenCommand issues bearer tokens signed with the server's JWT_SECRET, for local
// testing against the API.
func newTokenCommand() *cobra.Command {
	var envFile, email string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue a bearer token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig(envFile)
			if err != nil {
				return err
			}
			token, err := httpapi.NewAuthenticator(cfg.JWTSecret).IssueToken(args[0], email, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before reading the environment")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
