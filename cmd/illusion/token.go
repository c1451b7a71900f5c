package main

import (
	"fmt"
	"time"

	"Illusion/internal/auth"
	"Illusion/internal/config"

	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the API, signed with TOKEN_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.AuthEnabled() {
				return fmt.Errorf("TOKEN_KEY is not set")
			}
			env := &auth.Authenv{JWTkey: []byte(cfg.TokenKey)}
			token, err := env.IssueToken(subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Who the token is for")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "Token lifetime")
	cmd.MarkFlagRequired("subject")
	return cmd
}
