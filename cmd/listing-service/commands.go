package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"listing-service/internal"
	token_adapter "listing-service/internal/adapters/jwt"
	"listing-service/internal/configs"
	"listing-service/internal/core/domain"
)

func loadConfig(envFile string) (*configs.AppConfig, error) {
	if envFile != "" {
		return configs.LoadConfig(envFile)
	}
	return configs.LoadConfig()
}

func serveCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return fmt.Errorf("error loading application configuration: %w", err)
			}

			application, err := internal.NewApp(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run()
		},
	}
}

func migrateCmd(envFile *string) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the postgres schema or mongo indexes for the configured storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return fmt.Errorf("error loading application configuration: %w", err)
			}

			logger, fluentClient, err := internal.NewLogger(cfg)
			if err != nil {
				return err
			}
			if fluentClient != nil {
				defer fluentClient.Close()
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return internal.Migrate(ctx, cfg, logger)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "migration timeout")
	return cmd
}

// tokenCmd выпускает токен для локальной разработки тем же ключом, что проверяет сервер
func tokenCmd(envFile *string) *cobra.Command {
	var (
		userID string
		email  string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return fmt.Errorf("error loading application configuration: %w", err)
			}

			r := domain.Role(role)
			if r != domain.RoleUser && r != domain.RoleAdmin {
				return fmt.Errorf("unknown role %q (expected user or admin)", role)
			}

			svc, err := token_adapter.NewTokenService(cfg.Auth.JWTSecret)
			if err != nil {
				return err
			}
			token, err := svc.GenerateToken(cmd.Context(), domain.Principal{UserID: userID, Email: email, Role: r}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "subject user id")
	cmd.Flags().StringVar(&email, "email", "", "subject email")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleUser), "user or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}
