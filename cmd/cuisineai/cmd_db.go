package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/cuisineai/config"
	"github.com/shashiranjanraj/cuisineai/pkg/database"
	"github.com/shashiranjanraj/cuisineai/pkg/migration"
)

// withMigrator reads the database settings, connects and hands a migration
// runner to fn. The serving secrets are not required here.
func withMigrator(ctx context.Context, fn func(*migration.Runner) error) error {
	cfg, err := config.Read(configPath, envPath)
	if err != nil {
		return err
	}

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func(c *mongo.Client) { _ = c.Disconnect(context.Background()) }(client)

	return fn(migration.New(client.Database(cfg.MongoDatabase), os.Stdout))
}

// cuisineai migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Running migrations…")
		return withMigrator(cmd.Context(), func(r *migration.Runner) error {
			return r.Run(cmd.Context())
		})
	},
}

// cuisineai migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Rolling back last batch…")
		return withMigrator(cmd.Context(), func(r *migration.Runner) error {
			return r.Rollback(cmd.Context())
		})
	},
}

// cuisineai migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(r *migration.Runner) error {
			return r.Status(cmd.Context())
		})
	},
}
