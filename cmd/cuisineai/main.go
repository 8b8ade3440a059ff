package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/cuisineai/config"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/shashiranjanraj/cuisineai/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	configPath string
	envPath    string
)

var rootCmd = &cobra.Command{
	Use:           "cuisineai",
	Short:         "Recipe and nutrition API",
	Long:          "cuisineai serves login, registration and generated recipes and nutrition facts.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultJSONPath, "JSON config file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", config.DefaultEnvPath, "dotenv file")

	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
}
