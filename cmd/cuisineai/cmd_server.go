package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/cuisineai/app/routes"
	"github.com/shashiranjanraj/cuisineai/config"
	"github.com/shashiranjanraj/cuisineai/internal/kernel"
	"github.com/shashiranjanraj/cuisineai/internal/server"
	"github.com/shashiranjanraj/cuisineai/pkg/logger"
	"github.com/shashiranjanraj/cuisineai/pkg/router"
)

// cuisineai serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath, envPath)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		k, err := kernel.Boot(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := k.Shutdown(context.Background()); err != nil {
				logger.Error("shutdown", "error", err)
			}
		}()

		return server.Start(ctx, cfg.Addr(), k.Handler())
	},
}

// cuisineai route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		passthrough := func(next http.Handler) http.Handler { return next }
		routes.RegisterAPI(r, routes.Controllers{}, passthrough)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range r.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
