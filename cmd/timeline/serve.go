package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/introspection"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/timeline/pkg/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve timelines of the vault over HTTP",
	Long: `Serve timelines of the vault over HTTP.

  GET /timeline/{note}?sort=desc&reference=2018-08-21[&format=text]
  GET /dates/{note}
  GET /state
  GET /metrics
  GET /healthz`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		root, err := resolveRoot()
		if err != nil {
			fatal("Error resolving vault", err)
		}
		svc, err := openService(root)
		if err != nil {
			fatal("Error initializing timeline", err)
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		components := []introspection.Introspectable{svc}
		if repo, ok := svc.Repository().(introspection.Introspectable); ok {
			components = append(components, repo)
		}

		router, err := server.NewRouter(server.Config{
			Service:    svc,
			Logger:     slog.Default(),
			Registry:   reg,
			Components: components,
		})
		if err != nil {
			fatal("Error building router", err)
		}

		slog.Info("serving vault", "root", root)
		if err := server.Serve(ctx, serveAddr, router, slog.Default()); err != nil {
			fatal("Error serving", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
}
