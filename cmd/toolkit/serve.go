package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/content-toolkit/internal/server"
	"github.com/jonathan/content-toolkit/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the toolkit over a local REST API.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app) error {
		port := a.cfg.Port
		if servePort != 0 {
			port = servePort
		}

		srv := server.New(server.Config{
			Port:      port,
			APIToken:  a.cfg.APIToken,
			RateLimit: ratelimit.LoadConfig(),
		}, a.tk, a.logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	})
}
