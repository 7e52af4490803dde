package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentivo/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API server",
		Long:  "Start an HTTP server exposing the application state as a JSON API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			if cmd.Flags().Changed("port") {
				e.cfg.HTTP.Port = port
			}
			srv := web.NewServer(e.app, web.Options{
				AllowedOrigins: e.cfg.HTTP.AllowedOrigins,
				RPS:            e.cfg.RateLimit.RPS,
				Burst:          e.cfg.RateLimit.Burst,
			})
			return srv.ListenAndServe(ctx, e.cfg.HTTP.Port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on (overrides http.port)")

	return cmd
}
