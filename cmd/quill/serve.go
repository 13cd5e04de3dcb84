package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/quill"
)

var watch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and preview it locally",
	Long: `serve builds the site, then serves the output directory over HTTP.
With --watch it rebuilds whenever a post or static file changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := quill.New(siteCfg)
		if _, err := app.Build(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if watch {
			go func() {
				if err := app.Watch(ctx); err != nil {
					app.Logger.Errorf("watch: %v", err)
				}
			}()
		}

		errc := make(chan error, 1)
		go func() { errc <- app.Serve() }()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		app.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":3000", "address to listen on")
	serveCmd.Flags().BoolVar(&watch, "watch", false, "rebuild when content or static files change")
}
