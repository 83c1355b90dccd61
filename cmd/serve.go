package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/analytics"
	"github.com/Zachkp/folio/internal/server"
)

const cleanupInterval = 24 * time.Hour

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio",
	Long: `serve prerenders the page from the content store on every request and
serves the feeds, post bodies, static assets and the browser build. Unless
ANALYTICS=false, visits are recorded in a local sqlite database and exposed
through the token-protected admin API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != "" {
			appConfig.Port = servePort
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := server.Options{Config: appConfig, Logger: logger}
		if appConfig.Analytics {
			store, err := analytics.Open(ctx, appConfig.DBPath, analytics.Options{Logger: logger})
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Warn("closing analytics store", zap.Error(err))
				}
			}()
			go cleanupLoop(ctx, store)
			opts.Analytics = store
		}

		srv, err := server.New(opts)
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	},
}

// cleanupLoop enforces visit retention once at start and then daily.
func cleanupLoop(ctx context.Context, store *analytics.Store) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		if _, err := store.Cleanup(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("privacy cleanup failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}
