package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/blockswap/blockswap/internal/api"
	"github.com/blockswap/blockswap/pkg/cache"
	"github.com/blockswap/blockswap/pkg/history"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		mongoURI string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the blockswap HTTP API. The server exposes the conversion pipeline
over JSON: /api/convert, /api/analyze, /api/audit, plus read endpoints
for categories, profiles, and run history.

With --redis, analysis results are cached in Redis instead of local
files. With --mongo, run history is stored in MongoDB so multiple
replicas share it.

Examples:
  blockswap serve
  blockswap serve --addr :9090 --redis redis://localhost:6379/0
  blockswap serve --mongo mongodb://localhost:27017`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(false)
			if err != nil {
				return err
			}
			defer runner.Close()

			if redisURL != "" {
				// Redis may still be starting when launched alongside the
				// server; the ping failure is marked retryable.
				var rc *cache.RedisCache
				err := cache.RetryWithBackoff(cmd.Context(), func() error {
					var connErr error
					rc, connErr = cache.NewRedisCache(cmd.Context(), redisURL)
					return connErr
				})
				if err != nil {
					return err
				}
				runner.Cache = rc
				c.Logger.Info("using redis cache")
			}
			if mongoURI != "" {
				store, err := history.NewMongoStore(cmd.Context(), history.MongoConfig{URI: mongoURI})
				if err != nil {
					return err
				}
				defer func() {
					_ = store.Close(context.Background())
				}()
				runner.History = store
				c.Logger.Info("using mongodb history")
			}

			_, profiles, err := c.newRegistry()
			if err != nil {
				return err
			}

			server := api.NewServer(runner, profiles, runner.History, c.Logger)
			return server.Serve(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for the analysis cache")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb URI for run history")

	return cmd
}
