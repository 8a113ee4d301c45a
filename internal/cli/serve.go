package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartbridge/internal/server"
	"github.com/matzehuels/chartbridge/pkg/bridge/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		storeKind string
		redisAddr string
		mongoURI  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chartbridge HTTP server",
		Long: `Serve runs the HTTP API: a build endpoint that turns JSON table payloads
into chart configurations, and the message intake that applies live updates
to registered chart instances.

The instance registry backend is selected with --store:
  memory  in-process, lost on restart (default)
  file    JSON files under ~/.config/chartbridge/instances/
  redis   shared across server replicas
  mongo   persistent across restarts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			reg, err := c.newStore(cmd, storeKind, redisAddr, mongoURI)
			if err != nil {
				return err
			}
			defer reg.Close()

			srv := server.New(server.Config{
				Store:    reg,
				CacheTTL: c.Config.ParsedCacheTTL(),
				Logger:   loggerFromContext(ctx),
			})

			printInfo("Serving on %s (store: %s)", addr, storeKind)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cfg := c.Config.Server
	cmd.Flags().StringVar(&addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().StringVar(&storeKind, "store", cfg.Store, "instance registry backend (memory, file, redis, mongo)")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", cfg.RedisAddr, "redis address for --store redis")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", cfg.MongoURI, "mongodb connection string for --store mongo")

	return cmd
}

// newStore creates the instance registry backend selected by kind.
func (c *CLI) newStore(cmd *cobra.Command, kind, redisAddr, mongoURI string) (store.Store, error) {
	ctx := cmd.Context()
	switch kind {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore("")
	case "redis":
		return store.NewRedisStore(ctx, store.RedisConfig{Addr: redisAddr})
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
	default:
		return nil, fmt.Errorf("unknown store backend %q (want memory, file, redis, or mongo)", kind)
	}
}
