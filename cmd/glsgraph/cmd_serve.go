package main

import (
	"github.com/dd0wney/glsgraph/pkg/api"
	"github.com/dd0wney/glsgraph/pkg/config"
	"github.com/dd0wney/glsgraph/pkg/importer"
	"github.com/dd0wney/glsgraph/pkg/logging"
	"github.com/dd0wney/glsgraph/pkg/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stats, path queries, health and metrics over HTTP",
		Long: `Starts a read-only HTTP server:

  GET /health                                    component health
  GET /ready                                     database readiness
  GET /api/v1/stats                              graph size
  GET /api/v1/path?from=X[&to=Y][&max_depth=N]   critical path
  GET /metrics                                   prometheus metrics

SIGHUP reloads the configuration file and applies its log level.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			gin.SetMode(gin.ReleaseMode)
			tracer := importer.NewTracer(store, a.cfg.Query.MaxDepth, importer.WithLogger(a.logger))
			srv := api.NewServer(store, tracer, api.WithLogger(a.logger), api.WithMetrics(a.metrics))

			gs := server.NewGracefulServer(a.cfg.Server.Addr, srv.Router(), server.Timeouts{
				Read:     a.cfg.Server.ReadTimeout,
				Write:    a.cfg.Server.WriteTimeout,
				Shutdown: a.cfg.Server.ShutdownTimeout,
			}, a.logger)
			gs.SetConfigReloadFunc(a.reloadLogLevel)
			return gs.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :8080)")
	return cmd
}

// reloadLogLevel re-reads the configuration and applies its log level.
// Other settings need a restart.
func (a *app) reloadLogLevel() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	level := logging.ParseLevel(cfg.Log.Level)
	a.logger.SetLevel(level)
	a.logger.Info("log level reloaded", logging.String("level", level.String()))
	return nil
}
