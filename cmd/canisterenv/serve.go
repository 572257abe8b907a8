package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/icpkit/canisterenv"
	"github.com/icpkit/canisterenv/internal/cache/memory"
	"github.com/icpkit/canisterenv/internal/cli"
	"github.com/icpkit/canisterenv/internal/server"
	"github.com/icpkit/canisterenv/internal/worker"
	"github.com/icpkit/canisterenv/pkg/envelope"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sync worker behind an HTTP surface",
	Long:  `Starts the background sync worker for the selected network and exposes the resolved environment over HTTP, with Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		debug, _ := cmd.Flags().GetBool("debug")
		port, _ := cmd.Flags().GetString("port")

		tool, cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		logger := cli.NewLogger(debug)

		// Serve mode always caches: repeated HTTP hits should not
		// re-read metadata between sync cycles. Redis wins when
		// configured, otherwise in-process.
		if cfg.RedisAddr == "" {
			tool, err = canisterenv.New(dir,
				canisterenv.WithLogger(logger),
				canisterenv.WithHost(cfg.Host),
				canisterenv.WithPrefix(cfg.Prefix),
				canisterenv.WithExtraVars(cfg.Extra),
				canisterenv.WithCache(memory.New(), cfg.ActiveInterval.Std()),
			)
			if err != nil {
				return err
			}
		}

		reg := prometheus.NewRegistry()
		srv := server.New(tool, cfg.Network, reg, logger)

		w := worker.New(tool,
			worker.WithInterval(cfg.ActiveInterval.Std()),
			worker.WithLogger(logger),
		)

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		go w.Run(sigCtx)

		// Drain worker responses: log them and feed the sync metrics.
		go func() {
			for resp := range w.Responses() {
				switch resp.Msg {
				case worker.MsgSync:
					var data worker.SyncData
					if err := json.Unmarshal(resp.Data, &data); err != nil {
						logger.Warn("Undecodable sync snapshot", "id", resp.ID, "err", err)
						continue
					}
					srv.Metrics().Observe(data.Elapsed, nil)
					logger.Debug("Sync snapshot", "id", resp.ID, "elapsed", data.Elapsed)
				case worker.MsgError:
					srv.Metrics().Observe(0, errors.New("sync failed"))
					logger.Warn("Worker error", "id", resp.ID, "data", string(resp.Data))
				default:
					logger.Debug("Worker message", "msg", resp.Msg, "id", resp.ID)
				}
			}
		}()

		if err := w.Send(sigCtx, envelope.NewStart(envelope.RequestPayload{
			Network: cfg.Network,
			Host:    cfg.Host,
		})); err != nil {
			return fmt.Errorf("failed to start worker: %w", err)
		}

		httpSrv := &http.Server{
			Addr:    ":" + port,
			Handler: srv.Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting canisterenv server", "addr", httpSrv.Addr, "network", cfg.Network, "dir", tool.Dir())
			serverErrors <- httpSrv.ListenAndServe()
		}()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-sigCtx.Done():
			logger.Info("Start shutdown", "signal", sigCtx.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := httpSrv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				if err := httpSrv.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Error killing server: %v\n", err)
				}
			}
			logger.Info("Canisterenv server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
