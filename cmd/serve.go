package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inmodata/pisos-dashboard/internal/dataset"
	"github.com/inmodata/pisos-dashboard/internal/server"
	"github.com/inmodata/pisos-dashboard/pkg/frankfurter"
)

var (
	servePort    int
	serveDataset string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		path := cfg.Dataset.Path
		if serveDataset != "" {
			path = serveDataset
		}
		loader := dataset.New(path, cfg.Dataset.Delimiter)

		// Load eagerly so a bad dataset path fails at startup, not on the
		// first request.
		if _, err := loader.Load(ctx); err != nil {
			return eris.Wrap(err, "serve: load dataset")
		}

		fx := frankfurter.NewClient(frankfurter.Options{
			BaseURL:    cfg.Frankfurter.BaseURL,
			Timeout:    time.Duration(cfg.Frankfurter.TimeoutSecs) * time.Second,
			RatePerSec: cfg.Frankfurter.RatePerSec,
			CacheTTL:   time.Duration(cfg.Frankfurter.CacheTTLMinutes) * time.Minute,
		})

		srv := server.New(server.Options{
			Loader:          loader,
			MinRent:         cfg.Filters.MinRent,
			ZScoreThreshold: cfg.Stats.ZScoreThreshold,
			Frankfurter:     fx,
			CORSOrigins:     cfg.Server.CORSOrigins,
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: srv.Router(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			httpSrv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port), zap.String("dataset", path))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveDataset, "dataset", "", "dataset CSV path (default from config)")
	rootCmd.AddCommand(serveCmd)
}
