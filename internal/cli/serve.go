package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwittig/packsize/internal/server"
	"github.com/mwittig/packsize/pkg/analyzer"
)

// newServeCmd creates the serve command, which exposes the analysis engine
// over HTTP. Report endpoints are only registered when a store backend is
// configured.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis engine over HTTP",
		Long: `Run an HTTP server exposing the analysis engine.

Endpoints:
  POST /api/analyze        Analyze submitted manifest content
  GET  /api/reports        List archived reports (store backend required)
  GET  /api/reports/{id}   Fetch one archived report
  GET  /healthz            Liveness check`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context(), *configPath, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

func runServe(ctx context.Context, configPath, addr string) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	c, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close(context.Background())
	}

	a := analyzer.NewFromConfig(cfg, c, func(msg string, args ...any) {
		logger.Warnf(msg, args...)
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(a, st, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
