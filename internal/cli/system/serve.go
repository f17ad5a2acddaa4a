package system

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/jagruk/internal/api"
	"github.com/julianstephens/jagruk/internal/cli"
	"github.com/julianstephens/jagruk/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// ServeCmd runs the local HTTP API until interrupted.
type ServeCmd struct {
	Addr string `help:"Listen address (default from config api.addr)."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.API.Addr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.New(t, api.WithDebug(ctx.Config.Log.Debug)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(sigCtx)

	g.Go(func() error {
		logger.Info("api listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api shutdown: %w", err)
		}
		// Saves are debounced; make the last one durable before exiting.
		return t.Flush()
	})

	ctx.Printf("Serving jagruk API on http://%s (Ctrl+C to stop)\n", addr)
	if err := g.Wait(); err != nil {
		return err
	}
	ctx.Println("\nServer stopped.")
	return nil
}
