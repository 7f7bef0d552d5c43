package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/stream"
)

// runServe ticks the driver headless and bridges it to browsers. The
// stream listener also serves /metrics.
func runServe(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	hub := stream.NewHub(s.driver, stream.Options{Rate: s.cfg.StreamRate, Logger: s.log})
	defer hub.Close()
	s.driver.AddObserver(hub)

	mux := hub.Mux()
	mux.Handle("/metrics", s.metrics.Handler())
	srv := &http.Server{Addr: s.cfg.StreamAddr, Handler: mux}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("serving", "addr", s.cfg.StreamAddr, "rate", s.cfg.StreamRate)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
			cancel()
		}
	}()
	s.serveMetrics(ctx)

	runErr := s.driver.Run(ctx, s.state, s.cfg.FPS)

	shutdown, stop := context.WithTimeout(context.Background(), 2*time.Second)
	defer stop()
	srv.Shutdown(shutdown)

	select {
	case err := <-errc:
		return err
	default:
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}
