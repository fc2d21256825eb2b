package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gamma-omg/linguaflow/internal/annotate"
	"github.com/gamma-omg/linguaflow/internal/catalog"
	"github.com/gamma-omg/linguaflow/internal/config"
	"github.com/gamma-omg/linguaflow/internal/pkg/middleware"
	"github.com/gamma-omg/linguaflow/internal/pkg/router"
	"github.com/gamma-omg/linguaflow/internal/rest"
	"github.com/gamma-omg/linguaflow/internal/service"
	"github.com/gamma-omg/linguaflow/internal/store"
)

func run(ctx context.Context) error {
	slog.Info("starting linguaflow service")

	cfg := config.FromEnv()

	lessons, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load lesson catalog: %w", err)
	}
	slog.Info("lesson catalog loaded", "lessons", lessons.Len())

	wordbook := store.NewMemoryWordbook()
	notes := store.NewMemoryNotes()
	if cfg.SeedDemoData {
		if err := store.SeedDemoData(wordbook, notes); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		slog.Info("demo data seeded")
	}

	annotator := annotate.NewAnnotator(annotate.AnnotatorConfig{
		MaxKeys: cfg.AnnotationMaxKeys,
		MaxCost: cfg.AnnotationMaxCost,
	})

	api := rest.NewAPI(
		lessons,
		service.NewWordbookService(wordbook),
		service.NewNotesService(notes),
		service.NewReviewService(wordbook),
		annotator,
	)

	r := router.New()
	r.Use(middleware.Recover(), middleware.Log())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/", api)

	httpSrv := &http.Server{
		Addr:         cfg.Http.ListenAddr,
		IdleTimeout:  cfg.Http.IdleTimeout,
		ReadTimeout:  cfg.Http.ReadTimeout,
		WriteTimeout: cfg.Http.WriteTimeout,
		Handler:      r,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("HTTP server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Http.ShutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("linguaflow service exited with error", "error", err)
		os.Exit(1)
	}
}
