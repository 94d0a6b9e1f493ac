package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brickset/brickset/catalog/internal/api"
	"github.com/brickset/brickset/catalog/internal/config"
	"github.com/brickset/brickset/catalog/internal/metrics"
	"github.com/brickset/brickset/catalog/internal/query"
	"github.com/brickset/brickset/catalog/internal/source"
	"github.com/brickset/brickset/catalog/internal/store"
	"github.com/brickset/brickset/pkg/types"
)

func main() {
	configPath := flag.String("config", "", "path to config file; defaults are used when empty")
	dataset := flag.String("dataset", "", "dataset resource, overrides catalog.dataset.resource")
	tag := flag.String("tag", "Microscale", "tag to count")
	theme := flag.String("theme", "Games", "theme to look up")
	serve := flag.Bool("serve", false, "serve the HTTP read API instead of printing query results")
	stats := flag.Bool("stats", false, "print query metrics in Prometheus text format after the results")
	flag.Parse()

	// Logs go to stderr so that query output on stdout stays clean.
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *dataset != "" {
		cfg.Catalog.Dataset.Resource = *dataset
	}
	level.Set(cfg.Catalog.Log.SlogLevel())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	src, err := source.Resolve(ctx, cfg.Catalog.Dataset)
	if err != nil {
		slog.Error("failed to resolve dataset", "resource", cfg.Catalog.Dataset.Resource, "err", err)
		os.Exit(1)
	}

	st, err := store.Load(ctx, src)
	if err != nil {
		slog.Error("failed to load dataset", "err", err)
		os.Exit(1)
	}
	slog.Info("dataset loaded", "resource", st.Resource(), "records", st.Len())

	m := metrics.New()
	m.SetRecords(st.Len())

	if *serve {
		if err := runServer(ctx, cfg.Catalog, src, store.NewLive(st), m); err != nil {
			slog.Error("server stopped", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := printReport(os.Stdout, st, m, *tag, *theme); err != nil {
		slog.Error("failed to write report", "err", err)
		os.Exit(1)
	}
	if *stats {
		if err := m.WriteText(os.Stdout); err != nil {
			slog.Error("failed to write metrics", "err", err)
			os.Exit(1)
		}
	}
}

// printReport evaluates every query once and writes the results to w.
func printReport(w io.Writer, st *store.Store, m *metrics.Metrics, tag, theme string) error {
	m.ObserveQuery(metrics.OpCountWithTag)
	if _, err := fmt.Fprintln(w, query.CountWithTag(st, tag)); err != nil {
		return err
	}

	m.ObserveQuery(metrics.OpThemeExists)
	if _, err := fmt.Fprintln(w, query.ThemeExists(st, types.Some(theme))); err != nil {
		return err
	}

	m.ObserveQuery(metrics.OpDistinctTags)
	if err := query.PrintTags(w, st); err != nil {
		return err
	}

	m.ObserveQuery(metrics.OpSumPieces)
	if _, err := fmt.Fprintln(w, query.SumPieces(st)); err != nil {
		return err
	}

	m.ObserveQuery(metrics.OpPartition)
	if _, err := fmt.Fprintln(w, query.PartitionByHundredPieces(st)); err != nil {
		return err
	}

	m.ObserveQuery(metrics.OpCountByTheme)
	_, err := fmt.Fprintln(w, query.CountByTheme(st))
	return err
}

// runServer serves the read API and /metrics until ctx is cancelled. When
// dataset watching is enabled the snapshot in live is replaced on change.
func runServer(ctx context.Context, cfg config.CatalogConfig, src source.Source, live *store.Live, m *metrics.Metrics) error {
	mux := http.NewServeMux()
	mux.Handle("/api/", api.New(live, m))
	mux.Handle("/metrics", m.Handler())

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("HTTP server listening", "port", cfg.HTTP.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("catalog shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	switch {
	case !cfg.Dataset.Watch:
	case !watchable(src):
		// -dataset bypasses config validation and may name a bundled or remote source.
		slog.Warn("dataset watch disabled, resource is not a local file", "resource", src.Name())
	default:
		g.Go(func() error {
			return store.Watch(gctx, src, live, func(st *store.Store, err error) {
				m.ObserveReload(err == nil)
				if err == nil {
					m.SetRecords(st.Len())
				}
			})
		})
	}

	return g.Wait()
}

// watchable reports whether src is backed by a local file.
func watchable(src source.Source) bool {
	_, ok := source.Underlying(src).(*source.File)
	return ok
}
