package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/redirectgen/internal/build"
	"git.home.luguber.info/inful/redirectgen/internal/logfields"
	"git.home.luguber.info/inful/redirectgen/internal/metrics"
	"git.home.luguber.info/inful/redirectgen/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Dest        string        `short:"d" help:"Destination directory (overrides site.destination)"`
	Debounce    time.Duration `help:"Quiet period before regenerating" default:"300ms"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9090)"`
}

func (w *WatchCmd) Run(global *Global, root *CLI) error {
	cfg, s, err := loadSite(root.Config)
	if err != nil {
		return err
	}
	logger := global.logger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	svc := build.NewService(cfg, s,
		build.WithRecorder(metrics.NewPrometheusRecorder(reg)),
		build.WithLogger(logger),
	)
	dest := w.Dest
	if dest == "" {
		dest = cfg.Site.Destination
	}

	if w.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              w.MetricsAddr,
			Handler:           metricsMux(reg),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", logfields.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logger.Info("Metrics server listening", slog.String("addr", w.MetricsAddr))
	}

	watcher, err := watch.New(s.SourceRoot(),
		watch.WithIgnore(dest),
		watch.WithDebounce(w.Debounce),
		watch.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	regenerate := func(ctx context.Context) {
		result, err := svc.Run(ctx, build.Request{Destination: dest})
		if err != nil {
			if ctx.Err() == nil {
				logger.Warn("Regeneration failed", logfields.Error(err))
			}
			return
		}
		printSummary(global.out(), result, false)
	}

	regenerate(ctx)
	logger.Info("Watching for changes", logfields.Path(s.SourceRoot()))
	if err := watcher.Run(ctx, regenerate); err != nil {
		return err
	}
	logger.Info("Watch stopped")
	return nil
}

func metricsMux(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
