package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/redirectgen/internal/build"
	ferrors "git.home.luguber.info/inful/redirectgen/internal/foundation/errors"
	"git.home.luguber.info/inful/redirectgen/internal/logfields"
	"git.home.luguber.info/inful/redirectgen/internal/metrics"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Dest   string `short:"d" help:"Destination directory (overrides site.destination)"`
	DryRun bool   `name:"dry-run" help:"Resolve redirects and report them without writing files"`
	Strict bool   `help:"Exit with an error when any redirect page fails"`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	cfg, s, err := loadSite(root.Config)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	svc := build.NewService(cfg, s,
		build.WithRecorder(metrics.NewPrometheusRecorder(reg)),
		build.WithLogger(global.logger()),
	)

	result, err := svc.Run(ctx, build.Request{Destination: g.Dest, DryRun: g.DryRun})
	if err != nil {
		return err
	}
	printSummary(global.out(), result, g.DryRun)

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
			global.logger().Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(err))
		}
	}

	if g.Strict && len(result.Failures) > 0 {
		return ferrors.RedirectError("some redirect pages could not be generated").
			WithContext("failed", len(result.Failures)).
			Build()
	}
	return nil
}

func printSummary(w io.Writer, result *build.Result, dryRun bool) {
	verb := "Generated"
	if dryRun {
		verb = "Would generate"
	}
	_, _ = fmt.Fprintf(w, "%s %d redirect pages (status: %s)\n", verb, result.Generated(), result.Status)
	if dryRun {
		for _, rec := range result.Records {
			_, _ = fmt.Fprintf(w, "  %s -> %s\n", rec.RedirectFrom, rec.RedirectTo)
		}
	}
	if result.Duplicates > 0 {
		_, _ = fmt.Fprintf(w, "Ignored %d duplicate permalinks\n", result.Duplicates)
	}
	for _, f := range result.Failures {
		_, _ = fmt.Fprintf(w, "Failed: %s (%s -> %s): %v\n", f.Source, f.From, f.To, f.Err)
	}
	if result.ManifestPath != "" {
		_, _ = fmt.Fprintf(w, "Manifest: %s\n", result.ManifestPath)
	}
}
