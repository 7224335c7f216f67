package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/redirectgen/internal/config"
	"git.home.luguber.info/inful/redirectgen/internal/site"
)

// Global carries shared state into every command.
type Global struct {
	Logger *slog.Logger
	// Stdout receives command output; os.Stdout when nil.
	Stdout io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"redirectgen.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Generate redirect pages once"`
	Resolve  ResolveCmd  `cmd:"" help:"Show how redirect targets resolve"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate redirect pages when the source changes"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadSite reads the configuration and builds the site it describes.
func loadSite(configPath string) (*config.Config, *site.Site, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	s, err := site.New(cfg.SiteOptions())
	if err != nil {
		return nil, nil, err
	}
	return cfg, s, nil
}
