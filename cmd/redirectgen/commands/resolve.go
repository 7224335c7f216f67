package commands

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"git.home.luguber.info/inful/redirectgen/internal/config"
	"git.home.luguber.info/inful/redirectgen/internal/logfields"
	"git.home.luguber.info/inful/redirectgen/internal/redirect"
	"git.home.luguber.info/inful/redirectgen/internal/site"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	Targets []string `arg:"" name:"target" help:"Redirect targets to resolve"`
}

func (r *ResolveCmd) Run(global *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		// Resolution works without a config file; only an explicit path must exist.
		if _, statErr := os.Stat(root.Config); root.Config != config.DefaultPath || !errors.Is(statErr, os.ErrNotExist) {
			return err
		}
		global.logger().Debug("No configuration file, using defaults", logfields.Path(root.Config))
		cfg = config.Default()
	}
	s, err := site.New(cfg.SiteOptions())
	if err != nil {
		return err
	}

	builder := redirect.NewBuilder(cfg.RedirectConfig(), redirect.WithMalformedHandler(func(target string, err error) {
		global.logger().Warn("Malformed redirect target, using development origin", logfields.To(target), logfields.Error(err))
	}))

	tw := tabwriter.NewWriter(global.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TARGET\tRESOLVED\tBRANCH")
	for _, target := range r.Targets {
		res, err := builder.Resolve(s, target)
		if err != nil {
			return err
		}
		branch := string(res.Branch)
		if res.Malformed != nil {
			branch += " (malformed)"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", target, res.Target, branch)
	}
	return tw.Flush()
}
