package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/redirectgen/cmd/redirectgen/commands"
	"git.home.luguber.info/inful/redirectgen/internal/foundation/errors"
	"git.home.luguber.info/inful/redirectgen/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("redirectgen"),
		kong.Description("Generate redirect pages for a static site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(&commands.Global{Logger: slog.Default()}, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
