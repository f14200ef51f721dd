// Command budgety keeps a monthly budget of income and expenses, served as a
// web page or driven from the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"budgety/internal/cli"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	commander.Register(&cli.ServeCmd{}, "")
	commander.Register(&cli.ReplCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
