package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/rocketscienceinc/tictactoe-engine/cmd/internal/play"
	"github.com/rocketscienceinc/tictactoe-engine/cmd/internal/selfplay"
	"github.com/rocketscienceinc/tictactoe-engine/cmd/internal/serve"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&selfplay.Command{}, "")
	subcommands.Register(&serve.Command{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
