package serve

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	app "github.com/rocketscienceinc/tictactoe-engine/internal"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
)

type Command struct {
	config  string
	envFile string
}

func (*Command) Name() string     { return "serve" }
func (*Command) Synopsis() string { return "Serve the HTTP and WebSocket game APIs" }
func (*Command) Usage() string {
	return `serve [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.config, "config", "config.yml", "YAML config file; empty reads the environment only")
	flags.StringVar(&c.envFile, "env", ".env", "optional file of environment variables")
}

func (c *Command) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := config.LoadDotEnv(c.envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	conf, err := config.Load(c.config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err = app.RunApp(app.NewLogger(conf.LogLevel), conf); err != nil {
		fmt.Fprintf(os.Stderr, "app run failed: %v\n", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
