package selfplay

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"

	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/selfplay"
)

type Command struct {
	p1      string
	p2      string
	games   int
	workers int
	seed    int64
	swap    bool
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play two bot tiers against each other and report results" }
func (*Command) Usage() string {
	return `selfplay [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.p1, "x", "minimax", "tier of player 1, who starts as X")
	flags.StringVar(&c.p2, "o", "random", "tier of player 2, who starts as O")
	flags.IntVar(&c.games, "games", 100, "number of games to play")
	flags.IntVar(&c.workers, "workers", 4, "number of parallel workers")
	flags.Int64Var(&c.seed, "seed", 0, "starting random seed; 0 uses the clock")
	flags.BoolVar(&c.swap, "swap", false, "swap sides every game")
}

func (c *Command) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

func (c *Command) run(ctx context.Context, out io.Writer) error {
	p1, err := bot.ParseTier(c.p1)
	if err != nil {
		return fmt.Errorf("-x: %w", err)
	}

	p2, err := bot.ParseTier(c.p2)
	if err != nil {
		return fmt.Errorf("-o: %w", err)
	}

	if c.seed == 0 {
		c.seed = time.Now().Unix()
	}

	stats, err := selfplay.Simulate(ctx, selfplay.Config{
		P1:      p1,
		P2:      p2,
		Games:   c.games,
		Workers: c.workers,
		Seed:    c.seed,
		Swap:    c.swap,
	})
	if err != nil {
		return fmt.Errorf("failed to simulate: %w", err)
	}

	fmt.Fprintf(out, "done games=%d seed=%d draws=%d\n", len(stats.Games), c.seed, stats.Draws)

	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\ttier\twins\tas X\tas O\tlosses\n")
	for i, player := range stats.Players {
		fmt.Fprintf(tw, "p%d\t%s\t%d\t%d\t%d\t%d\n", i+1, player.Tier, player.Wins, player.WinsAsX, player.WinsAsO, player.Losses)
	}

	return tw.Flush()
}
