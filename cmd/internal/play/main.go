package play

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var errQuit = errors.New("quit")

type Command struct {
	tier  string
	mark  string
	seed  int64
	delay time.Duration
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play against a bot tier in the terminal" }
func (*Command) Usage() string {
	return `play [flags]

Enter moves as "row col" with rows and columns numbered 0 to 2. Enter q to quit.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.tier, "tier", "minimax", "bot tier: random, heuristic, minimax or 0..2")
	flags.StringVar(&c.mark, "mark", "X", "your mark in the first round; X moves first")
	flags.Int64Var(&c.seed, "seed", 0, "random seed; 0 uses the clock")
	flags.DurationVar(&c.delay, "delay", time.Second, "pause before the computer moves")
}

func (c *Command) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

type game struct {
	ctx      context.Context
	in       *bufio.Scanner
	out      io.Writer
	strategy bot.Strategy
	delay    time.Duration
}

func (c *Command) run(ctx context.Context, in io.Reader, out io.Writer) error {
	tier, err := bot.ParseTier(c.tier)
	if err != nil {
		return fmt.Errorf("-tier: %w", err)
	}

	human, err := entity.ParseMark(c.mark)
	if err != nil {
		return fmt.Errorf("-mark: %w", err)
	}

	strategy, err := bot.New(tier, bot.NewRand(c.seed))
	if err != nil {
		return fmt.Errorf("-tier: %w", err)
	}

	g := &game{ctx: ctx, in: bufio.NewScanner(in), out: out, strategy: strategy, delay: c.delay}

	for {
		fmt.Fprintf(out, "new round: you play %s against %s\n", human.Symbol(), tier)

		err = g.playRound(human)
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			fmt.Fprintln(out, "bye")
			return nil
		}
		if err != nil {
			return err
		}

		again, askErr := g.askAgain()
		if askErr != nil && !errors.Is(askErr, io.EOF) {
			return askErr
		}
		if !again {
			fmt.Fprintln(out, "bye")
			return nil
		}

		human = human.Opponent()
	}
}

func (that *game) playRound(human entity.Mark) error {
	session, err := tictactoe.NewSession(human)
	if err != nil {
		return err
	}

	that.render(session)

	for session.Status().IsOngoing() {
		if session.IsAITurn() {
			if err = that.aiTurn(session); err != nil {
				return err
			}
			continue
		}

		row, col, err := that.readMove()
		if err != nil {
			return err
		}

		if err = session.ApplyMove(row, col); err != nil {
			fmt.Fprintf(that.out, "illegal move: %v\n", err)
		}

		that.render(session)
	}

	switch status := session.Status(); {
	case status.State == entity.StateDraw:
		fmt.Fprintln(that.out, "draw")
	case status.Winner == human:
		fmt.Fprintln(that.out, "you win")
	default:
		fmt.Fprintln(that.out, "computer wins")
	}

	return nil
}

func (that *game) aiTurn(session *tictactoe.Session) error {
	if that.delay > 0 {
		select {
		case <-that.ctx.Done():
			return that.ctx.Err()
		case <-time.After(that.delay):
		}
	}

	move, err := that.strategy.SelectMove(session)
	if err != nil {
		return fmt.Errorf("computer failed to move: %w", err)
	}

	if err = session.ApplyMove(move.Row, move.Col); err != nil {
		return fmt.Errorf("computer chose %s: %w", move, err)
	}

	fmt.Fprintf(that.out, "computer plays %d %d\n", move.Row, move.Col)
	that.render(session)

	return nil
}

// readMove - prompts until the input is a row and a column or q.
func (that *game) readMove() (int, int, error) {
	for {
		fmt.Fprint(that.out, "your move (row col): ")

		line, err := that.readLine()
		if err != nil {
			return 0, 0, err
		}

		if line == "q" || line == "quit" {
			return 0, 0, errQuit
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			fmt.Fprintln(that.out, "enter a row and a column, for example: 1 2")
			continue
		}

		row, rowErr := strconv.Atoi(fields[0])
		col, colErr := strconv.Atoi(fields[1])
		if rowErr != nil || colErr != nil {
			fmt.Fprintln(that.out, "enter a row and a column, for example: 1 2")
			continue
		}

		return row, col, nil
	}
}

func (that *game) askAgain() (bool, error) {
	for {
		fmt.Fprint(that.out, "play again with sides swapped? [y/n]: ")

		line, err := that.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no", "q":
			return false, nil
		}
	}
}

func (that *game) readLine() (string, error) {
	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		return "", io.EOF
	}

	return strings.TrimSpace(that.in.Text()), nil
}

// render - prints the board with X, O and _ for empty cells.
func (that *game) render(session *tictactoe.Session) {
	board := session.Board()

	var sb strings.Builder
	sb.WriteString("  0 1 2\n")
	for row := range board {
		sb.WriteString(strconv.Itoa(row))
		for _, mark := range board[row] {
			symbol := mark.Symbol()
			if symbol == "" {
				symbol = "_"
			}
			sb.WriteString(" " + symbol)
		}
		sb.WriteString("\n")
	}

	fmt.Fprint(that.out, sb.String())
}
