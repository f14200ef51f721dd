package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"

	"budgety/internal/app"
	"budgety/internal/core"
	"budgety/internal/ledger"
	"budgety/internal/log"
)

const replHelp = `Commands:
  + <description> <amount>     add income (also: inc, income)
  - <description> <amount>     add an expense (also: exp, expense)
  del <item-id>                delete a line, e.g. del exp-0
  show                         print the budget
  help                         print this help
  quit                         leave
`

// REPL drives a controller from lines of text.
type REPL struct {
	ctrl   *app.Controller
	sink   *MarkdownSink
	render Renderer
	// Prompt is written before each line is read; empty disables it.
	Prompt string
}

func NewREPL(ctrl *app.Controller, currency string, render Renderer) *REPL {
	if render == nil {
		render = PlainMarkdown
	}
	return &REPL{
		ctrl:   ctrl,
		sink:   NewMarkdownSink(currency),
		render: render,
	}
}

// Run reads commands from in until quit, end of input or ctx is done.
func (r *REPL) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	r.ctrl.Init(r.sink)

	// scanErr always receives one value before lines is closed.
	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				scanErr <- ctx.Err()
				return
			case <-done:
				scanErr <- nil
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		if r.Prompt != "" {
			fmt.Fprint(out, r.Prompt)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			quit, err := r.exec(ctx, line, out)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

func (r *REPL) exec(ctx context.Context, line string, out io.Writer) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprint(out, replHelp)
		return false, nil
	case "show", "ls":
		return false, r.show(out)
	case "del", "delete", "rm":
		if len(args) != 1 {
			return false, errors.New("usage: del <item-id>")
		}
		if err := r.ctrl.DeleteItem(ctx, args[0], r.sink); err != nil {
			return false, err
		}
		return false, r.show(out)
	}

	category, err := core.ParseCategory(cmd)
	if err != nil {
		return false, fmt.Errorf("unknown command %q, type help", fields[0])
	}
	if len(args) < 2 {
		return false, fmt.Errorf("usage: %s <description> <amount>", cmd)
	}
	desc := strings.Join(args[:len(args)-1], " ")
	input := app.ParseInput(string(category), desc, args[len(args)-1])

	if _, added, err := r.ctrl.AddItem(ctx, app.StaticInput(input), r.sink); err != nil {
		return false, err
	} else if !added {
		fmt.Fprintln(out, "ignored: the description must be at most 200 characters and the amount a positive number")
		return false, nil
	}
	return false, r.show(out)
}

func (r *REPL) show(out io.Writer) error {
	rendered, err := r.render(r.sink.Markdown())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, rendered)
	return err
}

type ReplCmd struct {
	plain    bool
	currency string
	width    int
}

func (*ReplCmd) Name() string     { return "repl" }
func (*ReplCmd) Synopsis() string { return "keep a budget from the terminal" }
func (*ReplCmd) Usage() string {
	return `budgety repl [-plain] [-currency <code>] [-width <columns>]

  Reads commands from standard input and prints the budget after every
  change. Type help for the list of commands. Nothing is saved on exit.
`
}

func (c *ReplCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown instead of styled output.")
	f.StringVar(&c.currency, "currency", "", "Currency code for amounts. Overrides CURRENCY.")
	f.IntVar(&c.width, "width", 80, "Word wrap width of styled output.")
}

func (c *ReplCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	if c.currency != "" {
		cfg.Currency = strings.ToUpper(c.currency)
		if err := cfg.Validate(); err != nil {
			fail("%v", err)
			return subcommands.ExitUsageError
		}
	}

	// Logs go to stderr so they do not interleave with the budget.
	logger := SetupLogger(cfg, os.Stderr).WithComponent(log.ComponentREPL)

	var render Renderer = PlainMarkdown
	if !c.plain {
		if render, err = GlamourRenderer(c.width); err != nil {
			fail("%v", err)
			return subcommands.ExitFailure
		}
	}

	ctx, stop := SignalContext(ctx)
	defer stop()

	repl := NewREPL(app.NewController(ledger.New(), logger), cfg.Currency, render)
	repl.Prompt = "> "
	fmt.Fprint(os.Stdout, replHelp)
	if err := repl.Run(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("REPL stopped", log.FieldError, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
