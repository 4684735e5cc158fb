package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/interactor"
	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

// stdin and stdout are the terminal of the session, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

type sessionCmd struct {
	script string
}

func (*sessionCmd) Name() string     { return "session" }
func (*sessionCmd) Synopsis() string { return "open a trading session on the simulated market" }
func (*sessionCmd) Usage() string {
	return `pts session [-script <file>]

  Starts a trading session on a fresh market: sign up, log in, then buy and
  sell stocks at their current price. Commands are read one per line from
  the terminal, or from a script file with -script. Type 'help' in the
  session for the list of commands.

  A script stops at 'quit' and exits with a failure if any command failed.
`
}

func (c *sessionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.script, "script", "", "Read session commands from this file instead of the terminal")
}

func (c *sessionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	market, err := LoadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return subcommands.ExitFailure
	}
	initial, err := InitialBalance()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	in := stdin
	if c.script != "" {
		file, err := os.Open(c.script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		in = file
	}

	s := newSession(market, papertrade.NewMemoryUserStore(), Hasher(), initial, stdout)
	s.prompt = c.script == ""
	if err := s.run(ctx, in); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading commands: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.script != "" && s.failed > 0 {
		fmt.Fprintf(os.Stderr, "%d command(s) failed\n", s.failed)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// errUsage is returned by commands called with the wrong arguments.
var errUsage = errors.New("usage error")

// session executes line commands through a controller.
type session struct {
	market *papertrade.MemoryCatalog
	users  papertrade.UserStore
	ctrl   *interactor.Controller
	out    io.Writer

	prompt bool // prompt before reading each line
	trades bool // render history as the list of trades rather than positions
	failed int  // number of failed commands
}

func newSession(market *papertrade.MemoryCatalog, users papertrade.UserStore, hasher papertrade.PasswordHasher, initial papertrade.Money, out io.Writer) *session {
	s := &session{market: market, users: users, out: out}
	show := func(markdown string) { printMarkdown(s.out, markdown) }
	p := renderer.Presenters(show)
	p.History = renderer.Present(s.renderHistory, show)
	s.ctrl = interactor.NewController(users, market, hasher, initial, p)
	return s
}

func (s *session) renderHistory(out interactor.HistoryOutput) string {
	if s.trades {
		return renderer.HistoryMarkdown(out)
	}
	return renderer.PortfolioMarkdown(out)
}

// run executes commands read from r until "quit" or the end of r.
// Blank lines and lines starting with '#' are ignored.
func (s *session) run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for {
		if s.prompt {
			fmt.Fprint(s.out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		quit, err := s.exec(ctx, strings.Fields(line))
		if err != nil {
			s.failed++
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// exec runs a single command. Use case failures are already reported by
// the presenters when it returns them.
func (s *session) exec(ctx context.Context, fields []string) (quit bool, err error) {
	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "quit", "exit":
		return true, nil
	case "help":
		printMarkdown(s.out, sessionHelp)
		return false, nil
	case "signup":
		if len(args) < 2 || len(args) > 3 {
			return false, s.usage("signup <user> <password> [balance]")
		}
		balance := ""
		if len(args) == 3 {
			balance = args[2]
		}
		_, err = s.ctrl.Signup(ctx, args[0], args[1], balance)
	case "login":
		if len(args) != 2 {
			return false, s.usage("login <user> <password>")
		}
		_, err = s.ctrl.Login(ctx, args[0], args[1])
	case "logout":
		_, err = s.ctrl.Logout(ctx)
	case "buy":
		if len(args) != 2 {
			return false, s.usage("buy <ticker> <quantity>")
		}
		_, err = s.ctrl.Buy(ctx, args[0], args[1])
	case "sell":
		if len(args) != 2 {
			return false, s.usage("sell <ticker> <quantity>")
		}
		_, err = s.ctrl.Sell(ctx, args[0], args[1])
	case "deposit":
		if len(args) != 1 {
			return false, s.usage("deposit <amount>")
		}
		_, err = s.ctrl.Deposit(ctx, args[0])
	case "portfolio":
		s.trades = false
		_, err = s.ctrl.History(ctx)
	case "history":
		s.trades = true
		_, err = s.ctrl.History(ctx, args...)
	case "search":
		_, err = s.ctrl.Search(ctx, strings.Join(args, " "))
	case "quotes":
		if len(args) < 1 || len(args) > 2 {
			return false, s.usage("quotes <file> [jsonpath]")
		}
		path := ""
		if len(args) == 2 {
			path = args[1]
		}
		err = s.quotes(args[0], path)
	case "export":
		err = s.export()
	default:
		fmt.Fprintf(s.out, "unknown command %q, type 'help' for the list of commands\n", name)
		return false, errUsage
	}
	return false, err
}

func (s *session) usage(synopsis string) error {
	fmt.Fprintf(s.out, "usage: %s\n", synopsis)
	return errUsage
}

// quotes updates the market prices from a quote file.
func (s *session) quotes(filename, path string) error {
	f, err := os.Open(filename)
	if err != nil {
		printMarkdown(s.out, renderer.ErrorMarkdown(err))
		return err
	}
	defer f.Close()

	doc, err := papertrade.DecodeQuotes(f)
	if err != nil {
		printMarkdown(s.out, renderer.ErrorMarkdown(err))
		return err
	}
	n, err := papertrade.ApplyQuotes(s.market, doc, path)
	if err != nil {
		printMarkdown(s.out, renderer.ErrorMarkdown(err))
		return err
	}
	fmt.Fprintf(s.out, "Updated %d price(s) from %s.\n", n, filename)
	return nil
}

// export writes the trades of the current user as a JSONL ledger.
func (s *session) export() error {
	u, err := s.users.UserByCredential(s.ctrl.Credential())
	if err != nil {
		printMarkdown(s.out, renderer.ErrorMarkdown(err))
		return err
	}
	return papertrade.EncodeLedger(s.out, u.History())
}

const sessionHelp = `# Commands

- ` + "`signup <user> <password> [balance]`" + ` creates an account
- ` + "`login <user> <password>`" + ` opens a session
- ` + "`logout`" + ` closes the session
- ` + "`search [query]`" + ` lists the stocks matching query
- ` + "`buy <ticker> <quantity>`" + ` buys whole shares at the current price
- ` + "`sell <ticker> <quantity>`" + ` sells whole shares at the current price
- ` + "`deposit <amount>`" + ` adds cash to the account
- ` + "`portfolio`" + ` values the positions at the current prices
- ` + "`history [ticker|buy|sell]...`" + ` lists the trades, optionally filtered
- ` + "`quotes <file> [jsonpath]`" + ` updates prices from a JSON quote file
- ` + "`export`" + ` prints the trades as JSON lines
- ` + "`quit`" + ` ends the session
`
