package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/interactor"
	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

type tradesCmd struct{}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "list the trades of an exported ledger" }
func (*tradesCmd) Usage() string {
	return `pts trades <ledger.jsonl> [ticker|buy|sell]...

  Lists the trades of a ledger written by the session "export" command.
  Every extra argument filters the trades: "buy" and "sell" keep one
  direction, anything else keeps a single ticker.
`
}

func (*tradesCmd) SetFlags(*flag.FlagSet) {}

func (*tradesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: missing ledger file")
		return subcommands.ExitUsageError
	}
	filename := f.Arg(0)
	ledger, err := papertrade.LoadLedger(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	var filters []func(papertrade.Transaction) bool
	for _, arg := range f.Args()[1:] {
		filters = append(filters, papertrade.ParseFilter(arg))
	}
	out := interactor.HistoryOutput{Username: filepath.Base(filename)}
	for _, tx := range ledger.Transactions(filters...) {
		out.Transactions = append(out.Transactions, tx)
	}
	printMarkdown(stdout, renderer.HistoryMarkdown(out))
	return subcommands.ExitSuccess
}
