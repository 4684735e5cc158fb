package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/interactor"
	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

type stocksCmd struct {
	query string
	jsonl bool
}

func (*stocksCmd) Name() string     { return "stocks" }
func (*stocksCmd) Synopsis() string { return "list or search the stocks of the market" }
func (*stocksCmd) Usage() string {
	return `pts stocks [-q <query>]

  Lists the stocks of the catalog with their current price. With -q, only
  the stocks whose ticker, company or industry contains the query are listed.
  With -jsonl, they are printed as a catalog file usable with -catalog-file.
`
}

func (c *stocksCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "Case-insensitive text to look for in tickers, companies and industries")
	f.BoolVar(&c.jsonl, "jsonl", false, "Print the stocks as a JSONL catalog")
}

func (c *stocksCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	market, err := LoadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return subcommands.ExitFailure
	}
	query := c.query
	if query == "" && f.NArg() > 0 {
		query = strings.Join(f.Args(), " ")
	}

	out, err := interactor.NewSearch(market, nil).Execute(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching stocks: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.jsonl {
		selected := papertrade.NewCatalog(market.Currency())
		for _, s := range out.Stocks {
			if err := selected.Add(s); err != nil {
				fmt.Fprintf(os.Stderr, "Error selecting %s: %v\n", s.Ticker, err)
				return subcommands.ExitFailure
			}
		}
		if err := papertrade.EncodeCatalog(stdout, selected); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing catalog: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(stdout, renderer.StocksMarkdown(out))
	return subcommands.ExitSuccess
}
