package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/papertrade/interactor"
	md "github.com/nao1215/markdown"
)

// StocksMarkdown renders the result of a market search.
func StocksMarkdown(r interactor.SearchOutput) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if r.Query == "" {
		doc.H1("Stocks")
	} else {
		doc.H1(fmt.Sprintf("Stocks matching %q", r.Query))
	}
	if len(r.Stocks) == 0 {
		doc.PlainText("No stock found.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Company", "Industry", "Price"},
		Rows:   [][]string{},
	}
	for _, s := range r.Stocks {
		table.Rows = append(table.Rows, []string{s.Ticker, s.Company, s.Industry, s.Price.String()})
	}
	doc.Table(table)

	return doc.String()
}
