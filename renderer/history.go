package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/papertrade/interactor"
	md "github.com/nao1215/markdown"
)

// PortfolioMarkdown renders the valuation of an account: one row per
// position followed by the account totals.
func PortfolioMarkdown(r interactor.HistoryOutput) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio of %s", r.Username))

	doc.H2("Positions")
	if len(r.Positions) == 0 {
		doc.PlainText("No position held.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Ticker", "Company", "Quantity", "Avg Cost", "Total Cost", "Price", "Market Value", "P/L"},
			Rows:   [][]string{},
		}
		for _, p := range r.Positions {
			table.Rows = append(table.Rows, []string{
				p.Ticker(),
				p.Stock.Company,
				p.Quantity.String(),
				p.AverageCost.String(),
				p.TotalCost.String(),
				p.Price.String(),
				p.MarketValue.String(),
				p.ProfitLoss.SignedString(),
			})
		}
		doc.Table(table)
	}

	doc.H2("Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Account", "Amount"},
		Rows: [][]string{
			{"Cash", r.Balance.String()},
			{"Market Value", r.MarketValue.String()},
			{"Total Cost", r.TotalCost.String()},
			{"Unrealized P/L", r.ProfitLoss.SignedString()},
			{"Net Worth", r.NetWorth.String()},
		},
	})

	return doc.String()
}

// HistoryMarkdown renders the trades of an account in execution order.
func HistoryMarkdown(r interactor.HistoryOutput) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Trades of %s", r.Username))
	if len(r.Transactions) == 0 {
		doc.PlainText("No trade yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Time", "Type", "Ticker", "Quantity", "Price", "Amount"},
		Rows:   [][]string{},
	}
	for _, tx := range r.Transactions {
		table.Rows = append(table.Rows, []string{
			tx.Time.Format("2006-01-02 15:04:05"),
			string(tx.Type),
			tx.Ticker,
			tx.Quantity.String(),
			tx.Price.String(),
			tx.Amount().String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
