package interactor

import (
	"context"

	"github.com/etnz/papertrade"
)

// SearchOutput lists the stocks matching a query.
type SearchOutput struct {
	Query  string
	Stocks []papertrade.Stock // Stocks are in ticker order.
}

// Search looks up the market by ticker, company or industry.
type Search struct {
	market papertrade.Catalog
	out    Presenter[SearchOutput]
}

// NewSearch creates the search use case. out may be nil.
func NewSearch(market papertrade.Catalog, out Presenter[SearchOutput]) *Search {
	return &Search{market: market, out: out}
}

// Execute lists the whole market for an empty query.
func (s *Search) Execute(ctx context.Context, query string) (SearchOutput, error) {
	if err := ctx.Err(); err != nil {
		return reject(s.out, err)
	}
	return present(s.out, SearchOutput{Query: query, Stocks: s.market.Search(query)}, nil)
}
