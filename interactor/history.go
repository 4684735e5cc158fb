package interactor

import (
	"context"
	"log"

	"github.com/etnz/papertrade"
)

// Position is a holding valued at the current market price.
type Position struct {
	papertrade.Holding
	Price       papertrade.Money // Price is the current market price of one share.
	AverageCost papertrade.Money
	MarketValue papertrade.Money // MarketValue is quantity × price.
	ProfitLoss  papertrade.Money // ProfitLoss is market value − total cost.
}

// HistoryOutput is the valuation of an account and its trade history.
type HistoryOutput struct {
	Username     string
	Balance      papertrade.Money
	Positions    []Position // Positions are in ticker order.
	MarketValue  papertrade.Money
	TotalCost    papertrade.Money
	ProfitLoss   papertrade.Money
	NetWorth     papertrade.Money // NetWorth is balance + market value.
	// Transactions are the trades accepted by the filters, oldest first.
	Transactions []papertrade.Transaction
}

// History values a portfolio and lists its trades. It never changes anything.
type History struct {
	users  papertrade.UserStore
	market papertrade.Catalog
	out    Presenter[HistoryOutput]
}

// NewHistory creates the valuation use case, priced from market.
func NewHistory(users papertrade.UserStore, market papertrade.Catalog, out Presenter[HistoryOutput]) *History {
	return &History{users: users, market: market, out: out}
}

// Execute fails only with ErrUnknownUser. Filters select the listed trades,
// positions are always all valued.
func (h *History) Execute(ctx context.Context, credential string, filters ...func(papertrade.Transaction) bool) (HistoryOutput, error) {
	if err := ctx.Err(); err != nil {
		return reject(h.out, err)
	}
	u, err := h.users.UserByCredential(credential)
	if err != nil {
		return reject(h.out, err)
	}

	cur := u.Balance().Currency()
	out := HistoryOutput{
		Username:    u.Username(),
		Balance:     u.Balance(),
		MarketValue: papertrade.M(0, cur),
		TotalCost:   papertrade.M(0, cur),
	}
	for _, tx := range u.History().Transactions(filters...) {
		out.Transactions = append(out.Transactions, tx)
	}
	for _, holding := range u.Portfolio().Holdings() {
		price := holding.Stock.Price
		if stock, ok := h.market.Stock(holding.Ticker()); ok {
			price = stock.Price
		} else {
			log.Printf("%s is no longer listed, valued at its last traded price %s", holding.Ticker(), price)
		}
		value := price.Mul(holding.Quantity)
		out.Positions = append(out.Positions, Position{
			Holding:     holding,
			Price:       price,
			AverageCost: holding.AverageCost(),
			MarketValue: value,
			ProfitLoss:  value.Sub(holding.TotalCost),
		})
		out.MarketValue = out.MarketValue.Add(value)
		out.TotalCost = out.TotalCost.Add(holding.TotalCost)
	}
	out.ProfitLoss = out.MarketValue.Sub(out.TotalCost)
	out.NetWorth = out.Balance.Add(out.MarketValue)
	return present(h.out, out, nil)
}
