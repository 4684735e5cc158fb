package papertrade

import (
	"fmt"
	"maps"
	"slices"
)

// Holding is a user's position in one stock.
type Holding struct {
	Stock     Stock    // Stock as listed at the last trade on this position.
	Quantity  Quantity // Quantity is always positive.
	TotalCost Money    // TotalCost is the cost basis of the shares currently held.
}

// Ticker returns the ticker of the held stock.
func (h Holding) Ticker() string { return h.Stock.Ticker }

// AverageCost returns the cost basis per share.
func (h Holding) AverageCost() Money {
	if h.Quantity.IsZero() {
		return M(0, h.TotalCost.cur)
	}
	return h.TotalCost.Div(h.Quantity)
}

// Portfolio maps tickers to holdings. Every holding has a positive quantity.
type Portfolio struct {
	holdings map[string]Holding
}

// NewPortfolio creates an empty portfolio.
func NewPortfolio() *Portfolio {
	return &Portfolio{holdings: make(map[string]Holding)}
}

// Holding returns the position in ticker, if any.
func (p *Portfolio) Holding(ticker string) (Holding, bool) {
	h, ok := p.holdings[NormalizeTicker(ticker)]
	return h, ok
}

// Holdings returns all positions in ticker order.
func (p *Portfolio) Holdings() []Holding {
	tickers := slices.Sorted(maps.Keys(p.holdings))
	out := make([]Holding, 0, len(tickers))
	for _, t := range tickers {
		out = append(out, p.holdings[t])
	}
	return out
}

// Len returns the number of positions.
func (p *Portfolio) Len() int { return len(p.holdings) }

// add opens or increases the position in s by quantity shares bought for cost.
func (p *Portfolio) add(s Stock, quantity Quantity, cost Money) Holding {
	h, ok := p.holdings[s.Ticker]
	if !ok {
		h = Holding{Quantity: Q(0), TotalCost: M(0, cost.cur)}
	}
	h.Stock = s
	h.Quantity = h.Quantity.Add(quantity)
	h.TotalCost = h.TotalCost.Add(cost)
	p.holdings[s.Ticker] = h
	return h
}

// remove decreases the position in s by quantity shares, reducing the cost
// basis proportionally so that the average cost of the remaining shares is
// unchanged. It returns the remaining holding, and closed=true when the
// position has been liquidated and removed.
func (p *Portfolio) remove(s Stock, quantity Quantity) (h Holding, closed bool, err error) {
	h, ok := p.holdings[s.Ticker]
	if !ok {
		return Holding{}, false, fmt.Errorf("%w: %s", ErrNoSuchHolding, s.Ticker)
	}
	if quantity.GreaterThan(h.Quantity) {
		return h, false, fmt.Errorf("%w: cannot sell %s %s, holding %s", ErrInsufficientShares, quantity, s.Ticker, h.Quantity)
	}
	if quantity.Equal(h.Quantity) {
		delete(p.holdings, s.Ticker)
		return Holding{Stock: s, Quantity: Q(0), TotalCost: M(0, h.TotalCost.cur)}, true, nil
	}
	soldCost := h.TotalCost.Mul(quantity).Div(h.Quantity)
	h.Stock = s
	h.TotalCost = h.TotalCost.Sub(soldCost)
	h.Quantity = h.Quantity.Sub(quantity)
	p.holdings[s.Ticker] = h
	return h, false, nil
}

// clone returns a deep copy of the portfolio.
func (p *Portfolio) clone() *Portfolio {
	return &Portfolio{holdings: maps.Clone(p.holdings)}
}
