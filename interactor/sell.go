package interactor

import (
	"context"
	"fmt"
	"time"

	"github.com/etnz/papertrade"
)

// SellInput is a validated sell order.
type SellInput struct {
	Credential string
	Ticker     string
	Quantity   papertrade.Quantity
}

// SellOutput is the state of the account after a sell.
type SellOutput struct {
	Username    string
	Holding     papertrade.Holding // Holding is the remaining position, zero quantity when Closed.
	Closed      bool               // Closed is true when the position was liquidated.
	Balance     papertrade.Money
	Proceeds    papertrade.Money
	Transaction papertrade.Transaction
}

// Sell executes sell orders at the current market price.
type Sell struct {
	users  papertrade.UserStore
	market papertrade.Catalog
	out    Presenter[SellOutput]
	now    func() time.Time
}

// NewSell creates the sell use case. out may be nil.
func NewSell(users papertrade.UserStore, market papertrade.Catalog, out Presenter[SellOutput]) *Sell {
	return &Sell{users: users, market: market, out: out, now: time.Now}
}

// Execute sells in.Quantity shares of in.Ticker for the user of in.Credential.
//
// It fails with ErrUnknownTicker, ErrUnknownUser, ErrNoSuchHolding or
// ErrInsufficientShares, and then nothing has changed.
func (s *Sell) Execute(ctx context.Context, in SellInput) (SellOutput, error) {
	if err := ctx.Err(); err != nil {
		return reject(s.out, err)
	}
	if err := in.Quantity.Validate(); err != nil {
		return reject(s.out, err)
	}
	stock, ok := s.market.Stock(in.Ticker)
	if !ok {
		return reject(s.out, fmt.Errorf("cannot sell %q: %w", in.Ticker, papertrade.ErrUnknownTicker))
	}

	var out SellOutput
	err := s.users.Update(in.Credential, func(u *papertrade.User) error {
		h, closed, tx, err := u.Sell(stock, in.Quantity, s.now())
		if err != nil {
			return err
		}
		out = SellOutput{
			Username:    u.Username(),
			Holding:     h,
			Closed:      closed,
			Balance:     u.Balance(),
			Proceeds:    tx.Amount(),
			Transaction: tx,
		}
		return nil
	})
	if err != nil {
		return reject(s.out, fmt.Errorf("cannot sell %s: %w", stock.Ticker, err))
	}
	return present(s.out, out, nil)
}
