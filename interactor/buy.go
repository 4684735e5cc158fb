package interactor

import (
	"context"
	"fmt"
	"time"

	"github.com/etnz/papertrade"
)

// BuyInput is a validated buy order.
type BuyInput struct {
	Credential string
	Ticker     string
	Quantity   papertrade.Quantity
}

// BuyOutput is the state of the account after a buy.
type BuyOutput struct {
	Username    string
	Holding     papertrade.Holding
	Balance     papertrade.Money
	Transaction papertrade.Transaction
}

// Buy executes buy orders at the current market price.
type Buy struct {
	users  papertrade.UserStore
	market papertrade.Catalog
	out    Presenter[BuyOutput]
	now    func() time.Time
}

// NewBuy creates the buy use case. out may be nil.
func NewBuy(users papertrade.UserStore, market papertrade.Catalog, out Presenter[BuyOutput]) *Buy {
	return &Buy{users: users, market: market, out: out, now: time.Now}
}

// Execute buys in.Quantity shares of in.Ticker for the user of in.Credential.
//
// It fails with ErrUnknownTicker, ErrUnknownUser or ErrInsufficientBalance,
// in that order of checking, and then nothing has changed.
func (b *Buy) Execute(ctx context.Context, in BuyInput) (BuyOutput, error) {
	if err := ctx.Err(); err != nil {
		return reject(b.out, err)
	}
	if err := in.Quantity.Validate(); err != nil {
		return reject(b.out, err)
	}
	stock, ok := b.market.Stock(in.Ticker)
	if !ok {
		return reject(b.out, fmt.Errorf("cannot buy %q: %w", in.Ticker, papertrade.ErrUnknownTicker))
	}

	var out BuyOutput
	err := b.users.Update(in.Credential, func(u *papertrade.User) error {
		h, tx, err := u.Buy(stock, in.Quantity, b.now())
		if err != nil {
			return err
		}
		out = BuyOutput{
			Username:    u.Username(),
			Holding:     h,
			Balance:     u.Balance(),
			Transaction: tx,
		}
		return nil
	})
	if err != nil {
		return reject(b.out, fmt.Errorf("cannot buy %s: %w", stock.Ticker, err))
	}
	return present(b.out, out, nil)
}
