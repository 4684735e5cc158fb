package interactor

import (
	"context"

	"github.com/etnz/papertrade"
)

// DepositInput is the cash to add to the account of a session.
type DepositInput struct {
	Credential string
	Amount     papertrade.Money
}

// DepositOutput reports the balance after a deposit.
type DepositOutput struct {
	Username string
	Balance  papertrade.Money
}

// Deposit adds cash to an account. Deposits are not trades: the ledger is unchanged.
type Deposit struct {
	users papertrade.UserStore
	out   Presenter[DepositOutput]
}

// NewDeposit creates the deposit use case.
func NewDeposit(users papertrade.UserStore, out Presenter[DepositOutput]) *Deposit {
	return &Deposit{users: users, out: out}
}

// Execute fails with ErrUnknownUser or ErrInvalidAmount.
func (d *Deposit) Execute(ctx context.Context, in DepositInput) (DepositOutput, error) {
	if err := ctx.Err(); err != nil {
		return reject(d.out, err)
	}
	var out DepositOutput
	err := d.users.Update(in.Credential, func(u *papertrade.User) error {
		if err := u.Deposit(in.Amount); err != nil {
			return err
		}
		out = DepositOutput{Username: u.Username(), Balance: u.Balance()}
		return nil
	})
	return present(d.out, out, err)
}
