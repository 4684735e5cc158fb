package interactor

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/papertrade"
)

// SignupInput describes the account to open.
type SignupInput struct {
	Username string
	Password string
	Balance  papertrade.Money // Balance is the starting cash, the default one when zero.
}

// SignupOutput is the account as opened.
type SignupOutput struct {
	Username string
	Balance  papertrade.Money
}

// Signup registers new users with an empty portfolio and ledger.
type Signup struct {
	users   papertrade.UserStore
	hasher  papertrade.PasswordHasher
	initial papertrade.Money
	out     Presenter[SignupOutput]
}

// NewSignup creates the sign-up use case; initial is the default starting balance.
func NewSignup(users papertrade.UserStore, hasher papertrade.PasswordHasher, initial papertrade.Money, out Presenter[SignupOutput]) *Signup {
	return &Signup{users: users, hasher: hasher, initial: initial, out: out}
}

// Execute fails with ErrInvalidCredential, ErrInvalidAmount or ErrUserExists.
func (s *Signup) Execute(ctx context.Context, in SignupInput) (SignupOutput, error) {
	if err := ctx.Err(); err != nil {
		return reject(s.out, err)
	}
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return reject(s.out, fmt.Errorf("%w: username and password are required", papertrade.ErrInvalidCredential))
	}
	balance := in.Balance
	if balance.IsZero() {
		balance = s.initial
	}
	if balance.IsNegative() {
		return reject(s.out, fmt.Errorf("%w: starting balance %s is negative", papertrade.ErrInvalidAmount, balance))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return reject(s.out, err)
	}
	if err := s.users.Create(papertrade.NewUser(username, hash, balance)); err != nil {
		return reject(s.out, err)
	}
	return present(s.out, SignupOutput{Username: username, Balance: balance}, nil)
}
