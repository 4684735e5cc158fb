package papertrade

import (
	"fmt"
	"time"
)

// User is a trader of the simulation: a cash balance, a portfolio of
// holdings and the ledger of executed trades.
//
// Users are owned by a UserStore and only mutated through its Update method.
type User struct {
	username     string
	passwordHash []byte
	balance      Money
	portfolio    *Portfolio
	history      *Ledger
}

// NewUser creates a user with an empty portfolio and an empty ledger.
func NewUser(username string, passwordHash []byte, balance Money) *User {
	return &User{
		username:     username,
		passwordHash: passwordHash,
		balance:      balance,
		portfolio:    NewPortfolio(),
		history:      NewLedger(),
	}
}

func (u *User) Username() string      { return u.username }
func (u *User) PasswordHash() []byte  { return u.passwordHash }
func (u *User) Balance() Money        { return u.balance }
func (u *User) Portfolio() *Portfolio { return u.portfolio }
func (u *User) History() *Ledger      { return u.history }

// Holding returns the user's position in ticker, if any.
func (u *User) Holding(ticker string) (Holding, bool) { return u.portfolio.Holding(ticker) }

// Deposit credits amount to the cash balance.
func (u *User) Deposit(amount Money) error {
	if err := amount.checkRange(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: deposit must be positive, got %s", ErrInvalidAmount, amount)
	}
	u.balance = u.balance.Add(amount)
	return nil
}

// Buy buys quantity shares of s at its current price.
//
// Either every effect is applied (balance debited, holding increased, BUY
// recorded) or, on error, none is.
func (u *User) Buy(s Stock, quantity Quantity, when time.Time) (Holding, Transaction, error) {
	if err := quantity.Validate(); err != nil {
		return Holding{}, Transaction{}, err
	}
	cost := s.Price.Mul(quantity)
	if cost.GreaterThan(u.balance) {
		return Holding{}, Transaction{}, fmt.Errorf("%w: buying %s %s costs %s, balance is %s", ErrInsufficientBalance, quantity, s.Ticker, cost, u.balance)
	}

	u.balance = u.balance.Sub(cost)
	h := u.portfolio.add(s, quantity, cost)
	tx := NewTransaction(when, Buy, s.Ticker, quantity, s.Price)
	u.history.Append(tx)
	return h, tx, nil
}

// Sell sells quantity shares of s at its current price.
//
// It returns the remaining holding and closed=true if the position was
// fully liquidated. On error nothing is changed.
func (u *User) Sell(s Stock, quantity Quantity, when time.Time) (h Holding, closed bool, tx Transaction, err error) {
	if err := quantity.Validate(); err != nil {
		return Holding{}, false, Transaction{}, err
	}
	// remove validates before mutating the portfolio.
	h, closed, err = u.portfolio.remove(s, quantity)
	if err != nil {
		return Holding{}, false, Transaction{}, err
	}

	u.balance = u.balance.Add(s.Price.Mul(quantity))
	tx = NewTransaction(when, Sell, s.Ticker, quantity, s.Price)
	u.history.Append(tx)
	return h, closed, tx, nil
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	c := *u
	c.passwordHash = append([]byte(nil), u.passwordHash...)
	c.portfolio = u.portfolio.clone()
	c.history = u.history.clone()
	return &c
}
