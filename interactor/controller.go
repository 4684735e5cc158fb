package interactor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/papertrade"
)

// Presenters holds the output boundary of every use case. Nil ones are skipped.
type Presenters struct {
	Signup  Presenter[SignupOutput]
	Login   Presenter[LoginOutput]
	Logout  Presenter[string]
	Deposit Presenter[DepositOutput]
	Buy     Presenter[BuyOutput]
	Sell    Presenter[SellOutput]
	History Presenter[HistoryOutput]
	Search  Presenter[SearchOutput]
}

// Controller turns primitive requests, as typed by a user, into use case
// inputs. It keeps the credential of the current session.
type Controller struct {
	currency string

	signup  *Signup
	login   *Login
	logout  *Logout
	deposit *Deposit
	buy     *Buy
	sell    *Sell
	history *History
	search  *Search

	credential string
}

// NewController wires every use case on the same stores.
// initial is the starting balance of new users and sets the currency of amounts.
func NewController(users papertrade.UserStore, market papertrade.Catalog, hasher papertrade.PasswordHasher, initial papertrade.Money, p Presenters) *Controller {
	return &Controller{
		currency: initial.Currency(),
		signup:   NewSignup(users, hasher, initial, p.Signup),
		login:    NewLogin(users, hasher, p.Login),
		logout:   NewLogout(users, p.Logout),
		deposit:  NewDeposit(users, p.Deposit),
		buy:      NewBuy(users, market, p.Buy),
		sell:     NewSell(users, market, p.Sell),
		history:  NewHistory(users, market, p.History),
		search:   NewSearch(market, p.Search),
	}
}

// Credential returns the credential of the current session, "" when logged out.
func (c *Controller) Credential() string { return c.credential }

// ParseAmount parses a positive amount of cash up to papertrade.MaxAmount,
// ErrInvalidAmount otherwise.
func ParseAmount(s, currency string) (papertrade.Money, error) {
	m, err := papertrade.ParseMoney(strings.TrimSpace(s), currency)
	if errors.Is(err, papertrade.ErrInvalidAmount) {
		return papertrade.Money{}, err
	}
	if err != nil {
		return papertrade.Money{}, fmt.Errorf("%w: %q is not a number", papertrade.ErrInvalidAmount, s)
	}
	if !m.IsPositive() {
		return papertrade.Money{}, fmt.Errorf("%w: must be positive, got %s", papertrade.ErrInvalidAmount, m)
	}
	return m, nil
}

// Signup registers a user. An empty balance selects the default starting balance.
func (c *Controller) Signup(ctx context.Context, username, password, balance string) (SignupOutput, error) {
	in := SignupInput{Username: username, Password: password}
	if strings.TrimSpace(balance) != "" {
		m, err := ParseAmount(balance, c.currency)
		if err != nil {
			return reject(c.signup.out, err)
		}
		in.Balance = m
	}
	return c.signup.Execute(ctx, in)
}

// Login opens a session that becomes the current one on success.
func (c *Controller) Login(ctx context.Context, username, password string) (LoginOutput, error) {
	out, err := c.login.Execute(ctx, LoginInput{Username: strings.TrimSpace(username), Password: password})
	if err != nil {
		return out, err
	}
	c.credential = out.Credential
	return out, nil
}

// Logout closes the current session.
func (c *Controller) Logout(ctx context.Context) (string, error) {
	username, err := c.logout.Execute(ctx, c.credential)
	if err != nil && !errors.Is(err, papertrade.ErrUnknownUser) {
		return username, err
	}
	c.credential = ""
	return username, err
}

func (c *Controller) Deposit(ctx context.Context, amount string) (DepositOutput, error) {
	m, err := ParseAmount(amount, c.currency)
	if err != nil {
		return reject(c.deposit.out, err)
	}
	return c.deposit.Execute(ctx, DepositInput{Credential: c.credential, Amount: m})
}

// Buy parses quantity and buys. Malformed quantities fail with ErrInvalidQuantity.
func (c *Controller) Buy(ctx context.Context, ticker, quantity string) (BuyOutput, error) {
	q, err := papertrade.ParseQuantity(quantity)
	if err != nil {
		return reject(c.buy.out, err)
	}
	return c.buy.Execute(ctx, BuyInput{Credential: c.credential, Ticker: papertrade.NormalizeTicker(ticker), Quantity: q})
}

// Sell parses quantity and sells. Malformed quantities fail with ErrInvalidQuantity.
func (c *Controller) Sell(ctx context.Context, ticker, quantity string) (SellOutput, error) {
	q, err := papertrade.ParseQuantity(quantity)
	if err != nil {
		return reject(c.sell.out, err)
	}
	return c.sell.Execute(ctx, SellInput{Credential: c.credential, Ticker: papertrade.NormalizeTicker(ticker), Quantity: q})
}

// History values the account and lists the trades matching every filter,
// a ticker or a trade direction (see papertrade.ParseFilter).
func (c *Controller) History(ctx context.Context, filters ...string) (HistoryOutput, error) {
	predicates := make([]func(papertrade.Transaction) bool, 0, len(filters))
	for _, f := range filters {
		predicates = append(predicates, papertrade.ParseFilter(f))
	}
	return c.history.Execute(ctx, c.credential, predicates...)
}

func (c *Controller) Search(ctx context.Context, query string) (SearchOutput, error) {
	return c.search.Execute(ctx, query)
}
