package interactor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/etnz/papertrade"
	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

const usd = papertrade.DefaultCurrency

// recorder is a Presenter that keeps everything it is told.
type recorder[T any] struct {
	successes []T
	failures  []error
}

func (r *recorder[T]) Success(out T)     { r.successes = append(r.successes, out) }
func (r *recorder[T]) Failure(err error) { r.failures = append(r.failures, err) }

func (r *recorder[T]) calls() int { return len(r.successes) + len(r.failures) }

// newMarket lists AAPL at 150 and MSFT at 300.
func newMarket(t *testing.T) *papertrade.MemoryCatalog {
	t.Helper()
	c := papertrade.NewCatalog(usd)
	for _, s := range []papertrade.Stock{
		{Ticker: "AAPL", Company: "Apple Inc.", Industry: "Technology", Price: papertrade.M(150, usd)},
		{Ticker: "MSFT", Company: "Microsoft Corporation", Industry: "Technology", Price: papertrade.M(300, usd)},
	} {
		if err := c.Add(s); err != nil {
			t.Fatalf("Add(%s) failed: %v", s.Ticker, err)
		}
	}
	return c
}

// newAccount creates alice with balance and returns a logged in credential.
func newAccount(t rapid.TB, users *papertrade.MemoryUserStore, balance papertrade.Money) string {
	t.Helper()
	if err := users.Create(papertrade.NewUser("alice", nil, balance)); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	cred, err := users.OpenSession("alice")
	if err != nil {
		t.Fatalf("OpenSession() failed: %v", err)
	}
	return cred
}

func fixedClock() time.Time { return time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC) }

func TestBuy(t *testing.T) {
	ctx := context.Background()
	users := papertrade.NewMemoryUserStore()
	market := newMarket(t)
	cred := newAccount(t, users, papertrade.M(10000, usd))

	rec := &recorder[BuyOutput]{}
	buy := NewBuy(users, market, rec)
	buy.now = fixedClock

	out, err := buy.Execute(ctx, BuyInput{Credential: cred, Ticker: "AAPL", Quantity: papertrade.Q(10)})
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	if len(rec.successes) != 1 || rec.calls() != 1 {
		t.Errorf("presenter got %d successes in %d calls, want exactly one success", len(rec.successes), rec.calls())
	}
	if want := papertrade.M(8500, usd); !out.Balance.Equal(want) {
		t.Errorf("Balance = %v, want %v", out.Balance, want)
	}
	if !out.Holding.Quantity.Equal(papertrade.Q(10)) {
		t.Errorf("Holding.Quantity = %v, want 10", out.Holding.Quantity)
	}
	if want := papertrade.M(1500, usd); !out.Holding.TotalCost.Equal(want) {
		t.Errorf("Holding.TotalCost = %v, want %v", out.Holding.TotalCost, want)
	}
	want := papertrade.NewTransaction(fixedClock(), papertrade.Buy, "AAPL", papertrade.Q(10), papertrade.M(150, usd))
	if !out.Transaction.Equal(want) {
		t.Errorf("Transaction = %v, want %v", out.Transaction, want)
	}

	u, err := users.UserByCredential(cred)
	if err != nil {
		t.Fatalf("UserByCredential() failed: %v", err)
	}
	if !u.Balance().Equal(papertrade.M(8500, usd)) {
		t.Errorf("stored balance = %v, want $8,500.00", u.Balance())
	}
	if u.History().Len() != 1 {
		t.Errorf("stored ledger has %d entries, want 1", u.History().Len())
	}
}

func TestBuyAccumulatesCost(t *testing.T) {
	ctx := context.Background()
	users := papertrade.NewMemoryUserStore()
	market := newMarket(t)
	cred := newAccount(t, users, papertrade.M(10000, usd))
	buy := NewBuy(users, market, nil)

	if _, err := buy.Execute(ctx, BuyInput{Credential: cred, Ticker: "AAPL", Quantity: papertrade.Q(10)}); err != nil {
		t.Fatalf("first buy failed: %v", err)
	}
	if err := market.SetPrice("AAPL", papertrade.M(160, usd)); err != nil {
		t.Fatalf("SetPrice() failed: %v", err)
	}
	out, err := buy.Execute(ctx, BuyInput{Credential: cred, Ticker: "AAPL", Quantity: papertrade.Q(5)})
	if err != nil {
		t.Fatalf("second buy failed: %v", err)
	}
	if !out.Holding.Quantity.Equal(papertrade.Q(15)) {
		t.Errorf("Quantity = %v, want 15", out.Holding.Quantity)
	}
	if want := papertrade.M(2300, usd); !out.Holding.TotalCost.Equal(want) {
		t.Errorf("TotalCost = %v, want %v", out.Holding.TotalCost, want)
	}
	if want := papertrade.M(7700, usd); !out.Balance.Equal(want) {
		t.Errorf("Balance = %v, want %v", out.Balance, want)
	}
}

func TestBuyErrors(t *testing.T) {
	testCases := []struct {
		name       string
		balance    int
		credential func(string) string
		ticker     string
		quantity   papertrade.Quantity
		want       error
	}{
		{
			name:     "insufficient balance",
			balance:  500,
			ticker:   "AAPL",
			quantity: papertrade.Q(10),
			want:     papertrade.ErrInsufficientBalance,
		},
		{
			name:     "unknown ticker",
			balance:  10000,
			ticker:   "NOPE",
			quantity: papertrade.Q(1),
			want:     papertrade.ErrUnknownTicker,
		},
		{
			name:       "unknown user",
			balance:    10000,
			credential: func(string) string { return "not-a-session" },
			ticker:     "AAPL",
			quantity:   papertrade.Q(1),
			want:       papertrade.ErrUnknownUser,
		},
		{
			name:       "ticker is checked before user",
			balance:    10000,
			credential: func(string) string { return "" },
			ticker:     "NOPE",
			quantity:   papertrade.Q(1),
			want:       papertrade.ErrUnknownTicker,
		},
		{
			name:     "zero quantity",
			balance:  10000,
			ticker:   "AAPL",
			quantity: papertrade.Q(0),
			want:     papertrade.ErrInvalidQuantity,
		},
		{
			name:     "fractional quantity",
			balance:  10000,
			ticker:   "AAPL",
			quantity: papertrade.Q(1.5),
			want:     papertrade.ErrInvalidQuantity,
		},
		{
			name:     "huge exponent",
			balance:  10000,
			ticker:   "AAPL",
			quantity: papertrade.Q(decimal.New(1, 300000000)),
			want:     papertrade.ErrInvalidQuantity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			users := papertrade.NewMemoryUserStore()
			cred := newAccount(t, users, papertrade.M(tc.balance, usd))
			if tc.credential != nil {
				cred = tc.credential(cred)
			}
			rec := &recorder[BuyOutput]{}
			_, err := NewBuy(users, newMarket(t), rec).Execute(context.Background(), BuyInput{Credential: cred, Ticker: tc.ticker, Quantity: tc.quantity})
			if !errors.Is(err, tc.want) {
				t.Fatalf("Execute() error = %v, want %v", err, tc.want)
			}
			if len(rec.failures) != 1 || rec.calls() != 1 {
				t.Errorf("presenter got %d failures in %d calls, want exactly one failure", len(rec.failures), rec.calls())
			}

			u, err := users.UserByUsername("alice")
			if err != nil {
				t.Fatalf("UserByUsername() failed: %v", err)
			}
			if want := papertrade.M(tc.balance, usd); !u.Balance().Equal(want) {
				t.Errorf("balance = %v, want unchanged %v", u.Balance(), want)
			}
			if u.Portfolio().Len() != 0 {
				t.Errorf("portfolio has %d holdings, want none", u.Portfolio().Len())
			}
			if u.History().Len() != 0 {
				t.Errorf("ledger has %d entries, want none", u.History().Len())
			}
		})
	}
}

func TestSellAll(t *testing.T) {
	ctx := context.Background()
	users := papertrade.NewMemoryUserStore()
	market := newMarket(t)
	cred := newAccount(t, users, papertrade.M(10000, usd))

	if _, err := NewBuy(users, market, nil).Execute(ctx, BuyInput{Credential: cred, Ticker: "AAPL", Quantity: papertrade.Q(10)}); err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	rec := &recorder[SellOutput]{}
	out, err := NewSell(users, market, rec).Execute(ctx, SellInput{Credential: cred, Ticker: "AAPL", Quantity: papertrade.Q(10)})
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if rec.calls() != 1 || len(rec.successes) != 1 {
		t.Errorf("presenter got %d calls, want one success", rec.calls())
	}
	if !out.Closed {
		t.Errorf("Closed = false, want true")
	}
	if !out.Holding.Quantity.IsZero() {
		t.Errorf("remaining quantity = %v, want 0", out.Holding.Quantity)
	}
	if want := papertrade.M(10000, usd); !out.Balance.Equal(want) {
		t.Errorf("Balance = %v, want %v", out.Balance, want)
	}
	if want := papertrade.M(1500, usd); !out.Proceeds.Equal(want) {
		t.Errorf("Proceeds = %v, want %v", out.Proceeds, want)
	}

	u, _ := users.UserByCredential(cred)
	if _, ok := u.Holding("AAPL"); ok {
		t.Errorf("AAPL holding still present after selling everything")
	}
	var types []papertrade.TradeType
	for _, tx := range u.History().Transactions() {
		types = append(types, tx.Type)
	}
	if len(types) != 2 || types[0] != papertrade.Buy || types[1] != papertrade.Sell {
		t.Errorf("ledger types = %v, want [BUY SELL]", types)
	}
}

func TestSellPartialReducesCostProportionally(t *testing.T) {
	ctx := context.Background()
	users := papertrade.NewMemoryUserStore()
	market := newMarket(t)
	cred := newAccount(t, users, papertrade.M(10000, usd))

	if _, err := NewBuy(users, market, nil).Execute(ctx, BuyInput{Credential: cred, Ticker: "AAPL", Quantity: papertrade.Q(10)}); err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if err := market.SetPrice("AAPL", papertrade.M(200, usd)); err != nil {
		t.Fatalf("SetPrice() failed: %v", err)
	}
	out, err := NewSell(users, market, nil).Execute(ctx, SellInput{Credential: cred, Ticker: "AAPL", Quantity: papertrade.Q(4)})
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if out.Closed {
		t.Errorf("Closed = true, want false")
	}
	if !out.Holding.Quantity.Equal(papertrade.Q(6)) {
		t.Errorf("Quantity = %v, want 6", out.Holding.Quantity)
	}
	if want := papertrade.M(900, usd); !out.Holding.TotalCost.Equal(want) {
		t.Errorf("TotalCost = %v, want %v", out.Holding.TotalCost, want)
	}
	if want := papertrade.M(9300, usd); !out.Balance.Equal(want) {
		t.Errorf("Balance = %v, want %v", out.Balance, want)
	}
	if want := papertrade.M(800, usd); !out.Proceeds.Equal(want) {
		t.Errorf("Proceeds = %v, want %v", out.Proceeds, want)
	}
}

func TestSellErrors(t *testing.T) {
	testCases := []struct {
		name     string
		ticker   string
		quantity papertrade.Quantity
		want     error
	}{
		{"no holding", "MSFT", papertrade.Q(1), papertrade.ErrNoSuchHolding},
		{"too many shares", "AAPL", papertrade.Q(11), papertrade.ErrInsufficientShares},
		{"unknown ticker", "NOPE", papertrade.Q(1), papertrade.ErrUnknownTicker},
		{"negative quantity", "AAPL", papertrade.Q(-1), papertrade.ErrInvalidQuantity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			users := papertrade.NewMemoryUserStore()
			market := newMarket(t)
			cred := newAccount(t, users, papertrade.M(10000, usd))
			if _, err := NewBuy(users, market, nil).Execute(ctx, BuyInput{Credential: cred, Ticker: "AAPL", Quantity: papertrade.Q(10)}); err != nil {
				t.Fatalf("buy failed: %v", err)
			}

			rec := &recorder[SellOutput]{}
			_, err := NewSell(users, market, rec).Execute(ctx, SellInput{Credential: cred, Ticker: tc.ticker, Quantity: tc.quantity})
			if !errors.Is(err, tc.want) {
				t.Fatalf("Execute() error = %v, want %v", err, tc.want)
			}
			if rec.calls() != 1 || len(rec.failures) != 1 {
				t.Errorf("presenter got %d calls, want one failure", rec.calls())
			}

			u, _ := users.UserByCredential(cred)
			if want := papertrade.M(8500, usd); !u.Balance().Equal(want) {
				t.Errorf("balance = %v, want unchanged %v", u.Balance(), want)
			}
			h, ok := u.Holding("AAPL")
			if !ok || !h.Quantity.Equal(papertrade.Q(10)) {
				t.Errorf("AAPL holding = %v, want unchanged 10 shares", h.Quantity)
			}
			if u.History().Len() != 1 {
				t.Errorf("ledger has %d entries, want 1", u.History().Len())
			}
		})
	}
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	users := papertrade.NewMemoryUserStore()
	market := newMarket(t)
	cred := newAccount(t, users, papertrade.M(10000, usd))

	buy := NewBuy(users, market, nil)
	for _, in := range []BuyInput{
		{Credential: cred, Ticker: "MSFT", Quantity: papertrade.Q(2)},
		{Credential: cred, Ticker: "AAPL", Quantity: papertrade.Q(10)},
	} {
		if _, err := buy.Execute(ctx, in); err != nil {
			t.Fatalf("buy %s failed: %v", in.Ticker, err)
		}
	}
	if err := market.SetPrice("AAPL", papertrade.M(170, usd)); err != nil {
		t.Fatalf("SetPrice() failed: %v", err)
	}

	rec := &recorder[HistoryOutput]{}
	out, err := NewHistory(users, market, rec).Execute(ctx, cred)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if rec.calls() != 1 {
		t.Errorf("presenter got %d calls, want 1", rec.calls())
	}
	if len(out.Positions) != 2 || out.Positions[0].Ticker() != "AAPL" || out.Positions[1].Ticker() != "MSFT" {
		t.Fatalf("Positions = %v, want AAPL then MSFT", out.Positions)
	}
	aapl := out.Positions[0]
	if want := papertrade.M(1700, usd); !aapl.MarketValue.Equal(want) {
		t.Errorf("AAPL MarketValue = %v, want %v", aapl.MarketValue, want)
	}
	if want := papertrade.M(200, usd); !aapl.ProfitLoss.Equal(want) {
		t.Errorf("AAPL ProfitLoss = %v, want %v", aapl.ProfitLoss, want)
	}
	if want := papertrade.M(150, usd); !aapl.AverageCost.Equal(want) {
		t.Errorf("AAPL AverageCost = %v, want %v", aapl.AverageCost, want)
	}

	checks := []struct {
		name      string
		got, want papertrade.Money
	}{
		{"Balance", out.Balance, papertrade.M(7900, usd)},
		{"MarketValue", out.MarketValue, papertrade.M(2300, usd)},
		{"TotalCost", out.TotalCost, papertrade.M(2100, usd)},
		{"ProfitLoss", out.ProfitLoss, papertrade.M(200, usd)},
		{"NetWorth", out.NetWorth, papertrade.M(10200, usd)},
	}
	for _, c := range checks {
		if !c.got.Equal(c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if len(out.Transactions) != 2 {
		t.Errorf("got %d transactions, want 2", len(out.Transactions))
	}

	out, err = NewHistory(users, market, nil).Execute(ctx, cred, papertrade.BySecurity("msft"))
	if err != nil {
		t.Fatalf("Execute() with a filter failed: %v", err)
	}
	if len(out.Transactions) != 1 || out.Transactions[0].Ticker != "MSFT" || len(out.Positions) != 2 {
		t.Errorf("filtered history = %v with %d positions, want the MSFT trade and 2 positions", out.Transactions, len(out.Positions))
	}

	// Valuation does not mutate the account.
	u, _ := users.UserByCredential(cred)
	if !u.Balance().Equal(papertrade.M(7900, usd)) || u.History().Len() != 2 {
		t.Errorf("history changed the account: balance %v, %d trades", u.Balance(), u.History().Len())
	}
}

func TestHistoryUnknownUser(t *testing.T) {
	rec := &recorder[HistoryOutput]{}
	_, err := NewHistory(papertrade.NewMemoryUserStore(), newMarket(t), rec).Execute(context.Background(), "nobody")
	if !errors.Is(err, papertrade.ErrUnknownUser) {
		t.Fatalf("Execute() error = %v, want %v", err, papertrade.ErrUnknownUser)
	}
	if len(rec.failures) != 1 {
		t.Errorf("presenter got %d failures, want 1", len(rec.failures))
	}
}

func TestSearch(t *testing.T) {
	testCases := []struct {
		query string
		want  []string
	}{
		{"", []string{"AAPL", "MSFT"}},
		{"aapl", []string{"AAPL"}},
		{"micro", []string{"MSFT"}},
		{"technology", []string{"AAPL", "MSFT"}},
		{"bank", nil},
	}
	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			out, err := NewSearch(newMarket(t), nil).Execute(context.Background(), tc.query)
			if err != nil {
				t.Fatalf("Execute() failed: %v", err)
			}
			var got []string
			for _, s := range out.Stocks {
				got = append(got, s.Ticker)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("Search(%q) = %v, want %v", tc.query, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Search(%q)[%d] = %s, want %s", tc.query, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := &recorder[BuyOutput]{}
	_, err := NewBuy(papertrade.NewMemoryUserStore(), newMarket(t), rec).Execute(ctx, BuyInput{Ticker: "AAPL", Quantity: papertrade.Q(1)})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() error = %v, want %v", err, context.Canceled)
	}
	if len(rec.failures) != 1 {
		t.Errorf("presenter got %d failures, want 1", len(rec.failures))
	}
}
