package papertrade

import (
	"fmt"
	"log"
	"maps"
	"slices"
	"sync"
)

// Catalog is the read side of the simulated market used by the use cases.
type Catalog interface {
	// Stock returns the stock listed under ticker, if any.
	Stock(ticker string) (Stock, bool)
	// Stocks returns every listed stock in ticker order.
	Stocks() []Stock
	// Search returns the stocks matching query in ticker order.
	Search(query string) []Stock
}

// MemoryCatalog is an in-memory Catalog, seeded once and safe for concurrent use.
type MemoryCatalog struct {
	mu       sync.RWMutex
	currency string
	stocks   map[string]Stock // index stocks by ticker
}

// NewCatalog creates an empty catalog quoting prices in currency.
func NewCatalog(currency string) *MemoryCatalog {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &MemoryCatalog{
		currency: currency,
		stocks:   make(map[string]Stock),
	}
}

// Currency returns the currency every price of this catalog is quoted in.
func (c *MemoryCatalog) Currency() string { return c.currency }

// Add lists a new stock. The ticker is normalized and must not be listed yet.
func (c *MemoryCatalog) Add(s Stock) error {
	s.Ticker = NormalizeTicker(s.Ticker)
	if s.Ticker == "" {
		return fmt.Errorf("%w: empty ticker", ErrUnknownTicker)
	}
	if err := s.Price.checkRange(); err != nil {
		return fmt.Errorf("price of %s: %w", s.Ticker, err)
	}
	if s.Price.IsNegative() {
		return fmt.Errorf("%w: negative price %s for %s", ErrInvalidAmount, s.Price, s.Ticker)
	}
	s.Price = M(s.Price.value, c.currency)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.stocks[s.Ticker]; exists {
		return fmt.Errorf("ticker %q is already listed", s.Ticker)
	}
	c.stocks[s.Ticker] = s
	return nil
}

func (c *MemoryCatalog) Stock(ticker string) (Stock, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.stocks[NormalizeTicker(ticker)]
	return s, ok
}

func (c *MemoryCatalog) Stocks() []Stock {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tickers := slices.Sorted(maps.Keys(c.stocks))
	out := make([]Stock, 0, len(tickers))
	for _, t := range tickers {
		out = append(out, c.stocks[t])
	}
	return out
}

// Search returns the stocks matching query (see Stock.Matches) in ticker order.
func (c *MemoryCatalog) Search(query string) []Stock {
	var out []Stock
	for _, s := range c.Stocks() {
		if s.Matches(query) {
			out = append(out, s)
		}
	}
	return out
}

// SetPrice is the market update path: it changes the current price of a listed stock.
func (c *MemoryCatalog) SetPrice(ticker string, price Money) error {
	ticker = NormalizeTicker(ticker)
	if err := price.checkRange(); err != nil {
		return fmt.Errorf("price of %s: %w", ticker, err)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: negative price %s for %s", ErrInvalidAmount, price, ticker)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.stocks[ticker]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTicker, ticker)
	}
	price = M(price.value, c.currency)
	if !s.Price.Equal(price) {
		log.Printf("update %s price from %s to %s", ticker, s.Price, price)
	}
	s.Price = price
	c.stocks[ticker] = s
	return nil
}

// DefaultStocks is the built-in market used when no catalog file is configured.
func DefaultStocks(currency string) []Stock {
	type seed struct {
		ticker, company, industry string
		price                     float64
	}
	seeds := []seed{
		{"AAPL", "Apple Inc.", "Technology", 150.00},
		{"AMZN", "Amazon.com Inc.", "Consumer Discretionary", 178.25},
		{"BAC", "Bank of America Corp.", "Financials", 34.10},
		{"DIS", "The Walt Disney Company", "Communication Services", 91.40},
		{"GOOGL", "Alphabet Inc.", "Communication Services", 138.70},
		{"JNJ", "Johnson & Johnson", "Health Care", 155.90},
		{"JPM", "JPMorgan Chase & Co.", "Financials", 195.20},
		{"KO", "The Coca-Cola Company", "Consumer Staples", 60.15},
		{"MSFT", "Microsoft Corporation", "Technology", 415.50},
		{"NVDA", "NVIDIA Corporation", "Technology", 875.30},
		{"TSLA", "Tesla Inc.", "Consumer Discretionary", 172.60},
		{"XOM", "Exxon Mobil Corporation", "Energy", 118.45},
	}
	stocks := make([]Stock, 0, len(seeds))
	for _, s := range seeds {
		stocks = append(stocks, Stock{
			Ticker:   s.ticker,
			Company:  s.company,
			Industry: s.industry,
			Price:    M(s.price, currency),
		})
	}
	return stocks
}

// NewDefaultCatalog creates a catalog seeded with DefaultStocks.
func NewDefaultCatalog(currency string) *MemoryCatalog {
	c := NewCatalog(currency)
	for _, s := range DefaultStocks(c.currency) {
		if err := c.Add(s); err != nil {
			// the built-in seed has unique tickers and positive prices.
			panic(err)
		}
	}
	return c
}
