package papertrade

import "strings"

// Stock is a tradable security of the simulated market.
//
// Ticker, Company and Industry never change; the price is owned by the
// Catalog and only changes through Catalog.SetPrice.
type Stock struct {
	Ticker   string
	Company  string
	Industry string
	Price    Money
}

// NormalizeTicker trims and upper-cases a user supplied ticker.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Matches reports whether query appears, ignoring case, in the ticker, the
// company or the industry of the stock. An empty query matches everything.
func (s Stock) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range []string{s.Ticker, s.Company, s.Industry} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
