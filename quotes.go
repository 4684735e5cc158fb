package papertrade

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DefaultQuotesPath selects quotes in a document shaped like
//
//	{"quotes":[{"symbol":"AAPL","price":151.2}, ...]}
const DefaultQuotesPath = "$.quotes[*]"

// DecodeQuotes reads an arbitrary JSON quote document.
func DecodeQuotes(r io.Reader) (any, error) {
	var doc any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid quote document: %w", err)
	}
	return doc, nil
}

// ApplyQuotes updates catalog prices from a quote document.
//
// path is a JSONPath expression selecting either a list of quote objects,
// each with a "ticker" (or "symbol") and a "price", or a single object
// mapping tickers to prices. Quotes for unlisted tickers and quotes without
// a usable price are logged and skipped. It returns the number of prices
// applied.
func ApplyQuotes(c *MemoryCatalog, doc any, path string) (int, error) {
	if path == "" {
		path = DefaultQuotesPath
	}
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return 0, fmt.Errorf("error evaluating %q: %w", path, err)
	}

	quotes := make(map[string]any)
	switch v := jval.(type) {
	case []any:
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				log.Printf("skipping quote %v: not an object", item)
				continue
			}
			ticker, _ := obj["ticker"].(string)
			if ticker == "" {
				ticker, _ = obj["symbol"].(string)
			}
			if ticker == "" {
				log.Printf("skipping quote %v: no ticker nor symbol", obj)
				continue
			}
			quotes[NormalizeTicker(ticker)] = obj["price"]
		}
	case map[string]any:
		for ticker, price := range v {
			quotes[NormalizeTicker(ticker)] = price
		}
	default:
		return 0, fmt.Errorf("%q selects %T, want a list of quotes or an object", path, jval)
	}

	applied := 0
	for _, ticker := range slices.Sorted(maps.Keys(quotes)) {
		price, err := quotePrice(quotes[ticker])
		if err != nil {
			log.Printf("skipping quote for %s: %v", ticker, err)
			continue
		}
		if err := c.SetPrice(ticker, M(price, c.Currency())); err != nil {
			log.Printf("skipping quote for %s: %v", ticker, err)
			continue
		}
		applied++
	}
	return applied, nil
}

// quotePrice reads a price that quote APIs send either as a number or as a string.
func quotePrice(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		// some APIs use a decimal comma
		sval := strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
		return decimal.NewFromString(sval)
	case nil:
		return decimal.Decimal{}, fmt.Errorf("no price")
	default:
		return decimal.Decimal{}, fmt.Errorf("price %v is neither a number nor a string", jval)
	}
}
