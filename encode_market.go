package papertrade

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// The market seed is a JSONL file, one stock per line:
//
//	{"ticker":"AAPL","company":"Apple Inc.","industry":"Technology","price":150}
//
// It is human-readable and git friendly, like the ledger export.

// jstock is the object read from a market seed line.
type jstock struct {
	Ticker   string          `json:"ticker"`
	Company  string          `json:"company"`
	Industry string          `json:"industry"`
	Price    decimal.Decimal `json:"price"`
}

// DecodeCatalog parses a market seed from r into a new catalog quoted in currency.
// filename is for error messages only. Blank lines are skipped and
// duplicated tickers are reported and ignored.
func DecodeCatalog(filename string, r io.Reader, currency string) (*MemoryCatalog, error) {
	c := NewCatalog(currency)
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var js jstock
		if err := json.Unmarshal(line, &js); err != nil {
			return nil, fmt.Errorf("format error in %s:%d: %w", filename, lineno, err)
		}
		if NormalizeTicker(js.Ticker) == "" {
			return nil, fmt.Errorf("format error in %s:%d: missing ticker", filename, lineno)
		}
		if _, exists := c.Stock(js.Ticker); exists {
			log.Printf("format error in %s:%d: ticker %q is already defined", filename, lineno, js.Ticker)
			continue
		}
		err := c.Add(Stock{
			Ticker:   js.Ticker,
			Company:  js.Company,
			Industry: js.Industry,
			Price:    M(js.Price, currency),
		})
		if err != nil {
			return nil, fmt.Errorf("invalid stock in %s:%d: %w", filename, lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read %s: %w", filename, err)
	}
	return c, nil
}

// LoadCatalog opens the market seed file. An empty filename selects the
// built-in market.
func LoadCatalog(filename, currency string) (*MemoryCatalog, error) {
	if filename == "" {
		c := NewDefaultCatalog(currency)
		log.Printf("using the built-in market of %d stocks", len(c.Stocks()))
		return c, nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open market file: %w", err)
	}
	defer f.Close()

	c, err := DecodeCatalog(filename, f, currency)
	if err != nil {
		return nil, err
	}
	if len(c.Stocks()) == 0 {
		return nil, errors.New("market file " + filename + " lists no stock")
	}
	log.Printf("loaded %d stocks from %s", len(c.Stocks()), filename)
	return c, nil
}

// EncodeCatalog writes every stock of the catalog as a market seed, in ticker order.
func EncodeCatalog(w io.Writer, c Catalog) error {
	for _, s := range c.Stocks() {
		line, err := json.Marshal(jstock{
			Ticker:   s.Ticker,
			Company:  s.Company,
			Industry: s.Industry,
			Price:    s.Price.value,
		})
		if err != nil {
			return fmt.Errorf("could not encode %s: %w", s.Ticker, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}
