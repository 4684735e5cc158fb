package papertrade

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// TradeType is the direction of a trade.
type TradeType string

const (
	Buy  TradeType = "BUY"
	Sell TradeType = "SELL"
)

// ParseTradeType parses "buy" or "sell", case insensitive.
func ParseTradeType(s string) (TradeType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Buy):
		return Buy, nil
	case string(Sell):
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown trade type: %q", s)
	}
}

// Transaction is an executed trade. Transactions are values: they are never
// modified once recorded in a Ledger.
type Transaction struct {
	Time     time.Time
	Ticker   string
	Quantity Quantity
	Price    Money // Price is the price of one share.
	Type     TradeType
}

// NewTransaction creates a trade record of quantity shares of ticker at price.
func NewTransaction(when time.Time, typ TradeType, ticker string, quantity Quantity, price Money) Transaction {
	return Transaction{
		Time:     when,
		Ticker:   ticker,
		Quantity: quantity,
		Price:    price,
		Type:     typ,
	}
}

// Amount returns the total value of the trade, price × quantity.
func (t Transaction) Amount() Money { return t.Price.Mul(t.Quantity) }

// Equal reports whether both transactions describe the same trade.
func (t Transaction) Equal(o Transaction) bool {
	return t.Time.Equal(o.Time) &&
		t.Ticker == o.Ticker &&
		t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) &&
		t.Type == o.Type
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("time", t.Time.UTC().Format(time.RFC3339Nano))
	w.Append("type", t.Type)
	w.Append("ticker", t.Ticker)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.value)
	w.Optional("currency", t.Price.cur)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
// It rejects trades that could not have been executed.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		Time     time.Time       `json:"time"`
		Type     string          `json:"type"`
		Ticker   string          `json:"ticker"`
		Quantity Quantity        `json:"quantity"`
		Price    decimal.Decimal `json:"price"`
		Currency string          `json:"currency"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	typ, err := ParseTradeType(temp.Type)
	if err != nil {
		return err
	}
	ticker := NormalizeTicker(temp.Ticker)
	if ticker == "" {
		return errors.New("missing ticker")
	}
	if err := temp.Quantity.Validate(); err != nil {
		return err
	}
	price := M(temp.Price, temp.Currency)
	if err := price.checkRange(); err != nil {
		return err
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: negative price %s", ErrInvalidAmount, price)
	}
	if temp.Currency != "" && money.GetCurrency(temp.Currency) == nil {
		return fmt.Errorf("unknown currency %q", temp.Currency)
	}
	*t = NewTransaction(temp.Time, typ, ticker, temp.Quantity, price)
	return nil
}
