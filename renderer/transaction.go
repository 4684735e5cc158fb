package renderer

import (
	"fmt"

	"github.com/etnz/papertrade"
)

// Transaction renders a transaction to a string.
func Transaction(tx papertrade.Transaction) string {
	switch tx.Type {
	case papertrade.Buy:
		return fmt.Sprintf("Bought %s %s at %s for %s", tx.Quantity, tx.Ticker, tx.Price, tx.Amount())
	case papertrade.Sell:
		return fmt.Sprintf("Sold %s %s at %s for %s", tx.Quantity, tx.Ticker, tx.Price, tx.Amount())
	default:
		return fmt.Sprintf("%s %s %s at %s", tx.Type, tx.Quantity, tx.Ticker, tx.Price)
	}
}
