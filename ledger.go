package papertrade

import (
	"iter"
	"slices"
)

// Ledger is the append-only history of a user's trades.
//
// In a Ledger transactions are always in the order they were executed.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append records executed trades at the end of the ledger.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
}

// Len returns the number of recorded trades.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns an iterator over the trades accepted by all filters,
// in their original order. Without filters every trade is yielded.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
	next:
		for i, tx := range l.transactions {
			for _, filter := range filters {
				if !filter(tx) {
					continue next
				}
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// clone returns a copy of the ledger sharing no storage with l.
func (l *Ledger) clone() *Ledger {
	return &Ledger{transactions: slices.Clone(l.transactions)}
}

// BySecurity returns a predicate that filters transactions by ticker.
func BySecurity(ticker string) func(Transaction) bool {
	ticker = NormalizeTicker(ticker)
	return func(tx Transaction) bool { return tx.Ticker == ticker }
}

// ByType returns a predicate that filters transactions by trade direction.
func ByType(typ TradeType) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Type == typ }
}

// ParseFilter reads a filter typed by a user: "buy" or "sell" select a trade
// direction, anything else a ticker.
func ParseFilter(s string) func(Transaction) bool {
	if typ, err := ParseTradeType(s); err == nil {
		return ByType(typ)
	}
	return BySecurity(s)
}
