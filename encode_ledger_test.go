package papertrade

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestEncodeTransaction(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
		want string
	}{
		{
			name: "buy",
			tx:   NewTransaction(time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC), Buy, "AAPL", Q(10), M(150.25, "USD")),
			want: `{"time":"2025-01-10T14:30:00Z","type":"BUY","ticker":"AAPL","quantity":10,"price":150.25,"currency":"USD"}` + "\n",
		},
		{
			name: "sell in another zone is written in UTC",
			tx:   NewTransaction(time.Date(2025, 1, 10, 15, 30, 0, 0, time.FixedZone("CET", 3600)), Sell, "MSFT", Q(3), M(300, "EUR")),
			want: `{"time":"2025-01-10T14:30:00Z","type":"SELL","ticker":"MSFT","quantity":3,"price":300,"currency":"EUR"}` + "\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := EncodeTransaction(&buf, tc.tx); err != nil {
				t.Fatalf("EncodeTransaction() failed: %v", err)
			}
			if buf.String() != tc.want {
				t.Errorf("EncodeTransaction() =\n%s\nwant\n%s", buf.String(), tc.want)
			}
		})
	}
}

func TestEncodeDecodeLedger(t *testing.T) {
	l := newTestLedger()
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatalf("EncodeLedger() failed: %v", err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != l.Len() {
		t.Errorf("EncodeLedger() wrote %d lines, want %d", lines, l.Len())
	}

	got, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}
	want := collect(l)
	all := collect(got)
	if len(all) != len(want) {
		t.Fatalf("DecodeLedger() returned %d transactions, want %d", len(all), len(want))
	}
	for i := range want {
		if !all[i].Equal(want[i]) {
			t.Errorf("transaction %d = %+v, want %+v", i, all[i], want[i])
		}
	}
}

func TestDecodeLedger(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{
			name:    "blank lines are skipped",
			input:   "\n" + `{"time":"2025-01-10T14:30:00Z","type":"buy","ticker":"AAPL","quantity":10,"price":150,"currency":"USD"}` + "\n\n",
			wantLen: 1,
		},
		{
			name:    "empty",
			input:   "",
			wantLen: 0,
		},
		{
			name:    "unknown trade type",
			input:   `{"time":"2025-01-10T14:30:00Z","type":"HOLD","ticker":"AAPL","quantity":10,"price":150}`,
			wantErr: true,
		},
		{
			name:    "zero quantity",
			input:   `{"time":"2025-01-10T14:30:00Z","type":"BUY","ticker":"AAPL","quantity":0,"price":150,"currency":"USD"}`,
			wantErr: true,
		},
		{
			name:    "negative quantity",
			input:   `{"time":"2025-01-10T14:30:00Z","type":"BUY","ticker":"AAPL","quantity":-1,"price":150,"currency":"USD"}`,
			wantErr: true,
		},
		{
			name:    "fractional quantity",
			input:   `{"time":"2025-01-10T14:30:00Z","type":"BUY","ticker":"AAPL","quantity":1.5,"price":150,"currency":"USD"}`,
			wantErr: true,
		},
		{
			name:    "huge quantity",
			input:   `{"time":"2025-01-10T14:30:00Z","type":"BUY","ticker":"AAPL","quantity":1e300000000,"price":150,"currency":"USD"}`,
			wantErr: true,
		},
		{
			name:    "negative price",
			input:   `{"time":"2025-01-10T14:30:00Z","type":"SELL","ticker":"AAPL","quantity":1,"price":-150,"currency":"USD"}`,
			wantErr: true,
		},
		{
			name:    "unknown currency",
			input:   `{"time":"2025-01-10T14:30:00Z","type":"BUY","ticker":"AAPL","quantity":1,"price":150,"currency":"XYZ"}`,
			wantErr: true,
		},
		{
			name:    "missing ticker",
			input:   `{"time":"2025-01-10T14:30:00Z","type":"BUY","ticker":" ","quantity":1,"price":150,"currency":"USD"}`,
			wantErr: true,
		},
		{
			name:    "not json",
			input:   "BUY AAPL 10",
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := DecodeLedger(strings.NewReader(tc.input))
			if tc.wantErr {
				if err == nil {
					t.Errorf("DecodeLedger() succeeded, want an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeLedger() failed: %v", err)
			}
			if l.Len() != tc.wantLen {
				t.Errorf("DecodeLedger() returned %d transactions, want %d", l.Len(), tc.wantLen)
			}
		})
	}
}

func TestParseTradeType(t *testing.T) {
	testCases := []struct {
		input   string
		want    TradeType
		wantErr bool
	}{
		{input: "buy", want: Buy},
		{input: " SELL ", want: Sell},
		{input: "Sell", want: Sell},
		{input: "short", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseTradeType(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseTradeType(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTradeType(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
