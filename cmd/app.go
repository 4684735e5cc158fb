// Package cmd implements the CLI application to trade on a simulated stock market.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/interactor"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&stocksCmd{}, "market")
	c.Register(&sessionCmd{}, "trading")
	c.Register(&tradesCmd{}, "trading")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var catalogFile = flag.String("catalog-file", "", "Path to the stock catalog (JSONL format), the built-in catalog when empty")
var currency = flag.String("currency", papertrade.DefaultCurrency, "Currency of the simulation")
var initialBalance = flag.String("initial-balance", "10000", "Starting cash of new accounts")
var bcryptCost = flag.Int("bcrypt-cost", bcrypt.DefaultCost, "Cost of the password hashes")
var plain = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")

// envFlags maps global flags to the environment variables that default them.
var envFlags = map[string]string{
	"catalog-file":    "PAPERTRADE_CATALOG",
	"currency":        "PAPERTRADE_CURRENCY",
	"initial-balance": "PAPERTRADE_INITIAL_BALANCE",
	"bcrypt-cost":     "PAPERTRADE_BCRYPT_COST",
}

// LoadEnv loads the optional .env files (".env" when none is given) and
// uses the environment to default the global flags of f.
// It must be called before f is parsed so that the command line wins.
func LoadEnv(f *flag.FlagSet, files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load environment: %w", err)
	}
	for name, key := range envFlags {
		value, ok := os.LookupEnv(key)
		if !ok || f.Lookup(name) == nil {
			continue
		}
		if err := f.Set(name, value); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", key, value, err)
		}
	}
	return nil
}

// LoadCatalog loads the stock catalog of the app.
func LoadCatalog() (*papertrade.MemoryCatalog, error) {
	return papertrade.LoadCatalog(*catalogFile, *currency)
}

// InitialBalance returns the configured starting cash of new accounts.
func InitialBalance() (papertrade.Money, error) {
	m, err := interactor.ParseAmount(*initialBalance, *currency)
	if err != nil {
		return papertrade.Money{}, fmt.Errorf("invalid -initial-balance: %w", err)
	}
	return m, nil
}

// Hasher returns the configured password hasher.
func Hasher() papertrade.PasswordHasher {
	return papertrade.BcryptHasher{Cost: *bcryptCost}
}

// printMarkdown prints markdown to w, rendered for the terminal unless -plain is set.
func printMarkdown(w io.Writer, markdown string) {
	if *plain {
		fmt.Fprint(w, markdown)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		log.Printf("cannot render markdown: %v", err)
		fmt.Fprint(w, markdown)
		return
	}
	out, err := r.Render(markdown)
	if err != nil {
		log.Printf("cannot render markdown: %v", err)
		fmt.Fprint(w, markdown)
		return
	}
	fmt.Fprint(w, out)
}
