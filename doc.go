// Package papertrade provides the entities and in-memory data access of a
// paper-trading simulator: a market of stocks, users with a cash balance, a
// portfolio of holdings and an append-only ledger of executed trades.
//
// The core types are:
//   - Money and Quantity: exact decimal values, so that buying then selling
//     the same shares at the same price restores the balance to the cent.
//   - Catalog: the simulated market, a ticker to Stock index seeded once at
//     startup and updated only through its price-update path.
//   - User, Portfolio, Holding and Ledger: the state of one trader. A User
//     applies a trade as a whole or not at all.
//   - UserStore: the data access port for users and their sessions, with an
//     in-memory implementation that serializes updates per user.
//
// The use cases (buy, sell, login, history...) live in package interactor,
// and the `pts` command line tool drives them.
package papertrade
