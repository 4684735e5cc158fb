package papertrade

import "errors"

// Errors reported by the trading use cases. They are recoverable: callers
// test them with errors.Is and report them to the user.
var (
	ErrUnknownTicker       = errors.New("unknown ticker")
	ErrUnknownUser         = errors.New("unknown user")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoSuchHolding       = errors.New("no such holding")
	ErrInsufficientShares  = errors.New("insufficient shares")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrInvalidAmount       = errors.New("invalid amount")
)
