package interactor

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/papertrade"
)

// LoginInput holds the credentials typed by a user.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput carries the session credential to pass to every other use case.
type LoginOutput struct {
	Credential string
	Username   string
	Balance    papertrade.Money
}

// Login checks credentials and opens a session.
type Login struct {
	users  papertrade.UserStore
	hasher papertrade.PasswordHasher
	out    Presenter[LoginOutput]
}

// NewLogin creates the login use case.
func NewLogin(users papertrade.UserStore, hasher papertrade.PasswordHasher, out Presenter[LoginOutput]) *Login {
	return &Login{users: users, hasher: hasher, out: out}
}

// Execute fails with ErrUserNotFound or ErrInvalidCredential.
func (l *Login) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	if err := ctx.Err(); err != nil {
		return reject(l.out, err)
	}
	u, err := l.users.UserByUsername(in.Username)
	if err != nil {
		return reject(l.out, err)
	}
	if err := l.hasher.Compare(u.PasswordHash(), in.Password); err != nil {
		if errors.Is(err, papertrade.ErrInvalidCredential) {
			err = fmt.Errorf("%w: wrong password for %q", papertrade.ErrInvalidCredential, in.Username)
		}
		return reject(l.out, err)
	}
	credential, err := l.users.OpenSession(u.Username())
	if err != nil {
		return reject(l.out, err)
	}
	return present(l.out, LoginOutput{
		Credential: credential,
		Username:   u.Username(),
		Balance:    u.Balance(),
	}, nil)
}

// Logout revokes a session credential.
type Logout struct {
	users papertrade.UserStore
	out   Presenter[string]
}

// NewLogout creates the logout use case, out receives the username.
func NewLogout(users papertrade.UserStore, out Presenter[string]) *Logout {
	return &Logout{users: users, out: out}
}

// Execute fails with ErrUnknownUser if credential is not an open session.
func (l *Logout) Execute(ctx context.Context, credential string) (string, error) {
	if err := ctx.Err(); err != nil {
		return reject(l.out, err)
	}
	u, err := l.users.UserByCredential(credential)
	if err != nil {
		return reject(l.out, err)
	}
	if err := l.users.CloseSession(credential); err != nil {
		return reject(l.out, err)
	}
	return present(l.out, u.Username(), nil)
}
