package papertrade

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns passwords into stored hashes and checks them back.
type PasswordHasher interface {
	Hash(password string) ([]byte, error)
	// Compare returns ErrInvalidCredential when password does not match hash.
	Compare(hash []byte, password string) error
}

// BcryptHasher is the default PasswordHasher.
type BcryptHasher struct {
	Cost int // Cost is the bcrypt cost, bcrypt.DefaultCost when zero.
}

func (b BcryptHasher) Hash(password string) ([]byte, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}
	return hash, nil
}

func (BcryptHasher) Compare(hash []byte, password string) error {
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidCredential
	}
	if err != nil {
		return fmt.Errorf("could not check password: %w", err)
	}
	return nil
}
