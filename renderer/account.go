package renderer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/interactor"
	md "github.com/nao1215/markdown"
)

// BuyMarkdown confirms a purchase with the resulting position and cash.
func BuyMarkdown(r interactor.BuyOutput) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.PlainText(Transaction(r.Transaction) + ".")
	doc.BulletList(
		fmt.Sprintf("Position: %s %s, average cost %s", r.Holding.Quantity, r.Holding.Ticker(), r.Holding.AverageCost()),
		fmt.Sprintf("Cash: %s", r.Balance),
	)
	return doc.String()
}

// SellMarkdown confirms a sale, noting when it closed the position.
func SellMarkdown(r interactor.SellOutput) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.PlainText(Transaction(r.Transaction) + ".")
	position := fmt.Sprintf("Position: %s %s, average cost %s", r.Holding.Quantity, r.Holding.Ticker(), r.Holding.AverageCost())
	if r.Closed {
		position = fmt.Sprintf("Position: %s closed", r.Holding.Ticker())
	}
	doc.BulletList(position, fmt.Sprintf("Cash: %s", r.Balance))
	return doc.String()
}

// SignupMarkdown greets a new user.
func SignupMarkdown(r interactor.SignupOutput) string {
	return fmt.Sprintf("Welcome %s, your account starts with %s. Log in to trade.\n", r.Username, r.Balance)
}

// LoginMarkdown confirms a login.
func LoginMarkdown(r interactor.LoginOutput) string {
	return fmt.Sprintf("Logged in as %s. Cash: %s.\n", r.Username, r.Balance)
}

// LogoutMarkdown confirms a logout.
func LogoutMarkdown(username string) string {
	return fmt.Sprintf("Goodbye %s.\n", username)
}

// DepositMarkdown reports the cash after a deposit.
func DepositMarkdown(r interactor.DepositOutput) string {
	return fmt.Sprintf("Cash: %s.\n", r.Balance)
}

// ErrorMarkdown renders a failed use case, with a hint when the user can fix it.
func ErrorMarkdown(err error) string {
	msg := fmt.Sprintf("**Error:** %v\n", err)
	switch {
	case errors.Is(err, papertrade.ErrUnknownUser):
		msg += "\nLog in first with `login <user> <password>`.\n"
	case errors.Is(err, papertrade.ErrUnknownTicker):
		msg += "\nUse `search` to list the available tickers.\n"
	case errors.Is(err, papertrade.ErrUserNotFound):
		msg += "\nCreate an account with `signup <user> <password>`.\n"
	}
	return msg
}
