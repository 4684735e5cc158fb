// Package renderer turns the outputs of the use cases into markdown documents.
package renderer

import "github.com/etnz/papertrade/interactor"

// Present returns a presenter that renders outcomes as markdown and hands
// them over to show. Failures are rendered by ErrorMarkdown.
func Present[T any](render func(T) string, show func(markdown string)) interactor.Presenter[T] {
	return interactor.PresenterFuncs[T]{
		OnSuccess: func(out T) { show(render(out)) },
		OnFailure: func(err error) { show(ErrorMarkdown(err)) },
	}
}

// Presenters renders every use case with the markdown renderers of this package.
func Presenters(show func(markdown string)) interactor.Presenters {
	return interactor.Presenters{
		Signup:  Present(SignupMarkdown, show),
		Login:   Present(LoginMarkdown, show),
		Logout:  Present(LogoutMarkdown, show),
		Deposit: Present(DepositMarkdown, show),
		Buy:     Present(BuyMarkdown, show),
		Sell:    Present(SellMarkdown, show),
		History: Present(PortfolioMarkdown, show),
		Search:  Present(StocksMarkdown, show),
	}
}
