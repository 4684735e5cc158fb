// Package interactor implements the use cases of the simulator: sign-up,
// login, logout, deposit, market search, buy, sell and history.
//
// Each interactor receives its data access and its presenter as constructor
// parameters. Execute returns the outcome and also reports it to the
// presenter, exactly once: Success with the typed output or Failure with one
// of the papertrade errors.
package interactor

// Presenter is the output boundary of a use case.
type Presenter[T any] interface {
	Success(T)
	Failure(error)
}

// PresenterFuncs adapts two functions to a Presenter. Nil functions are skipped.
type PresenterFuncs[T any] struct {
	OnSuccess func(T)
	OnFailure func(error)
}

func (p PresenterFuncs[T]) Success(out T) {
	if p.OnSuccess != nil {
		p.OnSuccess(out)
	}
}

func (p PresenterFuncs[T]) Failure(err error) {
	if p.OnFailure != nil {
		p.OnFailure(err)
	}
}

// present reports the outcome of a use case to p, if any, and returns it.
func present[T any](p Presenter[T], out T, err error) (T, error) {
	if p == nil {
		return out, err
	}
	if err != nil {
		p.Failure(err)
		var zero T
		return zero, err
	}
	p.Success(out)
	return out, nil
}

// reject reports an error that happened before the use case could run.
func reject[T any](p Presenter[T], err error) (T, error) {
	var zero T
	return present(p, zero, err)
}
