// Package errs holds the client error taxonomy. Errors are marked with one of
// the sentinels below and tested with errors.Is.
package errs

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrNetwork: запрос не выполнен или сервер ответил не 2xx.
	ErrNetwork = errors.New("network error")
	// ErrNotFound: запрошенного покемона не существует.
	ErrNotFound = errors.New("not found")
	// ErrValidation: данные отклонены до отправки на сервер.
	ErrValidation = errors.New("validation error")
	// ErrDuplicateItem: страница содержит имя, которое уже есть в списке.
	ErrDuplicateItem = errors.New("duplicate item")
)

// Network wraps err and marks it as ErrNetwork.
func Network(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrNetwork)
}

// Validation builds an ErrValidation error with a user-facing hint.
func Validation(msg, hint string) error {
	err := errors.Mark(errors.New(msg), ErrValidation)
	if hint != "" {
		err = errors.WithHint(err, hint)
	}
	return err
}

// Hint returns the first user-facing hint attached to err, if any.
func Hint(err error) string {
	hints := errors.GetAllHints(err)
	if len(hints) == 0 {
		return ""
	}
	return hints[0]
}
