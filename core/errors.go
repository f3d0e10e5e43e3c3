package core

import "errors"

// ErrNotFound is returned when a record is absent or excluded by its state.
// Approving an article which is not pending any more reports ErrNotFound,
// because the lookup is restricted to pending articles.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized denies an action. It is shown to the user as a message,
// it never crashes a request.
var ErrUnauthorized = errors.New("you are not allowed to do that")

type denied string

func (d denied) Error() string {
	return string(d)
}

func (d denied) Unwrap() error {
	return ErrUnauthorized
}

// Denied returns an error which unwraps to ErrUnauthorized and carries a
// human-readable reason.
func Denied(reason string) error {
	return denied(reason)
}
