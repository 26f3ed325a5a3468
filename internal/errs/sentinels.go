// Package errs contains sentinel errors and the request error type shared across layers.
package errs

import "errors"

// Common sentinels across controller/form layers.
var (
	// ErrUnauthorized indicates an operation that needs a session while none is present.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnknownPage indicates navigation to a page outside the fixed page set.
	ErrUnknownPage = errors.New("unknown page")

	// ErrUnknownTab indicates a tab outside the courses tab set.
	ErrUnknownTab = errors.New("unknown tab")

	// ErrWrongPage indicates a tab switch while the courses page is not active.
	ErrWrongPage = errors.New("tabs are only available on the courses page")
)
