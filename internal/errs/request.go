package errs

import (
	"errors"
	"fmt"
)

// FallbackMessage is shown when the service gave no usable error message.
const FallbackMessage = "Request failed"

// Kind classifies a RequestError.
type Kind int

const (
	// KindStatus is a response with a non-2xx status.
	KindStatus Kind = iota
	// KindNetwork is a call that produced no response (transport failure, cancellation).
	KindNetwork
	// KindDecode is a 2xx response whose body is not valid JSON.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindNetwork:
		return "network"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// RequestError is the single failure shape of a call to the remote service.
type RequestError struct {
	Kind    Kind
	Status  int    // HTTP status, 0 when no response arrived
	Message string // human readable, safe to show to the user
	Err     error  // underlying cause, if any
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%s %d)", e.Message, e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (%s: %v)", e.Message, e.Kind, e.Err)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error { return e.Err }

// MessageOf returns the user-facing message carried by err.
func MessageOf(err error) string {
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return FallbackMessage
}

// IsStatus reports whether err is a RequestError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Kind == KindStatus && re.Status == status
}
