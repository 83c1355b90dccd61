package feed

import (
	"errors"
	"fmt"
)

// Kind classifies why a feed or body could not be loaded.
type Kind int

const (
	// KindNetwork means the request never produced a response.
	KindNetwork Kind = iota + 1
	// KindHTTP means the response status was not 2xx.
	KindHTTP
	// KindParse means the payload was malformed.
	KindParse
	// KindInvalid means the resource reference itself was rejected.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network failure"
	case KindHTTP:
		return "http failure"
	case KindParse:
		return "parse failure"
	case KindInvalid:
		return "invalid reference"
	default:
		return "unknown failure"
	}
}

// Sentinels for errors.Is; they match any *Error of the same Kind.
var (
	ErrNetwork = &Error{Kind: KindNetwork}
	ErrHTTP    = &Error{Kind: KindHTTP}
	ErrParse   = &Error{Kind: KindParse}
	ErrInvalid = &Error{Kind: KindInvalid}
)

// Error describes a failed load of one resource.
type Error struct {
	Kind   Kind
	Path   string
	Status int
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Path, e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Path == "" && t.Status == 0 && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the Kind of err, or 0 when err is not a feed error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
