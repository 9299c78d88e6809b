package kpcc

import (
	"errors"
	"fmt"
)

// Kind classifies a failed API call. The kinds exist for diagnostics; every
// kind is surfaced the same way and none is fatal to the Client.
type Kind int

const (
	// KindOther covers anything not classified below, such as a non-JSON body.
	KindOther Kind = iota
	// KindBuildComponents means the request path or parameters could not
	// form a valid URL.
	KindBuildComponents
	// KindDecoding means the body was JSON but did not match the schema.
	KindDecoding
	// KindDataUnavailable means the request failed or returned no usable body.
	KindDataUnavailable
)

var (
	ErrBuildComponents = errors.New("kpcc: could not build request components")
	ErrDecoding        = errors.New("kpcc: response did not match expected schema")
	ErrDataUnavailable = errors.New("kpcc: data unavailable")
	ErrOther           = errors.New("kpcc: unexpected failure")
)

func (k Kind) String() string {
	switch k {
	case KindBuildComponents:
		return "build_components"
	case KindDecoding:
		return "decoding"
	case KindDataUnavailable:
		return "data_unavailable"
	default:
		return "other"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindBuildComponents:
		return ErrBuildComponents
	case KindDecoding:
		return ErrDecoding
	case KindDataUnavailable:
		return ErrDataUnavailable
	default:
		return ErrOther
	}
}

// Error describes a failed API call.
type Error struct {
	Kind       Kind
	Op         string // façade operation, e.g. "articles"
	Path       string // request path relative to the base URL, when known
	StatusCode int    // HTTP status for DataUnavailable responses, else zero
	Err        error
}

func (e *Error) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Op != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Op)
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: %s returned status %d", msg, e.Path, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause so that
// errors.Is works against either.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// KindOf reports the Kind of err. The boolean is false for nil errors.
// Errors that did not originate in this package report KindOther.
func KindOf(err error) (Kind, bool) {
	if err == nil {
		return KindOther, false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return KindOther, true
}

// IsDataUnavailable is shorthand for errors.Is(err, ErrDataUnavailable). It
// is the only kind a caller-side retry can plausibly fix.
func IsDataUnavailable(err error) bool {
	return errors.Is(err, ErrDataUnavailable)
}

func newError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}
