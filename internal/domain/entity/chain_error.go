package entity

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced by the resolver, the API client and the validator.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindNetworkNotFound: the requested network name is not in the configuration.
	KindNetworkNotFound
	// KindTransportFailure: connection refused, DNS failure, timeout.
	KindTransportFailure
	// KindRemoteRejection: the remote answered with a non-success status or an unreadable body.
	KindRemoteRejection
	// KindInsufficientStake: balance below the validator minimum.
	KindInsufficientStake
	// KindInvalidInput: a payload or argument was rejected before any request was sent.
	KindInvalidInput
	// KindValidationFailed: a validation run completed but did not pass.
	KindValidationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetworkNotFound:
		return "NetworkNotFound"
	case KindTransportFailure:
		return "TransportFailure"
	case KindRemoteRejection:
		return "RemoteRejection"
	case KindInsufficientStake:
		return "InsufficientStake"
	case KindInvalidInput:
		return "InvalidInput"
	case KindValidationFailed:
		return "ValidationFailed"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is; a *ChainError matches the sentinel of its kind.
var (
	ErrNetworkNotFound   = &ChainError{Kind: KindNetworkNotFound}
	ErrTransportFailure  = &ChainError{Kind: KindTransportFailure}
	ErrRemoteRejection   = &ChainError{Kind: KindRemoteRejection}
	ErrInsufficientStake = &ChainError{Kind: KindInsufficientStake}
	ErrInvalidInput      = &ChainError{Kind: KindInvalidInput}
	ErrValidationFailed  = &ChainError{Kind: KindValidationFailed}
)

// ChainError is the typed failure produced by the core components.
type ChainError struct {
	Kind ErrorKind
	// Op is the user-facing prefix, e.g. "deployment failed".
	Op string
	// StatusCode is the HTTP status for remote rejections, zero otherwise.
	StatusCode int
	// Message is the remote-provided or locally generated detail.
	Message string
	Err     error
}

func (e *ChainError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	switch {
	case e.Op != "" && msg != "":
		return fmt.Sprintf("%s: %s", e.Op, msg)
	case e.Op != "":
		return e.Op
	case msg != "":
		return msg
	default:
		return e.Kind.String()
	}
}

func (e *ChainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel (or any ChainError) of the same kind.
func (e *ChainError) Is(target error) bool {
	t, ok := target.(*ChainError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first ChainError in err's chain.
func KindOf(err error) ErrorKind {
	var ce *ChainError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// NewInvalidInput builds a KindInvalidInput error.
func NewInvalidInput(op, format string, args ...any) *ChainError {
	return &ChainError{Kind: KindInvalidInput, Op: op, Message: fmt.Sprintf(format, args...)}
}
