package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Kind classifies a provider failure.
type Kind int

const (
	// KindUnavailable covers network failures and 5xx replies.
	KindUnavailable Kind = iota
	KindRateLimited
	// KindAuth means the credentials were rejected.
	KindAuth
	// KindBadOutput means the reply did not hold the requested JSON.
	KindBadOutput
	// KindTruncated means the reply stopped at MaxTokens.
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindAuth:
		return "credentials rejected"
	case KindBadOutput:
		return "invalid response"
	case KindTruncated:
		return "response truncated"
	default:
		return "unavailable"
	}
}

// Error is the failure type every Provider returns for problems on the
// provider's side.
type Error struct {
	Kind     Kind
	Provider string

	// Status is the HTTP status, when there was one.
	Status int

	// RetryAfter is the server's requested wait for KindRateLimited.
	RetryAfter time.Duration

	// Content is the offending reply for KindBadOutput and KindTruncated.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Provider != "" {
		msg = e.Provider + " " + msg
	}
	if e.Kind == KindRateLimited && e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Retryable reports whether sending the same request again could succeed.
// Unclassified errors count as transient.
func Retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	kind, ok := KindOf(err)
	if !ok {
		return true
	}
	return kind != KindAuth && kind != KindTruncated
}

// statusError classifies a failed HTTP exchange by its status code.
func statusError(provider string, status int, retryAfter time.Duration, err error) *Error {
	e := &Error{Provider: provider, Status: status, Err: err}
	switch status {
	case http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		e.RetryAfter = retryAfter
	case http.StatusUnauthorized, http.StatusForbidden:
		e.Kind = KindAuth
	default:
		e.Kind = KindUnavailable
	}
	return e
}

func badOutput(provider string, content json.RawMessage, err error) *Error {
	return &Error{Kind: KindBadOutput, Provider: provider, Content: content, Err: err}
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
