package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3"
)

// Kind classifies a failure by where it originated.
type Kind string

const (
	// KindConfig is a local configuration problem, such as a missing credential.
	KindConfig Kind = "config"
	// KindTransport is a network failure: unreachable host, timeout, cancellation.
	KindTransport Kind = "transport"
	// KindService is an error status returned by the remote API.
	KindService Kind = "service"
	// KindResponse is a response that arrived but lacks the expected fields.
	KindResponse Kind = "response"
)

var (
	// ErrMissingCredential is returned before any request is sent when the
	// provider has no API key.
	ErrMissingCredential = errors.New("API key not set (OPENAI_API_KEY)")

	// ErrEmptyResponse is returned when the service answers without any
	// answer text to print.
	ErrEmptyResponse = errors.New("response contains no answer")
)

// Error is the error type returned by every provider call.
type Error struct {
	Kind     Kind
	Provider string

	// StatusCode is the HTTP status for service errors, 0 otherwise.
	StatusCode int

	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s error (status %d): %s", e.Provider, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Provider, e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of the first *Error in err's chain, or "" if
// there is none.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

func newError(kind Kind, provider string, err error) *Error {
	return &Error{Kind: kind, Provider: provider, Message: err.Error(), Err: err}
}

// classify maps an error from the SDK onto the taxonomy.
func classify(provider string, err error) *Error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.StatusCode)
		}
		return &Error{
			Kind:       KindService,
			Provider:   provider,
			StatusCode: apiErr.StatusCode,
			Message:    msg,
			Err:        err,
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return newError(KindResponse, provider, err)
	}

	// Everything else failed before a response was read: dial errors,
	// timeouts and context cancellation.
	return newError(KindTransport, provider, err)
}
