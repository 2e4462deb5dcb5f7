package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrRequestFailed      = errors.New("request failed")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrUnexpectedResponse = errors.New("unexpected response")

	// Refresh failures; always surfaced wrapped in a KindAuth APIError.
	ErrNoRefresher = errors.New("no token refresher configured")
	ErrEmptyToken  = errors.New("refresh returned an empty access token")
)

// Kind classifies an APIError.
type Kind int

const (
	// KindNetwork: the server could not be reached or no response arrived.
	KindNetwork Kind = iota + 1
	// KindAuth: authentication failed terminally; the session was cleared.
	KindAuth
	// KindApplication: the server answered with a non-2xx status.
	KindApplication
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindApplication:
		return "application"
	default:
		return "unknown"
	}
}

// APIError is returned for every failed call. It is never mutated after
// creation.
type APIError struct {
	Kind       Kind
	Message    string
	StatusCode int
	// Payload is the decoded error body: a JSON value when the server sent
	// JSON, the raw text otherwise, nil for network errors.
	Payload any
	Err     error
}

func (e *APIError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the cause. The cause of a KindAuth error is wrapped in
// authCause so that it never also matches ErrUnavailable or
// ErrRequestFailed, even when the refresh itself failed that way.
func (e *APIError) Unwrap() error {
	if e.Err == nil {
		return nil
	}
	if e.Kind == KindAuth {
		return &authCause{err: e.Err}
	}
	return e.Err
}

type authCause struct {
	err error
}

func (c *authCause) Error() string {
	return c.err.Error()
}

func (c *authCause) Is(target error) bool {
	switch target {
	case ErrUnavailable, ErrUnauthorized, ErrRequestFailed:
		return false
	}
	return errors.Is(c.err, target)
}

func (c *authCause) As(target any) bool {
	return errors.As(c.err, target)
}

// Is matches the kind sentinels so callers can write
// errors.Is(err, client.ErrUnauthorized).
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == KindNetwork
	case ErrUnauthorized:
		return e.Kind == KindAuth
	case ErrRequestFailed:
		return e.Kind == KindApplication
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// UserMessage turns err into a short text suitable for showing to a user.
// fallback is used for errors that carry no server message.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		if err != nil && fallback == "" {
			return err.Error()
		}
		return fallback
	}
	switch apiErr.Kind {
	case KindNetwork:
		return "No response from server"
	case KindAuth:
		return "Session expired, please log in again"
	default:
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("%s (%d)", fallback, apiErr.StatusCode)
	}
}

func newNetworkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Message: "no response from server", Err: err}
}

func newAuthError(resp *Response, message string, err error) *APIError {
	return &APIError{
		Kind:       KindAuth,
		Message:    message,
		StatusCode: resp.StatusCode,
		Payload:    resp.payload(),
		Err:        err,
	}
}

func newApplicationError(resp *Response) *APIError {
	payload := resp.payload()
	return &APIError{
		Kind:       KindApplication,
		Message:    serverMessage(payload, resp.StatusCode),
		StatusCode: resp.StatusCode,
		Payload:    payload,
	}
}

// serverMessage picks the "error" or "message" field of a JSON error body,
// falling back to a generic text.
func serverMessage(payload any, status int) string {
	if m, ok := payload.(map[string]any); ok {
		for _, key := range []string{"error", "message"} {
			if s, ok := m[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}
