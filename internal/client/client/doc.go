// Package client is the authenticated HTTP client used by every cmsadmin
// service.
//
// # Overview
//
// HTTPClient.Execute performs one logical API call: it attaches the session's
// bearer token, sends an optional JSON (or multipart) body, and returns the
// parsed Response. When the server rejects the token with one of the
// configured refresh statuses (401 and 403 by default) the client runs a
// single coordinated refresh through the injected TokenRefresher and retries
// the call once with the new token. Calls that fail while a refresh is in
// flight wait for that refresh instead of starting their own.
//
// Authentication endpoints (login, refresh) never trigger a refresh. Their
// auth failures, a failure of the retried call, and a failed refresh are
// terminal: the session is cleared and the Navigator is told to send the
// user back to the login screen. A failed refresh is reported to the
// Navigator once, no matter how many calls were waiting on it.
//
// # Error Handling
//
// Every failure is an *APIError with a Kind. Callers match the kind with
// errors.Is against ErrUnavailable (network), ErrUnauthorized (auth) or
// ErrRequestFailed (any other non-2xx) and use errors.As for the status code
// and payload.
//
// # Typed results
//
// Get, Post, Put, Delete and Do decode the response into a caller-chosen
// type. Response.Text and Response.Raw remain available for payloads that
// are not JSON.
package client
