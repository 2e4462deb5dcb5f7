// Package common contains shared constants and small helpers used across
// cmsadmin components.
package common

// Header names used on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	ContentTypeHeaderName   = "Content-Type"
)

// BearerScheme prefixes the access token in the Authorization header.
const BearerScheme = "Bearer "

// ContentTypeJSON is sent with every request that carries a JSON body.
const ContentTypeJSON = "application/json"
