// Package models defines the request and response shapes exchanged with the
// content-management API.
package models

// Envelope is the wrapper the API puts around every successful payload.
type Envelope[T any] struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ResponseObject T      `json:"responseObject"`
	StatusCode     int    `json:"statusCode"`
}
