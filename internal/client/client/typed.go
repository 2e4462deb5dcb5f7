package client

import (
	"context"
	"net/http"
)

// Do executes a call and decodes the response into T.
func Do[T any](ctx context.Context, c Client, method, endpoint string, body any) (T, error) {
	var out T
	resp, err := c.Execute(ctx, method, endpoint, body)
	if err != nil {
		return out, err
	}
	if err := resp.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

func Get[T any](ctx context.Context, c Client, endpoint string) (T, error) {
	return Do[T](ctx, c, http.MethodGet, endpoint, nil)
}

func Post[T any](ctx context.Context, c Client, endpoint string, body any) (T, error) {
	return Do[T](ctx, c, http.MethodPost, endpoint, body)
}

func Put[T any](ctx context.Context, c Client, endpoint string, body any) (T, error) {
	return Do[T](ctx, c, http.MethodPut, endpoint, body)
}

func Delete[T any](ctx context.Context, c Client, endpoint string) (T, error) {
	return Do[T](ctx, c, http.MethodDelete, endpoint, nil)
}

// Decode decodes an already executed response into T.
func Decode[T any](resp *Response) (T, error) {
	var out T
	err := resp.Decode(&out)
	return out, err
}
