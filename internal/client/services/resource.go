package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/logging"
)

// Resource is the CRUD surface of one REST collection. L is the payload of
// the list call, T the payload of single-item calls.
type Resource[L, T any] struct {
	client   client.Client
	endpoint string
	logger   logging.Logger
}

func NewResource[L, T any](c client.Client, endpoint string, logger logging.Logger) *Resource[L, T] {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Resource[L, T]{
		client:   c,
		endpoint: endpoint,
		logger:   logger.With("resource", endpoint),
	}
}

func (r *Resource[L, T]) Endpoint() string {
	return r.endpoint
}

func (r *Resource[L, T]) item(id string) string {
	return r.endpoint + "/" + url.PathEscape(id)
}

func (r *Resource[L, T]) List(ctx context.Context, params *models.QueryParams) (L, error) {
	endpoint := r.endpoint
	if q := params.Values().Encode(); q != "" {
		endpoint += "?" + q
	}

	env, err := client.Get[models.Envelope[L]](ctx, r.client, endpoint)
	if err != nil {
		var zero L
		return zero, r.fail(ctx, "fetching", err)
	}
	return env.ResponseObject, nil
}

func (r *Resource[L, T]) Get(ctx context.Context, id string) (T, error) {
	env, err := client.Get[models.Envelope[T]](ctx, r.client, r.item(id))
	if err != nil {
		var zero T
		return zero, r.fail(ctx, "fetching", err)
	}
	return env.ResponseObject, nil
}

// Create posts body, which may be a JSON-encodable value or a
// *client.Multipart.
func (r *Resource[L, T]) Create(ctx context.Context, body any) (T, error) {
	env, err := client.Post[models.Envelope[T]](ctx, r.client, r.endpoint, body)
	if err != nil {
		var zero T
		return zero, r.fail(ctx, "creating", err)
	}
	r.logger.Info(ctx, "created successfully")
	return env.ResponseObject, nil
}

func (r *Resource[L, T]) Update(ctx context.Context, id string, body any) (T, error) {
	return r.update(ctx, r.item(id), body)
}

func (r *Resource[L, T]) update(ctx context.Context, endpoint string, body any) (T, error) {
	env, err := client.Put[models.Envelope[T]](ctx, r.client, endpoint, body)
	if err != nil {
		var zero T
		return zero, r.fail(ctx, "updating", err)
	}
	r.logger.Info(ctx, "updated successfully")
	return env.ResponseObject, nil
}

func (r *Resource[L, T]) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Execute(ctx, http.MethodDelete, r.item(id), nil); err != nil {
		return r.fail(ctx, "deleting", err)
	}
	r.logger.Info(ctx, "deleted successfully", "id", id)
	return nil
}

// fail logs err with the message a user would see and wraps it with the
// action for the caller.
func (r *Resource[L, T]) fail(ctx context.Context, action string, err error) error {
	msg := client.UserMessage(err, fmt.Sprintf("Error %s data", action))
	r.logger.Error(ctx, "error "+action, "message", msg, "status", client.StatusCode(err))
	return fmt.Errorf("%s %s: %w", action, r.endpoint, err)
}
