package client

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/cmsadmin/internal/logging"
)

type refreshState int

const (
	stateIdle refreshState = iota
	stateRefreshing
)

func (s refreshState) String() string {
	if s == stateRefreshing {
		return "refreshing"
	}
	return "idle"
}

type refreshResult struct {
	token string
	err   error
}

type refreshCallKey struct{}

// withRefreshCall marks ctx as belonging to the token refresh itself.
// Execute sends such calls without a bearer token and never runs the
// terminal auth handling for them; the refresher owns that.
func withRefreshCall(ctx context.Context) context.Context {
	return context.WithValue(ctx, refreshCallKey{}, true)
}

func isRefreshCall(ctx context.Context) bool {
	v, _ := ctx.Value(refreshCallKey{}).(bool)
	return v
}

// refresher serialises token refreshes. The first caller that needs a new
// token starts the refresh; callers arriving while it runs queue up and are
// released in arrival order with the same outcome.
type refresher struct {
	mu     sync.Mutex
	state  refreshState
	queue  []chan refreshResult
	source TokenRefresher

	onFailure func(ctx context.Context, err error)
	logger    logging.Logger
}

func newRefresher(logger logging.Logger, onFailure func(ctx context.Context, err error)) *refresher {
	return &refresher{logger: logger, onFailure: onFailure}
}

func (r *refresher) setSource(s TokenRefresher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.source = s
}

// await returns a fresh access token, starting a refresh if none is running.
// If ctx ends first the caller leaves with ctx.Err(); the refresh keeps going
// for everyone else.
func (r *refresher) await(ctx context.Context) (string, error) {
	ch := make(chan refreshResult, 1)

	r.mu.Lock()
	r.queue = append(r.queue, ch)
	leader := r.state == stateIdle
	if leader {
		r.state = stateRefreshing
	}
	source := r.source
	waiting := len(r.queue)
	r.mu.Unlock()

	if leader {
		go r.run(context.WithoutCancel(ctx), source)
	} else {
		r.logger.Debug(ctx, "waiting for token refresh", "position", waiting)
	}

	select {
	case res := <-ch:
		return res.token, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (r *refresher) run(ctx context.Context, source TokenRefresher) {
	ctx = withRefreshCall(ctx)
	r.logger.Info(ctx, "refreshing access token")

	var (
		token string
		err   error
	)
	switch {
	case source == nil:
		err = ErrNoRefresher
	default:
		token, err = source.Refresh(ctx)
		if err == nil && token == "" {
			err = ErrEmptyToken
		}
	}

	if err != nil {
		r.onFailure(ctx, err)
	}

	r.mu.Lock()
	queue := r.queue
	r.queue = nil
	r.state = stateIdle
	r.mu.Unlock()

	if err != nil {
		r.logger.Warn(ctx, "token refresh failed", "error", err, "waiters", len(queue))
	} else {
		r.logger.Info(ctx, "access token refreshed", "waiters", len(queue))
	}

	for _, ch := range queue {
		ch <- refreshResult{token: token, err: err}
	}
}

// snapshot is used by tests to observe the state machine.
func (r *refresher) snapshot() (refreshState, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, len(r.queue)
}
