package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/common"
	"github.com/dmitrijs2005/cmsadmin/internal/logging"
	"github.com/google/uuid"
)

// Client executes API calls. Services depend on this interface rather than
// on HTTPClient so they can be tested with fakes.
type Client interface {
	Execute(ctx context.Context, method, endpoint string, body any) (*Response, error)
}

// Session is the part of the session store the client needs.
type Session interface {
	AccessToken(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// TokenRefresher obtains a new access token, persisting it (and any rotated
// refresh token) before returning. It is called with a context marked so
// that its own API call is exempt from refresh handling.
type TokenRefresher interface {
	Refresh(ctx context.Context) (string, error)
}

// Navigator is told when the user has to go back to the login screen.
type Navigator interface {
	// RedirectToLogin follows a terminal auth failure of a single call.
	RedirectToLogin(ctx context.Context)
	// SessionExpired follows a failed token refresh. It is called once per
	// failed refresh regardless of how many calls were waiting on it.
	SessionExpired(ctx context.Context)
}

type nopNavigator struct{}

func (nopNavigator) RedirectToLogin(context.Context) {}
func (nopNavigator) SessionExpired(context.Context)  {}

var (
	DefaultRefreshStatuses = []int{http.StatusUnauthorized, http.StatusForbidden}
	DefaultAuthPaths       = []string{"/auth/login", "/auth/refresh", "/users/auth", "/login/refresh-token"}
)

const DefaultTimeout = 15 * time.Second

type Options struct {
	BaseURL string
	// Timeout bounds a single HTTP attempt. Zero means DefaultTimeout.
	Timeout time.Duration
	// RefreshStatuses are the statuses treated as an expired token.
	// Empty means DefaultRefreshStatuses.
	RefreshStatuses []int
	// AuthPaths are substrings identifying authentication endpoints.
	// Empty means DefaultAuthPaths.
	AuthPaths []string

	HTTPClient *http.Client
	Logger     logging.Logger
	Navigator  Navigator
}

// HTTPClient is safe for concurrent use. Refresh coordination is scoped to
// one instance, so a program should build one and share it.
type HTTPClient struct {
	baseURL         string
	http            *http.Client
	session         Session
	refreshStatuses map[int]struct{}
	authPaths       []string
	logger          logging.Logger

	navMu     sync.RWMutex
	navigator Navigator

	refresh *refresher
}

var _ Client = (*HTTPClient)(nil)

func New(opts Options, session Session) (*HTTPClient, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: session is required", ErrInvalidRequest)
	}

	base, err := url.Parse(opts.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: invalid base url %q", ErrInvalidRequest, opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	statuses := opts.RefreshStatuses
	if len(statuses) == 0 {
		statuses = DefaultRefreshStatuses
	}
	set := make(map[int]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}

	authPaths := opts.AuthPaths
	if len(authPaths) == 0 {
		authPaths = DefaultAuthPaths
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	nav := opts.Navigator
	if nav == nil {
		nav = nopNavigator{}
	}

	c := &HTTPClient{
		baseURL:         strings.TrimRight(opts.BaseURL, "/"),
		http:            httpClient,
		session:         session,
		refreshStatuses: set,
		authPaths:       append([]string(nil), authPaths...),
		logger:          logger,
		navigator:       nav,
	}
	c.refresh = newRefresher(logger, c.sessionExpired)
	return c, nil
}

// UseRefresher installs the token source. It exists because the usual
// refresher (the auth service) is itself built on top of the client.
func (c *HTTPClient) UseRefresher(r TokenRefresher) {
	c.refresh.setSource(r)
}

// UseNavigator replaces the navigator given in Options.
func (c *HTTPClient) UseNavigator(n Navigator) {
	if n == nil {
		n = nopNavigator{}
	}
	c.navMu.Lock()
	defer c.navMu.Unlock()
	c.navigator = n
}

func (c *HTTPClient) nav() Navigator {
	c.navMu.RLock()
	defer c.navMu.RUnlock()
	return c.navigator
}

// IsAuthEndpoint reports whether endpoint is one of the login/refresh
// endpoints that are never retried.
func (c *HTTPClient) IsAuthEndpoint(endpoint string) bool {
	for _, p := range c.authPaths {
		if strings.Contains(endpoint, p) {
			return true
		}
	}
	return false
}

func (c *HTTPClient) isRefreshStatus(status int) bool {
	_, ok := c.refreshStatuses[status]
	return ok
}

// call is one logical API call. Its body is encoded once and replayed on
// the retry.
type call struct {
	method      string
	endpoint    string
	payload     []byte
	contentType string
	requestID   string
	authCall    bool
}

func (c *HTTPClient) newCall(method, endpoint string, body any) (*call, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: unsupported method %q", ErrInvalidRequest, method)
	}

	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("%w: empty endpoint", ErrInvalidRequest)
	}
	if u, err := url.Parse(endpoint); err != nil || u.IsAbs() || u.Host != "" {
		return nil, fmt.Errorf("%w: endpoint %q must be a relative path", ErrInvalidRequest, endpoint)
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	cl := &call{
		method:    method,
		endpoint:  endpoint,
		requestID: uuid.NewString(),
		authCall:  c.IsAuthEndpoint(endpoint),
	}

	switch b := body.(type) {
	case nil:
	case *Multipart:
		if b == nil {
			break
		}
		payload, ct, err := b.encode()
		if err != nil {
			return nil, fmt.Errorf("%w: encode multipart body: %v", ErrInvalidRequest, err)
		}
		cl.payload, cl.contentType = payload, ct
	case Multipart:
		payload, ct, err := b.encode()
		if err != nil {
			return nil, fmt.Errorf("%w: encode multipart body: %v", ErrInvalidRequest, err)
		}
		cl.payload, cl.contentType = payload, ct
	default:
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode body: %v", ErrInvalidRequest, err)
		}
		cl.payload, cl.contentType = payload, common.ContentTypeJSON
	}

	return cl, nil
}

// Execute performs one logical call. See the package documentation for the
// refresh and retry rules.
func (c *HTTPClient) Execute(ctx context.Context, method, endpoint string, body any) (*Response, error) {
	cl, err := c.newCall(method, endpoint, body)
	if err != nil {
		return nil, err
	}

	log := c.logger.With("request_id", cl.requestID, "method", cl.method, "endpoint", cl.endpoint)

	token := c.accessToken(ctx, log)
	resp, err := c.send(ctx, log, cl, token)
	if err != nil {
		return nil, err
	}

	if !c.isRefreshStatus(resp.StatusCode) {
		return finish(resp)
	}

	if isRefreshCall(ctx) {
		// The refresher clears the session and notifies the navigator.
		return nil, newAuthError(resp, "token refresh rejected", nil)
	}

	if cl.authCall {
		return nil, c.terminate(ctx, log, resp, "authentication failed")
	}

	// Another call may have refreshed the token while this one was in
	// flight; using it counts as the retry.
	retryToken := c.accessToken(ctx, log)
	if token != "" && retryToken == "" {
		// The session was cleared after this call was sent. Whatever
		// cleared it has already told the navigator.
		log.Debug(ctx, "session cleared while the call was in flight", "status", resp.StatusCode)
		return nil, newAuthError(resp, "session expired", nil)
	}
	if retryToken == "" || retryToken == token {
		log.Debug(ctx, "access token rejected, awaiting refresh", "status", resp.StatusCode)
		retryToken, err = c.refresh.await(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("waiting for token refresh: %w", err)
			}
			return nil, newAuthError(resp, "session expired", err)
		}
	}

	resp, err = c.send(ctx, log, cl, retryToken)
	if err != nil {
		return nil, err
	}
	if c.isRefreshStatus(resp.StatusCode) {
		return nil, c.terminate(ctx, log, resp, "authentication failed after token refresh")
	}
	return finish(resp)
}

func finish(resp *Response) (*Response, error) {
	if !resp.OK() {
		return nil, newApplicationError(resp)
	}
	return resp, nil
}

// terminate handles an auth failure that will not be retried.
func (c *HTTPClient) terminate(ctx context.Context, log logging.Logger, resp *Response, message string) error {
	log.Warn(ctx, message, "status", resp.StatusCode)
	if err := c.session.Clear(ctx); err != nil {
		log.Error(ctx, "failed to clear session", "error", err)
	}
	c.nav().RedirectToLogin(ctx)
	return newAuthError(resp, message, nil)
}

func (c *HTTPClient) sessionExpired(ctx context.Context, err error) {
	if cerr := c.session.Clear(ctx); cerr != nil {
		c.logger.Error(ctx, "failed to clear session", "error", cerr)
	}
	c.nav().SessionExpired(ctx)
}

func (c *HTTPClient) accessToken(ctx context.Context, log logging.Logger) string {
	if isRefreshCall(ctx) {
		return ""
	}
	token, err := c.session.AccessToken(ctx)
	if err != nil {
		log.Warn(ctx, "failed to read access token, sending anonymously", "error", err)
		return ""
	}
	return token
}

func (c *HTTPClient) send(ctx context.Context, log logging.Logger, cl *call, token string) (*Response, error) {
	var body io.Reader
	if cl.payload != nil {
		body = bytes.NewReader(cl.payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	req.Header.Set("Accept", common.ContentTypeJSON)
	req.Header.Set(common.RequestIDHeaderName, cl.requestID)
	if cl.contentType != "" {
		req.Header.Set(common.ContentTypeHeaderName, cl.contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "api call failed", "error", err)
		return nil, newNetworkError(err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		log.Warn(ctx, "reading response body failed", "error", err)
		return nil, &APIError{
			Kind:       KindNetwork,
			Message:    "incomplete response from server",
			StatusCode: res.StatusCode,
			Err:        err,
		}
	}

	log.Debug(ctx, "api call finished", "status", res.StatusCode, "elapsed", time.Since(start))
	return newResponse(res.StatusCode, res.Header, raw), nil
}
