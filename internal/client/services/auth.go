package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/client/session"
	"github.com/dmitrijs2005/cmsadmin/internal/logging"
)

const (
	LoginEndpoint    = "/users/auth"
	RegisterEndpoint = "/users/register"
	RefreshEndpoint  = "/login/refresh-token"
)

var (
	ErrNoRefreshToken     = errors.New("no refresh token available")
	ErrMissingToken       = errors.New("server response carries no token")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrMissingCredentials = errors.New("email and password are required")
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist tokens and user.
//   - Register: create a new account; nothing is persisted.
//   - Refresh: exchange the stored refresh token for a new access token.
//     It is the client.TokenRefresher of the shared HTTP client.
//   - Logout: forget the local session.
//   - CurrentUser, IsAuthenticated, Status: read the local session.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	Register(ctx context.Context, reg models.Registration) error
	Refresh(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	IsAuthenticated(ctx context.Context) (bool, error)
	Status(ctx context.Context) (SessionStatus, error)
}

// SessionStatus describes the local session for the whoami command.
type SessionStatus struct {
	Authenticated bool
	User          *models.User
	Token         session.TokenInfo
	// TokenErr is set when the stored token is not a readable JWT.
	TokenErr error
	SavedAt  time.Time
}

type authService struct {
	client client.Client
	store  session.Store
	logger logging.Logger
}

var _ client.TokenRefresher = (*authService)(nil)

func NewAuthService(c client.Client, store session.Store, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &authService{client: c, store: store, logger: logger.With("service", "auth")}
}

func (a *authService) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return nil, ErrMissingCredentials
	}

	env, err := client.Post[models.Envelope[models.AuthResult]](ctx, a.client, LoginEndpoint, creds)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	res := env.ResponseObject
	if res.Token == "" {
		return nil, fmt.Errorf("login error: %w", ErrMissingToken)
	}

	// A new login replaces the previous session as a whole; SetSession on
	// its own would keep an old refresh token the server did not resend.
	if err := a.store.Clear(ctx); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	if err := a.store.SetSession(ctx, session.Tokens{Access: res.Token, Refresh: res.RefreshToken}); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	user := res.User
	if err := a.store.SetUser(ctx, &user); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	a.logger.Info(ctx, "logged in", "user_id", user.ID, "role", user.Role)
	return &user, nil
}

// Register sends the registration form, with the optional photo, as
// multipart form data.
func (a *authService) Register(ctx context.Context, reg models.Registration) error {
	if strings.TrimSpace(reg.Email) == "" || reg.Password == "" {
		return ErrMissingCredentials
	}
	if reg.ConfirmPassword != "" && reg.ConfirmPassword != reg.Password {
		return ErrPasswordMismatch
	}

	form := &client.Multipart{Fields: map[string]string{
		"name":             reg.Name,
		"username":         reg.Username,
		"email":            strings.TrimSpace(reg.Email),
		"password":         reg.Password,
		"confirm_password": reg.ConfirmPassword,
		"gender":           string(reg.Gender),
	}}
	if reg.Role != "" {
		form.Fields["role"] = string(reg.Role)
	}
	if reg.Photo != "" {
		part, err := client.FileFromPath("photo", reg.Photo)
		if err != nil {
			return err
		}
		form.Files = append(form.Files, part)
	}

	if _, err := a.client.Execute(ctx, http.MethodPost, RegisterEndpoint, form); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	a.logger.Info(ctx, "registered", "email", form.Fields["email"])
	return nil
}

// Refresh is normally invoked by the HTTP client only, once per expired
// access token no matter how many calls noticed it.
func (a *authService) Refresh(ctx context.Context) (string, error) {
	refreshToken, err := a.store.RefreshToken(ctx)
	if err != nil {
		return "", fmt.Errorf("read refresh token: %w", err)
	}
	if refreshToken == "" {
		return "", ErrNoRefreshToken
	}

	env, err := client.Post[models.Envelope[models.RefreshResult]](ctx, a.client, RefreshEndpoint,
		models.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", fmt.Errorf("token refresh error: %w", err)
	}

	res := env.ResponseObject
	if res.Token == "" {
		return "", fmt.Errorf("token refresh error: %w", ErrMissingToken)
	}

	// A new login replaces the previous session as a whole; SetSession on
	// its own would keep an old refresh token the server did not resend.
	if err := a.store.Clear(ctx); err != nil {
		return "", fmt.Errorf("session saving error: %w", err)
	}
	if err := a.store.SetSession(ctx, session.Tokens{Access: res.Token, Refresh: res.RefreshToken}); err != nil {
		return "", fmt.Errorf("session saving error: %w", err)
	}
	return res.Token, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	a.logger.Info(ctx, "logged out")
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return a.store.User(ctx)
}

func (a *authService) IsAuthenticated(ctx context.Context) (bool, error) {
	return a.store.IsAuthenticated(ctx)
}

func (a *authService) Status(ctx context.Context) (SessionStatus, error) {
	var st SessionStatus

	token, err := a.store.AccessToken(ctx)
	if err != nil {
		return st, err
	}
	if token == "" {
		return st, nil
	}
	st.Authenticated = true

	if st.User, err = a.store.User(ctx); err != nil {
		return st, err
	}
	if st.SavedAt, err = a.store.SavedAt(ctx); err != nil {
		return st, err
	}
	st.Token, st.TokenErr = session.InspectToken(token)
	return st, nil
}
