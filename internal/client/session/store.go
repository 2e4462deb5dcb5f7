package session

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
)

var (
	ErrUndecryptable      = errors.New("stored session cannot be decrypted")
	ErrPassphraseRequired = errors.New("session database is encrypted, passphrase required")
)

// Tokens is what a login or refresh hands to SetSession. An empty Refresh
// keeps the refresh token already stored.
type Tokens struct {
	Access  string
	Refresh string
}

type Store interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetSession(ctx context.Context, t Tokens) error
	// Clear removes tokens and the cached user.
	Clear(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)

	// User returns nil when nobody is signed in.
	User(ctx context.Context) (*models.User, error)
	SetUser(ctx context.Context, u *models.User) error

	// SavedAt is when the access token was last written; zero if never.
	SavedAt(ctx context.Context) (time.Time, error)
}
