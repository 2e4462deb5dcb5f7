package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/cmsadmin/internal/common"
	"github.com/dmitrijs2005/cmsadmin/internal/cryptox"
	"github.com/dmitrijs2005/cmsadmin/internal/dbx"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUser         = "user"
	keySalt         = "salt"
)

// SQLiteStore persists the session in the metadata table.
type SQLiteStore struct {
	db   *sql.DB
	repo metadata.Repository
	// key is nil when values are stored in the clear.
	key []byte
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore wraps an already migrated database. With a non-empty
// passphrase values are sealed; the salt is created on first use. Opening a
// sealed database without a passphrase fails with ErrPassphraseRequired.
func NewSQLiteStore(ctx context.Context, db *sql.DB, passphrase string) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db, repo: metadata.NewSQLiteRepository(db)}

	salt, err := s.repo.Get(ctx, keySalt)
	if err != nil {
		return nil, err
	}

	if passphrase == "" {
		if salt != nil {
			return nil, ErrPassphraseRequired
		}
		return s, nil
	}

	if salt == nil {
		salt = common.GenerateRandByteArray(cryptox.SaltSize)
		if err := s.repo.Set(ctx, keySalt, salt); err != nil {
			return nil, err
		}
	}

	pass := []byte(passphrase)
	s.key = cryptox.DeriveKey(pass, salt)
	common.WipeByteArray(pass)
	return s, nil
}

func (s *SQLiteStore) seal(v []byte) ([]byte, error) {
	if s.key == nil {
		return v, nil
	}
	return cryptox.Seal(v, s.key)
}

func (s *SQLiteStore) open(v []byte) ([]byte, error) {
	if s.key == nil || v == nil {
		return v, nil
	}
	plain, err := cryptox.Open(v, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecryptable, err)
	}
	return plain, nil
}

func (s *SQLiteStore) get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.open(v)
}

func (s *SQLiteStore) AccessToken(ctx context.Context) (string, error) {
	v, err := s.get(ctx, keyAccessToken)
	return string(v), err
}

func (s *SQLiteStore) RefreshToken(ctx context.Context) (string, error) {
	v, err := s.get(ctx, keyRefreshToken)
	return string(v), err
}

func (s *SQLiteStore) SetSession(ctx context.Context, t Tokens) error {
	access, err := s.seal([]byte(t.Access))
	if err != nil {
		return err
	}
	var refresh []byte
	if t.Refresh != "" {
		if refresh, err = s.seal([]byte(t.Refresh)); err != nil {
			return err
		}
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyAccessToken, access); err != nil {
			return err
		}
		if refresh != nil {
			return repo.Set(ctx, keyRefreshToken, refresh)
		}
		return nil
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, k := range []string{keyAccessToken, keyRefreshToken, keyUser} {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) IsAuthenticated(ctx context.Context) (bool, error) {
	token, err := s.AccessToken(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

func (s *SQLiteStore) User(ctx context.Context) (*models.User, error) {
	v, err := s.get(ctx, keyUser)
	if err != nil || v == nil {
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, fmt.Errorf("decode stored user: %w", err)
	}
	return &u, nil
}

func (s *SQLiteStore) SetUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return s.repo.Delete(ctx, keyUser)
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	sealed, err := s.seal(raw)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, keyUser, sealed)
}

func (s *SQLiteStore) SavedAt(ctx context.Context) (time.Time, error) {
	return s.repo.UpdatedAt(ctx, keyAccessToken)
}
