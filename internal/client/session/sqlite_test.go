package session

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := OpenDatabase(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteStore_Plain(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "session.db"))
	s, err := NewSQLiteStore(context.Background(), db, "")
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestSQLiteStore_Sealed(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "session.db"))
	s, err := NewSQLiteStore(context.Background(), db, "correct horse")
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestSQLiteStore_SealedValuesAreNotPlaintext(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t, filepath.Join(t.TempDir(), "session.db"))
	s, err := NewSQLiteStore(ctx, db, "pass")
	require.NoError(t, err)
	require.NoError(t, s.SetSession(ctx, Tokens{Access: "secret-access", Refresh: "secret-refresh"}))

	var raw []byte
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, keyAccessToken).Scan(&raw))
	assert.NotContains(t, string(raw), "secret-access")
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	db := openTestDB(t, path)
	s, err := NewSQLiteStore(ctx, db, "pass")
	require.NoError(t, err)
	require.NoError(t, s.SetSession(ctx, Tokens{Access: "a", Refresh: "r"}))
	require.NoError(t, s.SetUser(ctx, &models.User{ID: 1, Email: "ann@example.com"}))
	require.NoError(t, db.Close())

	db2 := openTestDB(t, path)
	s2, err := NewSQLiteStore(ctx, db2, "pass")
	require.NoError(t, err)

	access, err := s2.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", access)

	u, err := s2.User(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "ann@example.com", u.Email)

	t.Run("wrong passphrase", func(t *testing.T) {
		s3, err := NewSQLiteStore(ctx, db2, "nope")
		require.NoError(t, err)
		_, err = s3.AccessToken(ctx)
		require.ErrorIs(t, err, ErrUndecryptable)
		_, err = s3.IsAuthenticated(ctx)
		require.ErrorIs(t, err, ErrUndecryptable)
	})

	t.Run("missing passphrase", func(t *testing.T) {
		_, err := NewSQLiteStore(ctx, db2, "")
		require.ErrorIs(t, err, ErrPassphraseRequired)
	})
}

func TestSQLiteStore_ClearKeepsSalt(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t, filepath.Join(t.TempDir(), "session.db"))
	s, err := NewSQLiteStore(ctx, db, "pass")
	require.NoError(t, err)

	require.NoError(t, s.SetSession(ctx, Tokens{Access: "a", Refresh: "r"}))
	require.NoError(t, s.Clear(ctx))

	m, err := s.repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 1)
	assert.Contains(t, m, keySalt)
}
