package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != KeySize {
		t.Errorf("expected %d byte key, got %d", KeySize, len(key1))
	}
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("pass"), []byte("salt"))

	sealed, err := Seal([]byte("refresh-token"), key)
	require.NoError(t, err)
	require.NotContains(t, string(sealed), "refresh-token")

	plain, err := Open(sealed, key)
	require.NoError(t, err)
	require.Equal(t, "refresh-token", string(plain))
}

func TestSeal_FreshNonceEachTime(t *testing.T) {
	key := DeriveKey([]byte("pass"), []byte("salt"))

	a, err := Seal([]byte("same"), key)
	require.NoError(t, err)
	b, err := Seal([]byte("same"), key)
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	sealed, err := Seal([]byte("token"), DeriveKey([]byte("right"), []byte("salt")))
	require.NoError(t, err)

	_, err = Open(sealed, DeriveKey([]byte("wrong"), []byte("salt")))
	require.Error(t, err)
}

func TestOpen_TooShort(t *testing.T) {
	_, err := Open([]byte{1, 2}, DeriveKey([]byte("k"), []byte("salt")))
	require.ErrorIs(t, err, ErrSealedDataTooShort)
}

func TestSeal_BadKeyLength(t *testing.T) {
	_, err := Seal([]byte("x"), []byte("short"))
	require.Error(t, err)
}
