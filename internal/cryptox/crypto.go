// Package cryptox seals small secrets (session tokens) at rest with AES-GCM
// under a key derived from a passphrase with Argon2id.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"github.com/dmitrijs2005/cmsadmin/internal/common"
	"golang.org/x/crypto/argon2"
)

// KeySize is the length of keys returned by DeriveKey (AES-256).
const KeySize = 32

// SaltSize is the recommended salt length for DeriveKey.
const SaltSize = 16

var ErrSealedDataTooShort = errors.New("sealed data too short")

// DeriveKey stretches passphrase into a KeySize key. The same passphrase and
// salt always produce the same key.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext with a fresh random nonce and returns nonce||ciphertext.
//
// Example:
//
//	key := cryptox.DeriveKey([]byte("passphrase"), salt)
//	sealed, err := cryptox.Seal([]byte("refresh-token"), key)
func Seal(plaintext, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())

	// nonce doubles as the dst prefix
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal. A wrong key or tampered data yields an error from GCM.
func Open(sealed, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	ns := aesgcm.NonceSize()
	if len(sealed) < ns {
		return nil, ErrSealedDataTooShort
	}

	return aesgcm.Open(nil, sealed[:ns], sealed[ns:], nil)
}
