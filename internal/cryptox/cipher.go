// Package cryptox implements the cryptographic primitives of the service:
// AES-GCM authenticated encryption of message payloads, bcrypt password
// hashing, and generation of one-time credentials (password, key, nonce).
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	// NonceSize is the AES-GCM nonce length in bytes.
	NonceSize = 12
)

// ErrDecryptionFailed is returned for every decryption failure: wrong key,
// tampered ciphertext, wrong nonce, or a malformed key. Callers must not be
// able to distinguish the causes.
var ErrDecryptionFailed = errors.New("decryption failed")

// Encrypt seals plaintext with AES-GCM under the given key and nonce.
// The returned ciphertext carries the authentication tag.
//
// An invalid key or nonce length is a programmer error and is reported as a
// plain error; nonce uniqueness per key is the caller's responsibility.
func Encrypt(plaintext, key, nonce []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("invalid nonce size: got %d, want %d", len(nonce), NonceSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return aesgcm.Seal(nil, nonce, plaintext, nil), nil
}

// Decrypt opens AES-GCM ciphertext produced by Encrypt. The integrity tag is
// verified before any plaintext is returned; every failure collapses into
// ErrDecryptionFailed.
func Decrypt(ciphertext, key, nonce []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, ErrDecryptionFailed
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

// DecodeKey decodes a base64-encoded key as it crosses the external boundary.
func DecodeKey(encoded string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(encoded)
}

// EncodeKey encodes raw key bytes for transport.
func EncodeKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}
