package cryptox

import (
	"crypto/rand"
	"fmt"
	"io"
)

// passwordAlphabet is the character set for generated passwords:
// upper/lower letters, digits, and a small symbol set.
const passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

const (
	// DefaultPasswordLength is the generated password length.
	DefaultPasswordLength = 16
	// DefaultKeyLength is the AES key size in bits.
	DefaultKeyLength = 256
)

// Generator produces the one-time credentials for a message: a
// human-presentable password, a symmetric key, and a per-encryption nonce.
//
// The random source is injected so tests can substitute a deterministic
// reader; production code uses NewGenerator, which reads crypto/rand.
type Generator struct {
	rand           io.Reader
	passwordLength int
	keySize        int // bytes
}

// NewGenerator returns a Generator backed by crypto/rand.
func NewGenerator(passwordLength, keyLengthBits int) *Generator {
	return NewGeneratorWithRand(rand.Reader, passwordLength, keyLengthBits)
}

// NewGeneratorWithRand returns a Generator reading randomness from r.
func NewGeneratorWithRand(r io.Reader, passwordLength, keyLengthBits int) *Generator {
	return &Generator{
		rand:           r,
		passwordLength: passwordLength,
		keySize:        keyLengthBits / 8,
	}
}

// Password generates a random password drawn uniformly, per character, from
// passwordAlphabet. Rejection sampling keeps the distribution unbiased.
func (g *Generator) Password() (string, error) {
	// Largest multiple of len(passwordAlphabet) that fits in a byte.
	limit := byte(256 - 256%len(passwordAlphabet))

	password := make([]byte, 0, g.passwordLength)
	buf := make([]byte, 1)

	for len(password) < g.passwordLength {
		if _, err := io.ReadFull(g.rand, buf); err != nil {
			return "", fmt.Errorf("random source failed: %w", err)
		}
		if buf[0] >= limit {
			continue
		}
		password = append(password, passwordAlphabet[int(buf[0])%len(passwordAlphabet)])
	}

	return string(password), nil
}

// Key generates a fresh symmetric key and returns it base64-encoded for
// transport. The raw bytes never leave this function.
func (g *Generator) Key() (string, error) {
	key := make([]byte, g.keySize)
	if _, err := io.ReadFull(g.rand, key); err != nil {
		return "", fmt.Errorf("random source failed: %w", err)
	}
	return EncodeKey(key), nil
}

// Nonce generates a fresh 96-bit nonce. A new nonce must be drawn for every
// encryption call.
func (g *Generator) Nonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(g.rand, nonce); err != nil {
		return nil, fmt.Errorf("random source failed: %w", err)
	}
	return nonce, nil
}
