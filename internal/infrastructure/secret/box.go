// Package secret seals small values (SMTP passwords) before they are stored.
package secret

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	prefix    = "sb1:"
	nonceSize = 24
)

// ErrOpen is returned for values that were not sealed with the same key
var ErrOpen = errors.New("secret: cannot open sealed value")

// Sealer encrypts and decrypts stored secrets
type Sealer interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
}

// Box is a secretbox Sealer keyed from a passphrase via HKDF-SHA256
type Box struct {
	key [32]byte
}

// NewBox derives the box key from passphrase
func NewBox(passphrase string) (*Box, error) {
	if passphrase == "" {
		return nil, errors.New("secret: empty passphrase")
	}
	b := &Box{}
	r := hkdf.New(sha256.New, []byte(passphrase), nil, []byte("paymentflow smtp password"))
	if _, err := io.ReadFull(r, b.key[:]); err != nil {
		return nil, fmt.Errorf("secret: derive key: %w", err)
	}
	return b, nil
}

// Seal encrypts plain; the empty string stays empty
func (b *Box) Seal(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("secret: nonce: %w", err)
	}
	out := secretbox.Seal(nonce[:], []byte(plain), &nonce, &b.key)
	return prefix + base64.RawStdEncoding.EncodeToString(out), nil
}

// Open decrypts a sealed value. Values without the prefix are returned
// unchanged so rows written before sealing was enabled keep working.
func (b *Box) Open(sealed string) (string, error) {
	if !strings.HasPrefix(sealed, prefix) {
		return sealed, nil
	}
	raw, err := base64.RawStdEncoding.DecodeString(strings.TrimPrefix(sealed, prefix))
	if err != nil || len(raw) < nonceSize {
		return "", ErrOpen
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", ErrOpen
	}
	return string(plain), nil
}

// Plain is the no-op Sealer used when no key is configured
type Plain struct{}

func (Plain) Seal(s string) (string, error) { return s, nil }
func (Plain) Open(s string) (string, error) { return s, nil }

// New returns a Box for a non-empty passphrase and Plain otherwise
func New(passphrase string) (Sealer, error) {
	if passphrase == "" {
		return Plain{}, nil
	}
	return NewBox(passphrase)
}
