package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const sealerInfo = "rbmesports backend token v1"

var ErrTokenUnsealFailed = errors.New("stored backend token could not be opened")

// TokenSealer encrypts backend bearer tokens before they are persisted.
type TokenSealer struct {
	key [32]byte
}

func NewTokenSealer(secret []byte) (*TokenSealer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token sealer: empty secret")
	}
	s := &TokenSealer{}
	kdf := hkdf.New(sha256.New, secret, nil, []byte(sealerInfo))
	if _, err := io.ReadFull(kdf, s.key[:]); err != nil {
		return nil, fmt.Errorf("token sealer: derive key: %w", err)
	}
	return s, nil
}

func (s *TokenSealer) Seal(plain string) (string, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("token sealer: nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.key)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

func (s *TokenSealer) Open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(raw) < 24+secretbox.Overhead {
		return "", ErrTokenUnsealFailed
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, &s.key)
	if !ok {
		return "", ErrTokenUnsealFailed
	}
	return string(plain), nil
}
