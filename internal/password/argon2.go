// Package password hashes user passwords with argon2id and a per-user salt.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/dtroode/storefront-server/internal/model"
)

const (
	saltLen = 16
	keyLen  = 32
)

// KDFParams are argon2id cost parameters.
type KDFParams struct {
	Time   uint32
	MemKiB uint32
	Par    uint8
}

// NewKDFParams builds KDFParams, falling back to safe minimums for zero values.
func NewKDFParams(time, memKiB uint32, par uint8) KDFParams {
	if time == 0 {
		time = 1
	}
	if memKiB == 0 {
		memKiB = 64 * 1024
	}
	if par == 0 {
		par = 4
	}
	return KDFParams{Time: time, MemKiB: memKiB, Par: par}
}

// Hasher derives and verifies password hashes.
type Hasher struct {
	params KDFParams
}

// NewHasher creates a Hasher with the given cost parameters.
func NewHasher(params KDFParams) *Hasher {
	return &Hasher{params: params}
}

var _ model.PasswordHasher = (*Hasher)(nil)

var errEmptyPassword = errors.New("password is empty")

// Hash returns the derived key and the random salt used for it.
func (h *Hasher) Hash(password string) (hash []byte, salt []byte, err error) {
	if password == "" {
		return nil, nil, errEmptyPassword
	}

	salt = make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}

	return h.derive(password, salt), salt, nil
}

// Verify reports whether password matches hash under salt.
func (h *Hasher) Verify(password string, hash, salt []byte) bool {
	if password == "" || len(hash) == 0 || len(salt) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(h.derive(password, salt), hash) == 1
}

func (h *Hasher) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, h.params.Time, h.params.MemKiB, h.params.Par, keyLen)
}
