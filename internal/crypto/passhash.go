// Package crypto hashes account passwords with Argon2id.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Params are the Argon2id cost settings of a stored hash.
type Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
	SaltLen   int
}

// Default is used for every account.
var Default = Params{Time: 3, MemoryKiB: 64 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

// NewSalt returns p.SaltLen random bytes.
func (p Params) NewSalt() ([]byte, error) {
	b := make([]byte, p.SaltLen)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read salt: %w", err)
	}
	return b, nil
}

// Hash derives the stored hash of password.
func (p Params) Hash(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, p.KeyLen)
}

// Verify reports whether password matches want, in constant time.
func (p Params) Verify(password string, salt, want []byte) bool {
	return subtle.ConstantTimeCompare(p.Hash(password, salt), want) == 1
}
