// Package cryptox implements salted password hashing on top of argon2id.
//
// Salts and hashes are carried as lowercase hex strings so they can be
// stored in plain text columns and compared byte-for-byte.
package cryptox

import (
	"crypto/subtle"
	"encoding/hex"

	"github.com/dmitrijs2005/usermgmt/internal/common"
	"golang.org/x/crypto/argon2"
)

// DefaultSaltBits is the salt size used when no explicit size is configured.
const DefaultSaltBits = 256

// Params tunes the argon2id key derivation. Memory is expressed in KiB.
type Params struct {
	Time      uint32
	Memory    uint32
	Threads   uint8
	KeyLength uint32
}

// DefaultParams returns the derivation parameters used for stored passwords.
func DefaultParams() Params {
	return Params{
		Time:      1,
		Memory:    64 * 1024,
		Threads:   4,
		KeyLength: 32,
	}
}

// GenerateSalt returns a hex-encoded salt carrying at least bits bits of
// entropy. Sizes are rounded up to whole bytes, with a one byte minimum.
// It panics if the system entropy source is unavailable.
func GenerateSalt(bits int) string {
	size := (bits + 7) / 8
	if size < 1 {
		size = 1
	}
	return common.RandomHex(size)
}

// DeriveHash derives a key from password and salt and returns it hex-encoded.
// Identical inputs always yield the same output.
func DeriveHash(password, salt string, p Params) string {
	key := argon2.IDKey([]byte(password), []byte(salt), p.Time, p.Memory, p.Threads, p.KeyLength)
	return hex.EncodeToString(key)
}

// Verify reports whether candidate hashes to hash under salt.
// The comparison runs in constant time.
func Verify(candidate, salt, hash string, p Params) bool {
	derived := DeriveHash(candidate, salt, p)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(hash)) == 1
}

// Hasher bundles a salt size and derivation parameters.
type Hasher struct {
	SaltBits int
	Params   Params
}

func NewHasher(saltBits int, p Params) *Hasher {
	return &Hasher{SaltBits: saltBits, Params: p}
}

// HashPassword generates a fresh salt and returns it with the derived hash.
func (h *Hasher) HashPassword(password string) (salt, hash string) {
	salt = GenerateSalt(h.SaltBits)
	return salt, DeriveHash(password, salt, h.Params)
}

func (h *Hasher) Verify(password, salt, hash string) bool {
	return Verify(password, salt, hash, h.Params)
}
