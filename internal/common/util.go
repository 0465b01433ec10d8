package common

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomBytes returns size bytes from crypto/rand.
// It panics if the system entropy source fails.
func RandomBytes(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return b
}

// RandomHex returns size random bytes hex-encoded (2*size characters).
func RandomHex(size int) string {
	return hex.EncodeToString(RandomBytes(size))
}

// Wipe zeroes b in place. Used for plaintext passwords read from the terminal.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
