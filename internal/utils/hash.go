package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
)

// SaltLength is the size in bytes of the random per-password salt.
// It matches the SHA-512 block size so the salt is used unmodified as the
// HMAC key.
const SaltLength = 64

// HashLength is the size in bytes of the resulting password digest.
const HashLength = sha512.Size

// HashPassword derives a keyed digest from a plaintext password.
//
// A fresh random salt is drawn from crypto/rand on every call and used as the
// HMAC-SHA512 key over the UTF-8 bytes of the password. The same password
// therefore produces unlinkable digests across calls.
//
// Returns the digest, the salt it was computed with, or an error if the
// system randomness source fails.
func HashPassword(password string) (hash []byte, salt []byte, err error) {
	salt = make([]byte, SaltLength)
	if _, err = rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("error generating password salt: %w", err)
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))

	return mac.Sum(nil), salt, nil
}

// VerifyPassword recomputes the keyed digest of password using storedSalt and
// compares it against storedHash in constant time via [hmac.Equal], so the
// comparison does not leak the position of the first differing byte.
//
// A mismatch is reported as false, never as an error.
func VerifyPassword(password string, storedHash, storedSalt []byte) bool {
	if len(storedHash) == 0 || len(storedSalt) == 0 {
		return false
	}

	mac := hmac.New(sha512.New, storedSalt)
	mac.Write([]byte(password))

	return hmac.Equal(mac.Sum(nil), storedHash)
}
