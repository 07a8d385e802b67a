// Package crypto provides randomness helpers and keyed fingerprints of credentials.
package crypto

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// FingerprintSize is the digest length in bytes (hex output is twice as long).
const FingerprintSize = 8

// RandBytes returns n cryptographically secure random bytes.
func RandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// Fingerprinter derives short stable identifiers for credential values so logs and
// events can correlate them without carrying the secret.
type Fingerprinter struct {
	key []byte
}

// NewFingerprinter keys fingerprints with key (at most 64 bytes are used).
func NewFingerprinter(key []byte) *Fingerprinter {
	if len(key) > blake2b.Size {
		key = key[:blake2b.Size]
	}
	return &Fingerprinter{key: append([]byte(nil), key...)}
}

// Fingerprint returns the hex keyed BLAKE2b digest of value.
func (f *Fingerprinter) Fingerprint(value string) string {
	h, err := blake2b.New(FingerprintSize, f.key)
	if err != nil {
		// only possible with an invalid size or an over-long key, both ruled out above
		panic(err)
	}
	h.Write([]byte(value))
	return hex.EncodeToString(h.Sum(nil))
}
