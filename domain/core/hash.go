package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Fingerprint is a deterministic hash over the canonical form of a domain object.
// Datasets and runs carry fingerprints so reruns can be audited for drift.
type Fingerprint Hash

func (f Fingerprint) String() string { return Hash(f).String() }

// ComputeFingerprint hashes an ordered list of canonical parts.
// Callers are responsible for ordering the parts deterministically.
func ComputeFingerprint(parts ...string) Fingerprint {
	var data strings.Builder
	for _, p := range parts {
		data.WriteString(p)
		data.WriteByte(0x1f) // unit separator keeps adjacent parts from colliding
	}
	return Fingerprint(NewHash([]byte(data.String())))
}
