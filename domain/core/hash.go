package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
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

// ComputeRunFingerprint hashes the file names plus the threshold
// configuration of a comparison run (spec property P2). File contents
// and the row cap are not part of the hash, so equal fingerprints
// identify equal invocations, not equal inputs.
func ComputeRunFingerprint(file1, file2 string, significant, critical, print float64, percentMode bool, significantPercent float64) Hash {
	data := fmt.Sprintf("file1:%s|file2:%s|significant:%g|critical:%g|print:%g|percent:%t|significant_percent:%g",
		file1, file2, significant, critical, print, percentMode, significantPercent)
	return NewHash([]byte(data))
}
