package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator creates opaque identifiers for session records.
type Generator interface {
	New() string
}

// RandomHex produces 8 random bytes, hex encoded.
type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
