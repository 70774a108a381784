// Package random provides seed generation and a deterministic random source.
//
// Seeds come from crypto/rand. The Source type is a small xorshift64*
// generator whose word position can be captured and restored, which lets a
// saved simulation resume its random stream exactly where it stopped.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
