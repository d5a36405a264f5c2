// Package similarity compares perceptual hashes and calibrates decision
// thresholds over labeled image pairs.
package similarity

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/hash"
)

// ErrLengthMismatch is returned when two hashes were produced under
// different bit widths. That is always a caller bug, not a recoverable
// condition.
var ErrLengthMismatch = errors.New("similarity: hash bit lengths differ")

// Distance counts differing bit positions between two equal-length hashes.
// It is a metric over the bit cube: zero iff identical, symmetric, and it
// satisfies the triangle inequality.
func Distance(a, b *hash.Hash) (int, error) {
	if a.BitLen() != b.BitLen() {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, a.BitLen(), b.BitLen())
	}
	pa, pb := a.Packed(), b.Packed()
	dist := 0
	for i := range pa {
		dist += bits.OnesCount8(pa[i] ^ pb[i])
	}
	return dist, nil
}

// Normalized returns the Hamming distance scaled into [0, 1].
func Normalized(a, b *hash.Hash) (float64, error) {
	d, err := Distance(a, b)
	if err != nil {
		return 0, err
	}
	return float64(d) / float64(a.BitLen()), nil
}

// Score returns 1 minus the normalized distance, so identical hashes score
// 1.0.
func Score(a, b *hash.Hash) (float64, error) {
	n, err := Normalized(a, b)
	if err != nil {
		return 0, err
	}
	return 1 - n, nil
}
