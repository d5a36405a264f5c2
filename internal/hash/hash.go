package hash

import (
	"encoding/hex"
	"fmt"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/wavelet"
)

// Hash is an immutable fixed-length perceptual fingerprint plus the
// configuration that produced it. Bits are packed MSB-first; unused bits
// of the final byte are always zero.
type Hash struct {
	packed []byte
	bits   int
	cfg    Config
}

// Compute runs the full pipeline over a normalized grayscale grid:
// decompose, select subbands, quantize. It is a pure function of the
// input and the configuration.
func Compute(img wavelet.Matrix, cfg Config) (*Hash, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	set, err := wavelet.Decompose(img, cfg.Family, cfg.Level)
	if err != nil {
		return nil, err
	}
	vec, err := Features(set, cfg.Mode)
	if err != nil {
		return nil, err
	}
	bits, err := Quantize(vec, cfg)
	if err != nil {
		return nil, err
	}
	return FromBits(bits, cfg), nil
}

// FromBits packs an unpacked bit slice into a Hash. The bit count becomes
// the hash width regardless of cfg.Bits, which lets tests and callers
// build hashes of arbitrary widths.
func FromBits(bits []uint8, cfg Config) *Hash {
	packed := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b != 0 {
			packed[i/8] |= 1 << (7 - uint(i%8))
		}
	}
	return &Hash{packed: packed, bits: len(bits), cfg: cfg}
}

// FromPacked rebuilds a Hash from its packed representation, as stored in
// a gallery database.
func FromPacked(packed []byte, bits int, cfg Config) (*Hash, error) {
	if len(packed) != (bits+7)/8 {
		return nil, fmt.Errorf("%w: %d packed bytes cannot hold %d bits", ErrInvalidConfig, len(packed), bits)
	}
	h := &Hash{packed: make([]byte, len(packed)), bits: bits, cfg: cfg}
	copy(h.packed, packed)
	return h, nil
}

// BitLen returns the number of bits in the hash.
func (h *Hash) BitLen() int {
	return h.bits
}

// Bit returns bit i as 0 or 1.
func (h *Hash) Bit(i int) int {
	if h.packed[i/8]&(1<<(7-uint(i%8))) != 0 {
		return 1
	}
	return 0
}

// Packed returns a copy of the MSB-first packed bytes.
func (h *Hash) Packed() []byte {
	out := make([]byte, len(h.packed))
	copy(out, h.packed)
	return out
}

// Hex renders the packed bits as a lowercase hexadecimal string.
func (h *Hash) Hex() string {
	return hex.EncodeToString(h.packed)
}

// Config returns the configuration the hash was produced under.
func (h *Hash) Config() Config {
	return h.cfg
}

// Equal reports whether two hashes have identical width and bits.
func (h *Hash) Equal(other *Hash) bool {
	if h.bits != other.bits {
		return false
	}
	for i := range h.packed {
		if h.packed[i] != other.packed[i] {
			return false
		}
	}
	return true
}

func (h *Hash) String() string {
	return fmt.Sprintf("%s/%s", h.cfg.ID(), h.Hex())
}
