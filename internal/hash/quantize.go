package hash

import (
	"fmt"
	"math"
	"sort"
)

const (
	defaultTernaryK  = 1.0
	defaultStepDelta = 5.0
)

// Quantize converts a feature vector into a bit slice of exactly cfg.Bits
// entries. Central statistics are computed over the whole vector before
// any length fitting. Vectors shorter than the target are zero-padded,
// longer ones are truncated to the first Bits elements; both rules are
// fixed because they change hash values.
func Quantize(vec []float64, cfg Config) ([]uint8, error) {
	if len(vec) == 0 {
		return nil, fmt.Errorf("%w: empty feature vector", ErrInvalidConfig)
	}

	var bits []uint8
	switch cfg.Quant {
	case Median:
		bits = thresholdBits(vec, median(vec))
	case Mean:
		bits = thresholdBits(vec, mean(vec))
	case Ternary:
		bits = ternaryBits(vec, cfg)
	case UniformStep:
		bits = stepBits(vec, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown quantization method %d", ErrInvalidConfig, int(cfg.Quant))
	}

	return fitBits(bits, cfg.Bits), nil
}

func thresholdBits(vec []float64, c float64) []uint8 {
	bits := make([]uint8, len(vec))
	for i, v := range vec {
		if v > c {
			bits[i] = 1
		}
	}
	return bits
}

func ternaryBits(vec []float64, cfg Config) []uint8 {
	k := cfg.TernaryK
	if k == 0 {
		k = defaultTernaryK
	}
	mid := uint8(0)
	if cfg.TernaryMid != 0 {
		mid = 1
	}

	m := median(vec)
	dev := make([]float64, len(vec))
	for i, v := range vec {
		dev[i] = math.Abs(v - m)
	}
	mad := median(dev) + 1e-12

	low, high := m-k*mad, m+k*mad
	bits := make([]uint8, len(vec))
	for i, v := range vec {
		switch {
		case v < low:
			bits[i] = 0
		case v > high:
			bits[i] = 1
		default:
			bits[i] = mid
		}
	}
	return bits
}

func stepBits(vec []float64, cfg Config) []uint8 {
	delta := cfg.StepDelta
	if delta == 0 {
		delta = defaultStepDelta
	}
	bits := make([]uint8, len(vec))
	for i, v := range vec {
		q := int64(math.Round(v / delta))
		bits[i] = uint8(q & 1)
	}
	return bits
}

// fitBits pads with zeros or truncates to the target length.
func fitBits(bits []uint8, n int) []uint8 {
	out := make([]uint8, n)
	copy(out, bits)
	return out
}

func mean(vec []float64) float64 {
	var sum float64
	for _, v := range vec {
		sum += v
	}
	return sum / float64(len(vec))
}

func median(vec []float64) float64 {
	sorted := make([]float64, len(vec))
	copy(sorted, vec)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
