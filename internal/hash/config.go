// Package hash turns wavelet subband coefficients into fixed-length binary
// perceptual hashes.
package hash

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/wavelet"
)

// ErrInvalidConfig is returned when a hashing configuration cannot produce
// a hash.
var ErrInvalidConfig = errors.New("hash: invalid configuration")

// SubbandMode selects which coarsest-level subbands feed the feature
// vector.
type SubbandMode int

const (
	// ApproxOnly uses only the approximation band. It is the default:
	// the lowest-frequency content is the most stable under noise and
	// brightness shifts.
	ApproxOnly SubbandMode = iota
	// ApproxHoriz adds the horizontal detail band.
	ApproxHoriz
	// ApproxVert adds the vertical detail band.
	ApproxVert
	// ApproxHorizVert adds horizontal and vertical details, skipping the
	// noisy diagonal band.
	ApproxHorizVert
	// AllSubbands uses every coarsest-level band.
	AllSubbands
)

func (m SubbandMode) String() string {
	switch m {
	case ApproxOnly:
		return "approx"
	case ApproxHoriz:
		return "approx-horiz"
	case ApproxVert:
		return "approx-vert"
	case ApproxHorizVert:
		return "approx-horiz-vert"
	case AllSubbands:
		return "all"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseSubbandMode maps a mode name to its constant.
func ParseSubbandMode(s string) (SubbandMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approx", "ll":
		return ApproxOnly, nil
	case "approx-horiz", "ll-lh":
		return ApproxHoriz, nil
	case "approx-vert", "ll-hl":
		return ApproxVert, nil
	case "approx-horiz-vert", "ll-lh-hl":
		return ApproxHorizVert, nil
	case "all":
		return AllSubbands, nil
	}
	return 0, fmt.Errorf("%w: unknown subband mode %q", ErrInvalidConfig, s)
}

// QuantMethod selects how feature coefficients become bits.
type QuantMethod int

const (
	// Median thresholds against the vector median. More robust to
	// outlier coefficients than Mean.
	Median QuantMethod = iota
	// Mean thresholds against the vector mean.
	Mean
	// Ternary thresholds against median +/- k*MAD bands, assigning the
	// configured mid-band bit between them.
	Ternary
	// UniformStep quantizes by a fixed step and keeps the least
	// significant bit.
	UniformStep
)

func (q QuantMethod) String() string {
	switch q {
	case Median:
		return "median"
	case Mean:
		return "mean"
	case Ternary:
		return "ternary"
	case UniformStep:
		return "uniform-step"
	}
	return fmt.Sprintf("quant(%d)", int(q))
}

// ParseQuantMethod maps a quantizer name to its constant.
func ParseQuantMethod(s string) (QuantMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "median":
		return Median, nil
	case "mean":
		return Mean, nil
	case "ternary":
		return Ternary, nil
	case "uniform-step", "uniform_step":
		return UniformStep, nil
	}
	return 0, fmt.Errorf("%w: unknown quantization method %q", ErrInvalidConfig, s)
}

// Config fixes every knob of the hashing pipeline. Identical configs over
// identical normalized images always yield bit-identical hashes.
type Config struct {
	Family wavelet.Family
	Level  int
	Mode   SubbandMode
	Quant  QuantMethod
	Bits   int
	// Size is the side of the square normalized grayscale input.
	Size int

	// TernaryK widens the ternary mid band; TernaryMid is the bit
	// assigned inside it. StepDelta is the uniform-step quantum. Zero
	// values fall back to the lab defaults (1.0, 0, 5.0).
	TernaryK   float64
	TernaryMid int
	StepDelta  float64
}

// DefaultConfig returns the stock configuration: Haar, two levels,
// approximation band, median quantization, 256 bits over a 256x256 grid.
func DefaultConfig() Config {
	return Config{
		Family: wavelet.Haar,
		Level:  2,
		Mode:   ApproxOnly,
		Quant:  Median,
		Bits:   256,
		Size:   256,
	}
}

// Validate rejects configurations that cannot produce a hash.
func (c Config) Validate() error {
	if _, err := c.Family.Lowpass(); err != nil {
		return err
	}
	if c.Level < 1 {
		return fmt.Errorf("%w: level %d, want >= 1", ErrInvalidConfig, c.Level)
	}
	if c.Bits < 1 {
		return fmt.Errorf("%w: hash bits %d, want >= 1", ErrInvalidConfig, c.Bits)
	}
	if c.Size < c.Family.Support() {
		return fmt.Errorf("%w: normalized size %d below filter support %d", ErrInvalidConfig, c.Size, c.Family.Support())
	}
	if max := wavelet.MaxLevel(c.Size, c.Size, c.Family); c.Level > max {
		return fmt.Errorf("%w: level %d exceeds maximum %d for size %d", ErrInvalidConfig, c.Level, max, c.Size)
	}
	switch c.Mode {
	case ApproxOnly, ApproxHoriz, ApproxVert, ApproxHorizVert, AllSubbands:
	default:
		return fmt.Errorf("%w: unknown subband mode %d", ErrInvalidConfig, int(c.Mode))
	}
	switch c.Quant {
	case Median, Mean, Ternary, UniformStep:
	default:
		return fmt.Errorf("%w: unknown quantization method %d", ErrInvalidConfig, int(c.Quant))
	}
	return nil
}

// ID renders a compact configuration label, e.g. "haar-l2-approx-median-256".
func (c Config) ID() string {
	return fmt.Sprintf("%s-l%d-%s-%s-%d", c.Family, c.Level, c.Mode, c.Quant, c.Bits)
}

// Presets returns the comparison configurations studied in the lab.
func Presets() []Config {
	base := DefaultConfig()

	db2 := base
	db2.Family = wavelet.DB2

	db4 := base
	db4.Family = wavelet.DB4
	db4.Level = 3

	mean := base
	mean.Family = wavelet.DB2
	mean.Quant = Mean

	return []Config{base, db2, db4, mean}
}
