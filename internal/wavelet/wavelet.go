// Package wavelet implements a multi-level separable 2-D discrete wavelet
// transform over grayscale pixel grids. The approximation output of each
// level feeds the next, so higher levels summarize increasingly global
// image structure.
package wavelet

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned when a decomposition request cannot be
// satisfied, either because the wavelet family is unknown or because the
// requested level is too deep for the image dimensions.
var ErrInvalidConfig = errors.New("wavelet: invalid configuration")

// Family identifies an orthogonal wavelet filter bank.
type Family int

const (
	// Haar is the 2-tap orthogonal wavelet and the default family.
	Haar Family = iota
	// DB2 is the 4-tap Daubechies wavelet.
	DB2
	// DB4 is the 8-tap Daubechies wavelet.
	DB4
)

// Daubechies scaling coefficients, already normalized so that the filter
// has unit energy.
var (
	haarLow = []float64{
		0.7071067811865476, 0.7071067811865476,
	}
	db2Low = []float64{
		0.48296291314469025, 0.8365163037378079,
		0.22414386804185735, -0.12940952255092145,
	}
	db4Low = []float64{
		0.23037781330885523, 0.7148465705525415,
		0.6308807679295904, -0.02798376941698385,
		-0.18703481171888114, 0.030841381835986965,
		0.032883011666982945, -0.010597401784997278,
	}
)

func (f Family) String() string {
	switch f {
	case Haar:
		return "haar"
	case DB2:
		return "db2"
	case DB4:
		return "db4"
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// ParseFamily maps a family name such as "haar" or "db2" to its constant.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "haar", "db1":
		return Haar, nil
	case "db2":
		return DB2, nil
	case "db4":
		return DB4, nil
	}
	return 0, fmt.Errorf("%w: unknown wavelet family %q", ErrInvalidConfig, s)
}

// Lowpass returns the scaling (lowpass) filter of the family.
func (f Family) Lowpass() ([]float64, error) {
	switch f {
	case Haar:
		return haarLow, nil
	case DB2:
		return db2Low, nil
	case DB4:
		return db4Low, nil
	}
	return nil, fmt.Errorf("%w: unknown wavelet family %d", ErrInvalidConfig, int(f))
}

// Highpass derives the quadrature mirror filter from the lowpass filter.
func (f Family) Highpass() ([]float64, error) {
	low, err := f.Lowpass()
	if err != nil {
		return nil, err
	}
	high := make([]float64, len(low))
	for k := range low {
		high[k] = low[len(low)-1-k]
		if k%2 == 1 {
			high[k] = -high[k]
		}
	}
	return high, nil
}

// Support returns the filter length of the family.
func (f Family) Support() int {
	low, err := f.Lowpass()
	if err != nil {
		return 0
	}
	return len(low)
}

// MaxLevel reports the deepest decomposition level supported for an image
// of the given dimensions. A level is supported as long as both dimensions
// of its input are at least the filter support.
func MaxLevel(rows, cols int, f Family) int {
	support := f.Support()
	if support == 0 {
		return 0
	}
	level := 0
	for rows >= support && cols >= support {
		rows = halved(rows)
		cols = halved(cols)
		level++
	}
	return level
}

func halved(n int) int {
	return (n + 1) / 2
}
