package hash

import (
	"fmt"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/wavelet"
)

// Features flattens the selected coarsest-level subbands into one vector.
// The concatenation order is fixed: approximation, then horizontal,
// vertical and diagonal detail, each in row-major order, so a given
// configuration always yields vectors of identical length for inputs of
// identical size.
func Features(set *wavelet.SubbandSet, mode SubbandMode) ([]float64, error) {
	detail := set.CoarsestDetail()
	switch mode {
	case ApproxOnly:
		return set.Approx.Flatten(), nil
	case ApproxHoriz:
		return concat(set.Approx, detail.Horiz), nil
	case ApproxVert:
		return concat(set.Approx, detail.Vert), nil
	case ApproxHorizVert:
		return concat(set.Approx, detail.Horiz, detail.Vert), nil
	case AllSubbands:
		return concat(set.Approx, detail.Horiz, detail.Vert, detail.Diag), nil
	}
	return nil, fmt.Errorf("%w: unknown subband mode %d", ErrInvalidConfig, int(mode))
}

func concat(bands ...wavelet.Matrix) []float64 {
	total := 0
	for _, b := range bands {
		total += len(b.Data)
	}
	out := make([]float64, 0, total)
	for _, b := range bands {
		out = append(out, b.Data...)
	}
	return out
}
