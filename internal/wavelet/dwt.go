package wavelet

import "fmt"

// Detail holds the three oriented detail subbands of one decomposition
// level. Horiz responds to horizontal edges (lowpass along rows, highpass
// along columns), Vert to vertical edges, Diag to diagonal structure.
type Detail struct {
	Level int
	Horiz Matrix
	Vert  Matrix
	Diag  Matrix
}

// SubbandSet is the output of a multi-level decomposition: the coarsest
// approximation subband plus the detail subbands of every level, ordered
// coarsest first. It is consumed once by feature selection and discarded.
type SubbandSet struct {
	Family Family
	Levels int
	Approx Matrix
	// Details[0] belongs to the coarsest level (level == Levels),
	// Details[len-1] to level 1.
	Details []Detail
}

// Decompose runs a level-deep 2-D DWT over the image. Each level filters
// rows then columns of the previous approximation with periodic extension
// and dyadic downsampling, so an n-wide input yields ceil(n/2)-wide
// subbands.
func Decompose(img Matrix, family Family, level int) (*SubbandSet, error) {
	if level < 1 {
		return nil, fmt.Errorf("%w: decomposition level %d, want >= 1", ErrInvalidConfig, level)
	}
	low, err := family.Lowpass()
	if err != nil {
		return nil, err
	}
	high, _ := family.Highpass()

	if max := MaxLevel(img.Rows, img.Cols, family); level > max {
		return nil, fmt.Errorf("%w: level %d exceeds maximum %d for %dx%d image with %s",
			ErrInvalidConfig, level, max, img.Rows, img.Cols, family)
	}

	set := &SubbandSet{Family: family, Levels: level, Details: make([]Detail, level)}
	approx := img
	for l := 1; l <= level; l++ {
		// Rows pass splits the width into low and high halves.
		rowLow := analyzeRows(approx, low)
		rowHigh := analyzeRows(approx, high)

		// Columns pass splits the height of each half.
		ll := analyzeCols(rowLow, low)
		lh := analyzeCols(rowLow, high)
		hl := analyzeCols(rowHigh, low)
		hh := analyzeCols(rowHigh, high)

		set.Details[level-l] = Detail{Level: l, Horiz: lh, Vert: hl, Diag: hh}
		approx = ll
	}
	set.Approx = approx
	return set, nil
}

// analyzeRows convolves every row with the filter and keeps the even
// phases, wrapping periodically at the row boundary.
func analyzeRows(m Matrix, filter []float64) Matrix {
	outCols := halved(m.Cols)
	out := NewMatrix(m.Rows, outCols)
	for r := 0; r < m.Rows; r++ {
		for i := 0; i < outCols; i++ {
			var acc float64
			for k, f := range filter {
				acc += f * m.At(r, (2*i+k)%m.Cols)
			}
			out.Set(r, i, acc)
		}
	}
	return out
}

func analyzeCols(m Matrix, filter []float64) Matrix {
	outRows := halved(m.Rows)
	out := NewMatrix(outRows, m.Cols)
	for c := 0; c < m.Cols; c++ {
		for i := 0; i < outRows; i++ {
			var acc float64
			for k, f := range filter {
				acc += f * m.At((2*i+k)%m.Rows, c)
			}
			out.Set(i, c, acc)
		}
	}
	return out
}

// CoarsestDetail returns the detail subbands produced at the deepest level.
func (s *SubbandSet) CoarsestDetail() Detail {
	return s.Details[0]
}
