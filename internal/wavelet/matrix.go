package wavelet

import "image"

// Matrix is a dense row-major grid of coefficients. It doubles as the
// normalized grayscale input to the decomposer, where each element is a
// pixel intensity in [0, 255].
type Matrix struct {
	Rows, Cols int
	Data       []float64
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	return Matrix{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// At returns the element at row r, column c.
func (m Matrix) At(r, c int) float64 {
	return m.Data[r*m.Cols+c]
}

// Set stores v at row r, column c.
func (m Matrix) Set(r, c int, v float64) {
	m.Data[r*m.Cols+c] = v
}

// Flatten returns the coefficients in row-major order. The returned slice
// is a copy, so the matrix stays immutable from the caller's point of view.
func (m Matrix) Flatten() []float64 {
	out := make([]float64, len(m.Data))
	copy(out, m.Data)
	return out
}

// FromGray converts a grayscale image into a coefficient matrix.
func FromGray(img *image.Gray) Matrix {
	b := img.Bounds()
	m := NewMatrix(b.Dy(), b.Dx())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			m.Set(y, x, float64(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y))
		}
	}
	return m
}
