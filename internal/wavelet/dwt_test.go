package wavelet

import (
	"math"
	"testing"
)

func constant(rows, cols int, v float64) Matrix {
	m := NewMatrix(rows, cols)
	for i := range m.Data {
		m.Data[i] = v
	}
	return m
}

func TestHaarConstantImage(t *testing.T) {
	// A flat image has all of its energy in the approximation band. One
	// Haar level scales the approximation by 2 and zeroes every detail.
	img := constant(4, 4, 1.0)

	set, err := Decompose(img, Haar, 1)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}

	if set.Approx.Rows != 2 || set.Approx.Cols != 2 {
		t.Fatalf("approx shape: got %dx%d, want 2x2", set.Approx.Rows, set.Approx.Cols)
	}
	for i, v := range set.Approx.Data {
		if math.Abs(v-2.0) > 1e-12 {
			t.Errorf("approx[%d] = %v, want 2.0", i, v)
		}
	}
	d := set.CoarsestDetail()
	for _, band := range []Matrix{d.Horiz, d.Vert, d.Diag} {
		for i, v := range band.Data {
			if math.Abs(v) > 1e-12 {
				t.Errorf("detail coefficient %d = %v, want 0", i, v)
			}
		}
	}
}

func TestHaarVerticalEdge(t *testing.T) {
	// Left half dark, right half bright. The vertical detail band must
	// carry the edge while the horizontal band stays silent.
	img := NewMatrix(4, 4)
	for r := 0; r < 4; r++ {
		for c := 1; c < 4; c++ {
			img.Set(r, c, 8)
		}
	}

	set, err := Decompose(img, Haar, 1)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}

	d := set.CoarsestDetail()
	var vertEnergy, horizEnergy float64
	for _, v := range d.Vert.Data {
		vertEnergy += v * v
	}
	for _, v := range d.Horiz.Data {
		horizEnergy += v * v
	}
	if vertEnergy <= horizEnergy {
		t.Errorf("vertical edge energy %v not above horizontal %v", vertEnergy, horizEnergy)
	}
}

func TestDecomposeSubbandShapes(t *testing.T) {
	img := constant(256, 256, 5)
	set, err := Decompose(img, Haar, 3)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if set.Approx.Rows != 32 || set.Approx.Cols != 32 {
		t.Errorf("level-3 approx: got %dx%d, want 32x32", set.Approx.Rows, set.Approx.Cols)
	}
	if len(set.Details) != 3 {
		t.Fatalf("details: got %d levels, want 3", len(set.Details))
	}
	if set.Details[0].Level != 3 || set.Details[2].Level != 1 {
		t.Errorf("details not ordered coarsest first: %d..%d", set.Details[0].Level, set.Details[2].Level)
	}
	if set.Details[0].Horiz.Rows != 32 {
		t.Errorf("coarsest detail rows: got %d, want 32", set.Details[0].Horiz.Rows)
	}
	if set.Details[2].Horiz.Rows != 128 {
		t.Errorf("level-1 detail rows: got %d, want 128", set.Details[2].Horiz.Rows)
	}
}

func TestDecomposeOddDimensions(t *testing.T) {
	img := constant(7, 5, 1)
	set, err := Decompose(img, Haar, 1)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if set.Approx.Rows != 4 || set.Approx.Cols != 3 {
		t.Errorf("approx shape: got %dx%d, want 4x3", set.Approx.Rows, set.Approx.Cols)
	}
}

func TestDecomposeLevelTooDeep(t *testing.T) {
	img := constant(4, 4, 1)
	if _, err := Decompose(img, DB4, 1); err == nil {
		t.Error("expected error: db4 support exceeds a 4x4 image")
	}
	if _, err := Decompose(img, Haar, 10); err == nil {
		t.Error("expected error: level 10 on a 4x4 image")
	}
	if _, err := Decompose(img, Haar, 0); err == nil {
		t.Error("expected error for level 0")
	}
}

func TestDecomposeDeterminism(t *testing.T) {
	img := NewMatrix(16, 16)
	for i := range img.Data {
		img.Data[i] = float64((i*31 + 7) % 255)
	}
	a, err := Decompose(img, DB2, 2)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	b, err := Decompose(img, DB2, 2)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	for i := range a.Approx.Data {
		if a.Approx.Data[i] != b.Approx.Data[i] {
			t.Fatalf("approx coefficient %d differs between runs", i)
		}
	}
}

func TestMaxLevel(t *testing.T) {
	if got := MaxLevel(256, 256, Haar); got != 8 {
		t.Errorf("MaxLevel(256, haar) = %d, want 8", got)
	}
	if got := MaxLevel(4, 4, DB4); got != 0 {
		t.Errorf("MaxLevel(4, db4) = %d, want 0", got)
	}
	if got := MaxLevel(8, 8, DB4); got != 1 {
		t.Errorf("MaxLevel(8, db4) = %d, want 1", got)
	}
}

func TestParseFamily(t *testing.T) {
	for name, want := range map[string]Family{"haar": Haar, "DB2": DB2, "db4": DB4, "db1": Haar} {
		got, err := ParseFamily(name)
		if err != nil {
			t.Fatalf("ParseFamily(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ParseFamily(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := ParseFamily("sym9"); err == nil {
		t.Error("expected error for unknown family")
	}
}

func TestHighpassQuadratureMirror(t *testing.T) {
	for _, f := range []Family{Haar, DB2, DB4} {
		high, err := f.Highpass()
		if err != nil {
			t.Fatalf("Highpass(%v): %v", f, err)
		}
		var sum float64
		for _, v := range high {
			sum += v
		}
		// A valid highpass filter has zero mean.
		if math.Abs(sum) > 1e-9 {
			t.Errorf("%v highpass sum = %v, want 0", f, sum)
		}
	}
}
