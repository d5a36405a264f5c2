package app

import (
	"bytes"
	"testing"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/similarity"
)

func TestCompareMethods(t *testing.T) {
	dir := t.TempDir()
	grad := writePNG(t, dir, "grad.png", gradientImage())
	same := writePNG(t, dir, "same.png", gradientImage())
	noise := writePNG(t, dir, "noise.png", noiseImage())

	pairs := []Pair{
		{ImageA: grad, ImageB: same, Similar: true},
		{ImageA: grad, ImageB: noise, Similar: false},
	}

	methods := append([]Comparator{WaveletComparator(testConfig())}, BaselineComparators()...)
	rows, err := CompareMethods(pairs, methods, similarity.ByAccuracy)
	if err != nil {
		t.Fatalf("CompareMethods: %v", err)
	}
	if len(rows) != len(methods) {
		t.Fatalf("got %d rows, want %d", len(rows), len(methods))
	}
	for i, m := range methods {
		if rows[i].ConfigID != m.ID() {
			t.Errorf("row %d id = %s, want %s", i, rows[i].ConfigID, m.ID())
		}
	}
	// Identical vs unrelated images are separable for every method here.
	for _, r := range rows {
		if r.Accuracy != 1.0 {
			t.Errorf("%s accuracy = %v, want 1.0", r.ConfigID, r.Accuracy)
		}
	}
}

func TestCompareMethodsEmptyDataset(t *testing.T) {
	if _, err := CompareMethods(nil, PresetComparators(), similarity.ByAccuracy); err == nil {
		t.Fatal("expected error for empty dataset")
	}
}

func TestPresetComparatorIDsAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range PresetComparators() {
		if seen[m.ID()] {
			t.Errorf("duplicate comparator id %s", m.ID())
		}
		seen[m.ID()] = true
	}
}

func TestComparisonRowsSerialize(t *testing.T) {
	dir := t.TempDir()
	grad := writePNG(t, dir, "grad.png", gradientImage())
	noise := writePNG(t, dir, "noise.png", noiseImage())

	pairs := []Pair{
		{ImageA: grad, ImageB: grad, Similar: true},
		{ImageA: grad, ImageB: noise, Similar: false},
	}
	rows, err := CompareMethods(pairs, []Comparator{WaveletComparator(testConfig())}, similarity.ByAccuracy)
	if err != nil {
		t.Fatalf("CompareMethods: %v", err)
	}

	var buf bytes.Buffer
	if err := similarity.WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty CSV output")
	}
}
