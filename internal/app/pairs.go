package app

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrBadPairsFile is returned when a ground-truth CSV cannot be parsed.
var ErrBadPairsFile = errors.New("app: malformed pairs file")

// Pair is one labeled image pair from a ground-truth file.
type Pair struct {
	ImageA  string
	ImageB  string
	Similar bool
}

var pairsHeader = []string{"image1", "image2", "label"}

// LoadPairs reads a ground-truth CSV with an "image1,image2,label" header.
// Labels accept 1/0, true/false and similar/dissimilar.
func LoadPairs(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPairsFile, err)
	}
	if len(records) == 0 || !isPairsHeader(records[0]) {
		return nil, fmt.Errorf("%w: missing %q header", ErrBadPairsFile, strings.Join(pairsHeader, ","))
	}

	pairs := make([]Pair, 0, len(records)-1)
	for i, rec := range records[1:] {
		similar, err := parseLabel(rec[2])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadPairsFile, i+2, err)
		}
		pairs = append(pairs, Pair{ImageA: rec[0], ImageB: rec[1], Similar: similar})
	}
	return pairs, nil
}

// SavePairs writes a ground-truth CSV readable by LoadPairs.
func SavePairs(path string, pairs []Pair) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(pairsHeader); err != nil {
		return err
	}
	for _, p := range pairs {
		label := "0"
		if p.Similar {
			label = "1"
		}
		if err := w.Write([]string{p.ImageA, p.ImageB, label}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func isPairsHeader(rec []string) bool {
	if len(rec) != len(pairsHeader) {
		return false
	}
	for i, want := range pairsHeader {
		if strings.ToLower(strings.TrimSpace(rec[i])) != want {
			return false
		}
	}
	return true
}

func parseLabel(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "similar":
		return true, nil
	case "0", "false", "dissimilar":
		return false, nil
	}
	return false, fmt.Errorf("unknown label %q", s)
}
