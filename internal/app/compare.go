package app

import (
	"fmt"
	"image"

	"github.com/corona10/goimagehash"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/hash"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/imageio"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/similarity"
)

// Comparator scores one decoded image pair under a particular hashing
// method, so wavelet configurations and classic baselines evaluate over
// the same dataset.
type Comparator interface {
	ID() string
	Distance(a, b image.Image) (int, error)
}

type waveletComparator struct {
	cfg hash.Config
}

func (w waveletComparator) ID() string {
	return w.cfg.ID()
}

func (w waveletComparator) Distance(a, b image.Image) (int, error) {
	ha, err := hash.Compute(imageio.Normalize(a, w.cfg.Size), w.cfg)
	if err != nil {
		return 0, err
	}
	hb, err := hash.Compute(imageio.Normalize(b, w.cfg.Size), w.cfg)
	if err != nil {
		return 0, err
	}
	return similarity.Distance(ha, hb)
}

// WaveletComparator wraps one hashing configuration.
func WaveletComparator(cfg hash.Config) Comparator {
	return waveletComparator{cfg: cfg}
}

// PresetComparators returns the stock wavelet configurations under study.
func PresetComparators() []Comparator {
	presets := hash.Presets()
	out := make([]Comparator, len(presets))
	for i, cfg := range presets {
		out[i] = waveletComparator{cfg: cfg}
	}
	return out
}

type baselineComparator struct {
	id string
	fn func(image.Image) (*goimagehash.ImageHash, error)
}

func (b baselineComparator) ID() string {
	return b.id
}

func (b baselineComparator) Distance(x, y image.Image) (int, error) {
	hx, err := b.fn(x)
	if err != nil {
		return 0, err
	}
	hy, err := b.fn(y)
	if err != nil {
		return 0, err
	}
	return hx.Distance(hy)
}

// BaselineComparators returns the classic 64-bit perceptual hashes used
// as reference points: average, difference and DCT hashing.
func BaselineComparators() []Comparator {
	return []Comparator{
		baselineComparator{id: "ahash-64", fn: goimagehash.AverageHash},
		baselineComparator{id: "dhash-64", fn: goimagehash.DifferenceHash},
		baselineComparator{id: "phash-64", fn: goimagehash.PerceptionHash},
	}
}

// CompareMethods calibrates every comparator over the same labeled pairs
// and returns one summary row per method. Each distinct image file is
// decoded once.
func CompareMethods(pairs []Pair, methods []Comparator, criterion similarity.Criterion) ([]similarity.ComparisonRow, error) {
	if len(pairs) == 0 {
		return nil, similarity.ErrEmptyDataset
	}

	images := make(map[string]image.Image)
	decode := func(path string) (image.Image, error) {
		if img, ok := images[path]; ok {
			return img, nil
		}
		img, err := imageio.Decode(path)
		if err != nil {
			return nil, err
		}
		images[path] = img
		return img, nil
	}

	rows := make([]similarity.ComparisonRow, 0, len(methods))
	for _, m := range methods {
		labeled := make([]similarity.LabeledPair, len(pairs))
		for i, p := range pairs {
			a, err := decode(p.ImageA)
			if err != nil {
				return nil, err
			}
			b, err := decode(p.ImageB)
			if err != nil {
				return nil, err
			}
			d, err := m.Distance(a, b)
			if err != nil {
				return nil, fmt.Errorf("%s on (%s, %s): %w", m.ID(), p.ImageA, p.ImageB, err)
			}
			labeled[i] = similarity.LabeledPair{A: p.ImageA, B: p.ImageB, Similar: p.Similar, Distance: d}
		}

		ev, err := similarity.Evaluate(labeled, criterion)
		if err != nil {
			return nil, err
		}
		rows = append(rows, similarity.Row(m.ID(), ev))
	}
	return rows, nil
}
