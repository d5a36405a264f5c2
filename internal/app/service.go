// Package app composes decoding, decomposition and quantization into the
// operations the command line tools and the HTTP server expose.
package app

import (
	"fmt"
	"image"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/hash"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/imageio"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/retrieval"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/similarity"
)

// Service runs the hashing pipeline under one fixed configuration. Every
// hash it produces is comparable with every other.
type Service struct {
	cfg    hash.Config
	logger *zap.Logger
}

// NewService validates the configuration and returns a ready service. A
// nil logger disables logging.
func NewService(cfg hash.Config, logger *zap.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cfg: cfg, logger: logger}, nil
}

// Config returns the service's hashing configuration.
func (s *Service) Config() hash.Config {
	return s.cfg
}

// HashImage hashes an already decoded image.
func (s *Service) HashImage(img image.Image) (*hash.Hash, error) {
	return hash.Compute(imageio.Normalize(img, s.cfg.Size), s.cfg)
}

// HashBytes decodes in-memory image data and hashes it.
func (s *Service) HashBytes(data []byte) (*hash.Hash, error) {
	img, err := imageio.DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	return s.HashImage(img)
}

// HashFile decodes an image file and hashes it.
func (s *Service) HashFile(path string) (*hash.Hash, error) {
	img, err := imageio.Decode(path)
	if err != nil {
		return nil, err
	}
	return s.HashImage(img)
}

// CompareFiles hashes two image files and returns their Hamming distance.
func (s *Service) CompareFiles(a, b string) (int, error) {
	ha, err := s.HashFile(a)
	if err != nil {
		return 0, err
	}
	hb, err := s.HashFile(b)
	if err != nil {
		return 0, err
	}
	return similarity.Distance(ha, hb)
}

// BuildGallery hashes every path concurrently into a gallery keyed by the
// paths themselves. Failed images are skipped and reported, never fatal.
func (s *Service) BuildGallery(paths []string, workers int, progress func()) (*retrieval.Gallery, []retrieval.BuildError) {
	gallery, failures := retrieval.BuildWithProgress(paths, s.HashFile, workers, progress)
	for _, f := range failures {
		s.logger.Warn("image skipped", zap.String("path", f.ID), zap.Error(f.Err))
	}
	return gallery, failures
}

// BuildGalleryDir walks a directory tree and builds a gallery over every
// supported image in it, keyed by path relative to the root.
func (s *Service) BuildGalleryDir(dir string, workers int, progress func()) (*retrieval.Gallery, []retrieval.BuildError, error) {
	paths, err := imageio.CollectImages(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("collect images in %s: %w", dir, err)
	}

	ids := make([]string, len(paths))
	byID := make(map[string]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			rel = p
		}
		ids[i] = rel
		byID[rel] = p
	}

	fn := func(id string) (*hash.Hash, error) {
		return s.HashFile(byID[id])
	}
	gallery, failures := retrieval.BuildWithProgress(ids, fn, workers, progress)
	for _, f := range failures {
		s.logger.Warn("image skipped", zap.String("path", byID[f.ID]), zap.Error(f.Err))
	}
	return gallery, failures, nil
}

// EvaluatePairs hashes every image referenced by the labeled pairs,
// computes the pairwise distances and calibrates a decision threshold.
// Each image is hashed once even when it appears in several pairs.
func (s *Service) EvaluatePairs(pairs []Pair, criterion similarity.Criterion) (*similarity.Evaluation, []similarity.LabeledPair, error) {
	labeled, err := s.DistancePairs(pairs)
	if err != nil {
		return nil, nil, err
	}
	ev, err := similarity.Evaluate(labeled, criterion)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("threshold calibrated",
		zap.String("config", s.cfg.ID()),
		zap.Int("pairs", len(labeled)),
		zap.Int("threshold", ev.Best.Threshold),
		zap.Float64("accuracy", ev.Best.Accuracy))
	return ev, labeled, nil
}

// DistancePairs computes the Hamming distance for each labeled pair.
func (s *Service) DistancePairs(pairs []Pair) ([]similarity.LabeledPair, error) {
	cache := make(map[string]*hash.Hash)
	get := func(path string) (*hash.Hash, error) {
		if h, ok := cache[path]; ok {
			return h, nil
		}
		h, err := s.HashFile(path)
		if err != nil {
			return nil, fmt.Errorf("hash %s: %w", path, err)
		}
		cache[path] = h
		return h, nil
	}

	labeled := make([]similarity.LabeledPair, len(pairs))
	for i, p := range pairs {
		ha, err := get(p.ImageA)
		if err != nil {
			return nil, err
		}
		hb, err := get(p.ImageB)
		if err != nil {
			return nil, err
		}
		d, err := similarity.Distance(ha, hb)
		if err != nil {
			return nil, err
		}
		labeled[i] = similarity.LabeledPair{A: p.ImageA, B: p.ImageB, Similar: p.Similar, Distance: d}
	}
	return labeled, nil
}
