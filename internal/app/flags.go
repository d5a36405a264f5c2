package app

import (
	"github.com/Algoculus/UTH-CVIP-assignments/internal/hash"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/wavelet"
)

// BuildConfig assembles a validated hashing configuration from the
// textual knobs the command line tools expose. Zero values of bits and
// size keep the stock defaults.
func BuildConfig(family string, level int, mode, quant string, bits, size int) (hash.Config, error) {
	cfg := hash.DefaultConfig()

	f, err := wavelet.ParseFamily(family)
	if err != nil {
		return hash.Config{}, err
	}
	cfg.Family = f

	m, err := hash.ParseSubbandMode(mode)
	if err != nil {
		return hash.Config{}, err
	}
	cfg.Mode = m

	q, err := hash.ParseQuantMethod(quant)
	if err != nil {
		return hash.Config{}, err
	}
	cfg.Quant = q

	if level > 0 {
		cfg.Level = level
	}
	if bits > 0 {
		cfg.Bits = bits
	}
	if size > 0 {
		cfg.Size = size
	}
	return cfg, cfg.Validate()
}
