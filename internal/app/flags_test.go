package app

import (
	"testing"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/hash"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/wavelet"
)

func TestBuildConfig(t *testing.T) {
	cfg, err := BuildConfig("db2", 3, "all", "mean", 128, 128)
	if err != nil {
		t.Fatalf("BuildConfig: %v", err)
	}
	if cfg.Family != wavelet.DB2 || cfg.Level != 3 || cfg.Mode != hash.AllSubbands {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Quant != hash.Mean || cfg.Bits != 128 || cfg.Size != 128 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestBuildConfigDefaults(t *testing.T) {
	cfg, err := BuildConfig("haar", 0, "approx", "median", 0, 0)
	if err != nil {
		t.Fatalf("BuildConfig: %v", err)
	}
	want := hash.DefaultConfig()
	if cfg != want {
		t.Errorf("config = %+v, want defaults %+v", cfg, want)
	}
}

func TestBuildConfigRejectsUnknownFamily(t *testing.T) {
	if _, err := BuildConfig("sym4", 2, "approx", "median", 0, 0); err == nil {
		t.Fatal("expected error for unknown family")
	}
}

func TestBuildConfigRejectsInvalidCombination(t *testing.T) {
	// Level 9 exceeds what a 256 pixel side can sustain under haar.
	if _, err := BuildConfig("haar", 9, "approx", "median", 0, 0); err == nil {
		t.Fatal("expected error for level past the maximum")
	}
}
