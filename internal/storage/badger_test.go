package storage

import (
	"errors"
	"testing"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/hash"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/retrieval"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/wavelet"
)

func createTestStore(t *testing.T, dir string) *GalleryStore {
	t.Helper()
	store, err := Open(BadgerConfig{Dir: dir, SyncWrites: true})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func testHash(t *testing.T, cfg hash.Config, seed int) *hash.Hash {
	t.Helper()
	img := wavelet.NewMatrix(cfg.Size, cfg.Size)
	for i := range img.Data {
		img.Data[i] = float64((i*seed + seed) % 256)
	}
	h, err := hash.Compute(img, cfg)
	if err != nil {
		t.Fatalf("compute hash: %v", err)
	}
	return h
}

func smallConfig() hash.Config {
	cfg := hash.DefaultConfig()
	cfg.Size = 32
	cfg.Bits = 64
	return cfg
}

func TestGalleryPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := smallConfig()

	gallery := retrieval.NewGallery()
	gallery.Add("a", testHash(t, cfg, 3))
	gallery.Add("b", testHash(t, cfg, 7))
	gallery.Add("c", testHash(t, cfg, 11))

	store := createTestStore(t, dir)
	if err := store.PutGallery(gallery); err != nil {
		t.Fatalf("PutGallery: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	store2 := createTestStore(t, dir)
	defer store2.Close()

	loaded, err := store2.LoadGallery()
	if err != nil {
		t.Fatalf("LoadGallery: %v", err)
	}
	if loaded.Len() != 3 {
		t.Fatalf("loaded %d entries, want 3", loaded.Len())
	}
	want := map[string]*hash.Hash{
		"a": testHash(t, cfg, 3),
		"b": testHash(t, cfg, 7),
		"c": testHash(t, cfg, 11),
	}
	for _, e := range loaded.Entries() {
		if !e.Hash.Equal(want[e.ID]) {
			t.Errorf("entry %s changed across persistence", e.ID)
		}
	}
}

func TestStoredConfigSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := smallConfig()

	store := createTestStore(t, dir)
	if err := store.PutHash("a", testHash(t, cfg, 5)); err != nil {
		t.Fatalf("PutHash: %v", err)
	}
	store.Close()

	store2 := createTestStore(t, dir)
	defer store2.Close()

	stored, err := store2.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if stored == nil {
		t.Fatal("stored config is nil after reopen")
	}
	if stored.ID() != cfg.ID() {
		t.Errorf("stored config %s, want %s", stored.ID(), cfg.ID())
	}
}

func TestConfigOfEmptyStoreIsNil(t *testing.T) {
	store := createTestStore(t, t.TempDir())
	defer store.Close()

	cfg, err := store.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg != nil {
		t.Errorf("config = %v, want nil for empty store", cfg)
	}
}

func TestPutHashRejectsMixedConfigs(t *testing.T) {
	store := createTestStore(t, t.TempDir())
	defer store.Close()

	cfg := smallConfig()
	if err := store.PutHash("a", testHash(t, cfg, 3)); err != nil {
		t.Fatalf("PutHash: %v", err)
	}

	other := cfg
	other.Bits = 128
	if err := store.PutHash("b", testHash(t, other, 3)); !errors.Is(err, ErrConfigMismatch) {
		t.Fatalf("err = %v, want ErrConfigMismatch", err)
	}
}

func TestSearchOverLoadedGallery(t *testing.T) {
	dir := t.TempDir()
	cfg := smallConfig()
	query := testHash(t, cfg, 3)

	inverted := make([]uint8, query.BitLen())
	for i := range inverted {
		inverted[i] = uint8(1 - query.Bit(i))
	}

	store := createTestStore(t, dir)
	if err := store.PutHash("same", testHash(t, cfg, 3)); err != nil {
		t.Fatalf("PutHash: %v", err)
	}
	if err := store.PutHash("other", hash.FromBits(inverted, cfg)); err != nil {
		t.Fatalf("PutHash: %v", err)
	}
	store.Close()

	store2 := createTestStore(t, dir)
	defer store2.Close()
	loaded, err := store2.LoadGallery()
	if err != nil {
		t.Fatalf("LoadGallery: %v", err)
	}

	matches, err := loaded.Search(query, 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if matches[0].ID != "same" || matches[0].Distance != 0 {
		t.Errorf("best match = %s/%d, want same/0", matches[0].ID, matches[0].Distance)
	}
}
