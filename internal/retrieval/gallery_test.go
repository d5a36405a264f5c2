package retrieval

import (
	"errors"
	"testing"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/hash"
)

// hashAtDistance builds a 16-bit hash with exactly d leading one bits, so
// its distance to the all-zero hash is d.
func hashAtDistance(d int) *hash.Hash {
	bits := make([]uint8, 16)
	for i := 0; i < d; i++ {
		bits[i] = 1
	}
	return hash.FromBits(bits, hash.DefaultConfig())
}

func TestSearchTopK(t *testing.T) {
	query := hashAtDistance(0)
	g := NewGallery()
	g.Add("far", hashAtDistance(10))
	g.Add("close", hashAtDistance(2))
	g.Add("mid", hashAtDistance(7))

	matches, err := g.Search(query, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].ID != "close" || matches[0].Distance != 2 {
		t.Errorf("first match = %s/%d, want close/2", matches[0].ID, matches[0].Distance)
	}
	if matches[1].ID != "mid" || matches[1].Distance != 7 {
		t.Errorf("second match = %s/%d, want mid/7", matches[1].ID, matches[1].Distance)
	}
	if matches[0].Similarity != 1-2.0/16.0 {
		t.Errorf("similarity = %v, want %v", matches[0].Similarity, 1-2.0/16.0)
	}
}

func TestSearchEmptyGallery(t *testing.T) {
	g := NewGallery()
	if _, err := g.Search(hashAtDistance(0), 5); !errors.Is(err, ErrEmptyGallery) {
		t.Fatalf("err = %v, want ErrEmptyGallery", err)
	}
}

func TestSearchStableTies(t *testing.T) {
	query := hashAtDistance(0)
	g := NewGallery()
	g.Add("first", hashAtDistance(3))
	g.Add("second", hashAtDistance(3))
	g.Add("third", hashAtDistance(3))

	matches, err := g.Search(query, 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if matches[i].ID != want {
			t.Errorf("match %d = %s, want %s (insertion order)", i, matches[i].ID, want)
		}
	}
}

func TestSearchClampsK(t *testing.T) {
	g := NewGallery()
	g.Add("only", hashAtDistance(1))

	matches, err := g.Search(hashAtDistance(0), 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("got %d matches, want 1", len(matches))
	}
}

func TestSearchWithinCutoff(t *testing.T) {
	query := hashAtDistance(0)
	g := NewGallery()
	g.Add("close", hashAtDistance(2))
	g.Add("far", hashAtDistance(12))

	matches, err := g.SearchWithin(query, 5, 5)
	if err != nil {
		t.Fatalf("SearchWithin: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "close" {
		t.Errorf("matches = %v, want only close", matches)
	}
}

func TestSearchLengthMismatch(t *testing.T) {
	g := NewGallery()
	g.Add("entry", hashAtDistance(1))

	short := hash.FromBits(make([]uint8, 8), hash.DefaultConfig())
	if _, err := g.Search(short, 1); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestBuildPartialFailure(t *testing.T) {
	ids := []string{"a", "bad", "b", "c"}
	fn := func(id string) (*hash.Hash, error) {
		if id == "bad" {
			return nil, errors.New("decode failed")
		}
		return hashAtDistance(len(id)), nil
	}

	g, failures := Build(ids, fn, 3)
	if g.Len() != 3 {
		t.Errorf("gallery size = %d, want 3", g.Len())
	}
	if len(failures) != 1 || failures[0].ID != "bad" {
		t.Fatalf("failures = %v, want one for %q", failures, "bad")
	}
	// Input order survives concurrent hashing.
	entries := g.Entries()
	for i, want := range []string{"a", "b", "c"} {
		if entries[i].ID != want {
			t.Errorf("entry %d = %s, want %s", i, entries[i].ID, want)
		}
	}
}

func TestBuildOrderIndependentOfWorkers(t *testing.T) {
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = string(rune('a' + i%26))
	}
	fn := func(id string) (*hash.Hash, error) {
		return hashAtDistance(int(id[0]) % 16), nil
	}

	serial, _ := Build(ids, fn, 1)
	parallel, _ := Build(ids, fn, 8)
	if serial.Len() != parallel.Len() {
		t.Fatalf("sizes differ: %d vs %d", serial.Len(), parallel.Len())
	}
	se, pe := serial.Entries(), parallel.Entries()
	for i := range se {
		if se[i].ID != pe[i].ID || !se[i].Hash.Equal(pe[i].Hash) {
			t.Fatalf("entry %d differs between worker counts", i)
		}
	}
}
