package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPairsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.csv")
	want := []Pair{
		{ImageA: "a.png", ImageB: "b.png", Similar: true},
		{ImageA: "a.png", ImageB: "c.png", Similar: false},
	}

	if err := SavePairs(path, want); err != nil {
		t.Fatalf("SavePairs: %v", err)
	}
	got, err := LoadPairs(path)
	if err != nil {
		t.Fatalf("LoadPairs: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d pairs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadPairsLabelSpellings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.csv")
	content := "image1,image2,label\na,b,true\na,c,similar\na,d,0\na,e,dissimilar\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	pairs, err := LoadPairs(path)
	if err != nil {
		t.Fatalf("LoadPairs: %v", err)
	}
	wantSimilar := []bool{true, true, false, false}
	for i, want := range wantSimilar {
		if pairs[i].Similar != want {
			t.Errorf("pair %d similar = %v, want %v", i, pairs[i].Similar, want)
		}
	}
}

func TestLoadPairsRejectsMissingHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.csv")
	if err := os.WriteFile(path, []byte("a,b,1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadPairs(path); !errors.Is(err, ErrBadPairsFile) {
		t.Fatalf("err = %v, want ErrBadPairsFile", err)
	}
}

func TestLoadPairsRejectsBadLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.csv")
	if err := os.WriteFile(path, []byte("image1,image2,label\na,b,maybe\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadPairs(path); !errors.Is(err, ErrBadPairsFile) {
		t.Fatalf("err = %v, want ErrBadPairsFile", err)
	}
}

func TestLoadPairsMissingFile(t *testing.T) {
	if _, err := LoadPairs(filepath.Join(t.TempDir(), "absent.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}
