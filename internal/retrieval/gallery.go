// Package retrieval ranks gallery hashes against a query hash by Hamming
// distance.
package retrieval

import (
	"errors"
	"sort"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/hash"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/similarity"
)

// ErrEmptyGallery is returned when retrieval is attempted against a
// gallery with zero entries.
var ErrEmptyGallery = errors.New("retrieval: empty gallery")

// Entry is one precomputed gallery hash.
type Entry struct {
	ID   string
	Hash *hash.Hash
}

// Gallery is the reference collection searched during retrieval. It is
// built once in batch and read-only afterwards.
type Gallery struct {
	entries []Entry
}

// NewGallery returns an empty gallery.
func NewGallery() *Gallery {
	return &Gallery{}
}

// Add appends an entry. Insertion order is preserved and breaks distance
// ties during search.
func (g *Gallery) Add(id string, h *hash.Hash) {
	g.entries = append(g.entries, Entry{ID: id, Hash: h})
}

// Len returns the number of entries.
func (g *Gallery) Len() int {
	return len(g.entries)
}

// Entries returns a copy of the entry list in insertion order.
func (g *Gallery) Entries() []Entry {
	out := make([]Entry, len(g.entries))
	copy(out, g.entries)
	return out
}

// Match is one retrieval result: the gallery entry, its Hamming distance
// to the query, and a similarity score of 1 - distance/bits.
type Match struct {
	ID         string
	Distance   int
	Similarity float64
}

// Search returns the k entries closest to the query by ascending Hamming
// distance, ties broken by insertion order. The scan is linear in gallery
// size, which is fine for the hundreds-to-thousands range this targets.
func (g *Gallery) Search(query *hash.Hash, k int) ([]Match, error) {
	return g.search(query, k, -1)
}

// SearchWithin is Search with a maximum distance cutoff.
func (g *Gallery) SearchWithin(query *hash.Hash, k, maxDistance int) ([]Match, error) {
	return g.search(query, k, maxDistance)
}

func (g *Gallery) search(query *hash.Hash, k, maxDistance int) ([]Match, error) {
	if len(g.entries) == 0 {
		return nil, ErrEmptyGallery
	}

	matches := make([]Match, 0, len(g.entries))
	for _, e := range g.entries {
		d, err := similarity.Distance(query, e.Hash)
		if err != nil {
			return nil, err
		}
		if maxDistance >= 0 && d > maxDistance {
			continue
		}
		matches = append(matches, Match{
			ID:         e.ID,
			Distance:   d,
			Similarity: 1 - float64(d)/float64(query.BitLen()),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	if k < 0 {
		k = 0
	}
	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k], nil
}
