package retrieval

import (
	"errors"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/hash"
)

// ErrNoQueries is returned when retrieval evaluation runs over zero
// queries.
var ErrNoQueries = errors.New("retrieval: no labeled queries")

// LabeledQuery pairs a query hash with its ground-truth class.
type LabeledQuery struct {
	ID    string
	Class string
	Hash  *hash.Hash
}

// QueryPrecision is one query's retrieval quality: the fraction of its
// top-k matches whose gallery class equals the query's class.
type QueryPrecision struct {
	ID        string
	Precision float64
}

// PrecisionAtK runs every query against the gallery and scores each by
// the share of same-class entries among its top-k matches. classes maps
// gallery entry IDs to class labels; matches without a class count as
// misses. The returned mean is the headline retrieval metric.
func PrecisionAtK(g *Gallery, queries []LabeledQuery, classes map[string]string, k int) (float64, []QueryPrecision, error) {
	if len(queries) == 0 {
		return 0, nil, ErrNoQueries
	}

	perQuery := make([]QueryPrecision, len(queries))
	var sum float64
	for i, q := range queries {
		matches, err := g.Search(q.Hash, k)
		if err != nil {
			return 0, nil, err
		}
		hits := 0
		for _, m := range matches {
			if classes[m.ID] == q.Class {
				hits++
			}
		}
		p := 0.0
		if len(matches) > 0 {
			p = float64(hits) / float64(len(matches))
		}
		perQuery[i] = QueryPrecision{ID: q.ID, Precision: p}
		sum += p
	}
	return sum / float64(len(queries)), perQuery, nil
}
