package retrieval

import (
	"sync"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/hash"
)

// HashFunc computes the hash for one gallery source, typically an image
// path.
type HashFunc func(id string) (*hash.Hash, error)

// BuildError records a source that failed during a batch build. Failures
// never abort the batch; the caller decides how to report them.
type BuildError struct {
	ID  string
	Err error
}

// Build hashes every id concurrently and assembles a gallery in the input
// order. Each worker writes into its own pre-sized slot, so no locking is
// needed and the result is independent of scheduling. Failed sources are
// skipped and returned as BuildErrors.
func Build(ids []string, fn HashFunc, workers int) (*Gallery, []BuildError) {
	return BuildWithProgress(ids, fn, workers, nil)
}

// BuildWithProgress is Build with a per-item completion callback, used by
// CLI progress bars. The callback may be invoked from multiple
// goroutines.
func BuildWithProgress(ids []string, fn HashFunc, workers int, progress func()) (*Gallery, []BuildError) {
	if workers < 1 {
		workers = 1
	}

	hashes := make([]*hash.Hash, len(ids))
	errs := make([]error, len(ids))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				hashes[i], errs[i] = fn(ids[i])
				if progress != nil {
					progress()
				}
			}
		}()
	}
	for i := range ids {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	gallery := NewGallery()
	var failures []BuildError
	for i, id := range ids {
		if errs[i] != nil {
			failures = append(failures, BuildError{ID: id, Err: errs[i]})
			continue
		}
		gallery.Add(id, hashes[i])
	}
	return gallery, failures
}
