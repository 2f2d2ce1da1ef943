package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const mirrorWorkers = 4

// MirrorAll uploads several derived images concurrently. The returned URLs
// line up with paths; failed entries are empty and reported in the error.
func (s *StorageService) MirrorAll(ctx context.Context, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return []string{}, nil
	}

	urls := make([]string, len(paths))
	errs := make([]error, len(paths))

	numWorkers := min(mirrorWorkers, len(paths))

	jobs := make(chan int, len(paths))
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				urls[i], errs[i] = s.Mirror(ctx, paths[i])
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	wg.Wait()

	var failed []string
	for i, err := range errs {
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", paths[i], err))
		}
	}

	if len(failed) > 0 {
		return urls, fmt.Errorf("failed to mirror %d files: %s", len(failed), strings.Join(failed, "; "))
	}

	return urls, nil
}
