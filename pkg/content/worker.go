package content

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"promptdeck/pkg/catalog"
	"promptdeck/pkg/logging"
	"promptdeck/pkg/token"
)

// loadResult carries one worker's finished read back to the caller.
type loadResult struct {
	index   int
	content string
	tokens  int
}

// LoadSelected loads content for every selected entry in parallel and writes
// the results back into the catalog slice.
//
// Workers only read their own entry's path; nothing shared is mutated during
// the parallel phase. Results are applied after all workers have joined, so
// the caller never observes a half-populated selection. A file that fails to
// read contributes an inline error marker rather than aborting the batch.
// The per-entry token count is corrected from the scan-time estimate to the
// exact count of the loaded text.
func LoadSelected(entries []catalog.Entry, maxBytes int64, maxWorkers int, logger *zap.Logger) {
	logger = logging.Or(logger)

	selected := make([]int, 0, len(entries))
	for i := range entries {
		if entries[i].Selected {
			selected = append(selected, i)
		}
	}
	if len(selected) == 0 {
		return
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	if maxWorkers > len(selected) {
		maxWorkers = len(selected)
	}
	logger.Debug("Loading selected files",
		zap.Int("files", len(selected)), zap.Int("workers", maxWorkers))

	jobs := make(chan int, len(selected))
	results := make(chan loadResult, len(selected))
	var wg sync.WaitGroup

	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				text, err := LoadCapped(entries[i].Path, maxBytes)
				if err != nil {
					logger.Warn("Failed to read file",
						zap.String("file", entries[i].Path), zap.Error(err))
					text = fmt.Sprintf("[error reading %s: %v]", entries[i].RelPath, err)
				}
				results <- loadResult{index: i, content: text, tokens: token.Count(text)}
			}
		}()
	}

	for _, i := range selected {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	loaded := make([]loadResult, 0, len(selected))
	for res := range results {
		loaded = append(loaded, res)
	}

	// All workers joined; safe to write back into the shared slice.
	for _, res := range loaded {
		text := res.content
		entries[res.index].Content = &text
		entries[res.index].Tokens = res.tokens
	}
}
