// Package token provides the two token-counting paths used by promptdeck:
// a cheap size-derived estimate for UI previews and an exact tokenizer-backed
// count for the assembled document.
package token

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// encodingName is the tiktoken encoding used for exact counts.
const encodingName = "cl100k_base"

// Budget is the default token budget the UI reports usage against.
const Budget = 200_000

var (
	encOnce sync.Once
	enc     *tiktoken.Tiktoken
	encErr  error
)

// Estimate derives a rough token count from a byte count (ceil(n/4)).
// It exists so a preview can be shown without reading file contents;
// it is never the value used for final reporting.
func Estimate(sizeBytes int64) int {
	if sizeBytes <= 0 {
		return 0
	}
	return int((sizeBytes + 3) / 4)
}

// Count returns the authoritative token count for text.
// The tokenizer is loaded once; if the encoding cannot be obtained
// (e.g. no cached BPE data and no network), Count falls back to the
// character heuristic so a build never fails on counting.
func Count(text string) int {
	encOnce.Do(func() {
		enc, encErr = tiktoken.GetEncoding(encodingName)
	})
	if encErr != nil || enc == nil {
		return Estimate(int64(len(text)))
	}
	return len(enc.Encode(text, nil, nil))
}
