package catalog

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"promptdeck/pkg/ignore"
	"promptdeck/pkg/logging"
	"promptdeck/pkg/token"
)

// Catalog is the flat collection of discovered file entries for one root.
// A refresh replaces the catalog wholesale; it is never mutated in place
// beyond the per-entry selection flag and loaded content.
type Catalog struct {
	Root    string
	Entries []Entry
	Stats   WalkStats
}

// Refresh scans root and builds a fresh catalog. Selection state carries
// forward from prev for any entry whose absolute path is unchanged; new
// files default to unselected. Content is always dropped, and the token
// column reverts to the size-derived estimate until contents are reloaded.
func Refresh(root string, maxFiles int, rules *ignore.RuleSet, prev *Catalog, logger *zap.Logger) *Catalog {
	logger = logging.Or(logger)

	selected := make(map[string]bool)
	if prev != nil {
		for i := range prev.Entries {
			if prev.Entries[i].Selected {
				selected[prev.Entries[i].Path] = true
			}
		}
	}

	paths, stats := Walk(root, maxFiles, rules, logger)

	c := &Catalog{Root: root, Stats: stats, Entries: make([]Entry, 0, len(paths))}
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		var estimate int
		if info, err := os.Stat(path); err == nil {
			estimate = token.Estimate(info.Size())
		}

		c.Entries = append(c.Entries, Entry{
			Path:     path,
			RelPath:  rel,
			Selected: selected[path],
			Tokens:   estimate,
		})
	}

	logger.Info("Catalog refreshed",
		zap.String("root", root),
		zap.Int("files", len(c.Entries)),
		zap.Int("scanned", stats.Scanned),
		zap.Int("ignoredFiles", stats.IgnoredFiles),
		zap.Int("ignoredDirs", stats.IgnoredDirs),
		zap.Int("symlinksSkipped", stats.SymlinksSkipped),
		zap.Bool("truncated", stats.Truncated))
	return c
}

// Selected returns the indices of all selected entries.
func (c *Catalog) Selected() []int {
	var out []int
	for i := range c.Entries {
		if c.Entries[i].Selected {
			out = append(out, i)
		}
	}
	return out
}
