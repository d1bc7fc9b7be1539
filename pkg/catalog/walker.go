package catalog

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"promptdeck/pkg/ignore"
	"promptdeck/pkg/logging"
)

// WalkStats reports what a scan saw and dropped.
type WalkStats struct {
	Scanned         int  // regular files encountered (kept or ignored)
	IgnoredFiles    int  // files dropped by an ignore rule
	IgnoredDirs     int  // directories pruned by an ignore rule (each counted once)
	SymlinksSkipped int  // symlinks skipped, never followed
	Truncated       bool // the file cap was reached and scanning stopped
}

// Walk scans root for regular files, bounded by cap, applying rules.
//
// It uses an explicit work-stack of pending directories rather than call
// recursion, so arbitrarily deep trees cannot overflow the stack. Symlinks
// are never followed, which also makes cycles impossible. Unreadable
// directories are skipped, never fatal. Scanning stops the moment cap kept
// files have been collected, even mid-directory; truncation is reported via
// stats, not as an error.
func Walk(root string, cap int, rules *ignore.RuleSet, logger *zap.Logger) ([]string, WalkStats) {
	logger = logging.Or(logger)

	var files []string
	var stats WalkStats

	dirs := []string{root}
	for len(dirs) > 0 {
		dir := dirs[len(dirs)-1]
		dirs = dirs[:len(dirs)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.Debug("Skipping unreadable directory",
				zap.String("dir", dir), zap.Error(err))
			continue
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			rel, err := filepath.Rel(root, path)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			if entry.Type()&os.ModeSymlink != 0 {
				stats.SymlinksSkipped++
				continue
			}

			if entry.IsDir() {
				if rules.Match(rel, true) {
					stats.IgnoredDirs++
					continue
				}
				dirs = append(dirs, path)
				continue
			}

			if !entry.Type().IsRegular() {
				continue
			}

			stats.Scanned++
			if rules.Match(rel, false) {
				stats.IgnoredFiles++
				continue
			}

			files = append(files, path)
			if len(files) >= cap {
				stats.Truncated = true
				logger.Warn("File cap reached, scan truncated",
					zap.Int("cap", cap), zap.String("root", root))
				return files[:cap], stats
			}
		}
	}

	return files, stats
}
