// Package ignore compiles .promptignore files into matchable rule sets.
//
// A rule set is immutable once built: editing the ignore file or switching
// folders rebuilds the whole set rather than mutating it in place, so
// concurrent readers never observe a partially updated set.
package ignore

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"promptdeck/pkg/logging"
)

const (
	// FileName is the legacy root-level ignore file.
	FileName = ".promptignore"
	// ProjectDir is the project-scoped settings directory.
	ProjectDir = ".prompt"
)

// compiledPattern is one doublestar pattern plus a directory-only flag.
// Directory rules ("build/") match the directory itself only when the
// candidate is a directory; the companion "/**" pattern catches contents.
type compiledPattern struct {
	pattern string
	dirOnly bool
}

// RuleSet is an ordered, immutable set of compiled ignore patterns.
type RuleSet struct {
	patterns []compiledPattern
	source   string // file the set was compiled from; empty for the defaults
}

// defaultLines is the fixed fallback applied when no ignore file exists.
var defaultLines = []string{
	"target/",
	".git/",
	"node_modules/",
	"*.tmp",
}

// Default returns the fixed default rule set.
func Default() *RuleSet {
	return compileLines(defaultLines, "")
}

// Locate searches root and each parent directory for an ignore file.
// At every level the project-scoped <dir>/.prompt/.promptignore wins over
// the legacy <dir>/.promptignore. Returns the path and true if found.
func Locate(root string) (string, bool) {
	dir := filepath.Clean(root)
	for {
		candidates := []string{
			filepath.Join(dir, ProjectDir, FileName),
			filepath.Join(dir, FileName),
		}
		for _, c := range candidates {
			if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
				return c, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load resolves and compiles the ignore rules for root, falling back to the
// default set when no ignore file can be found or read.
func Load(root string, logger *zap.Logger) *RuleSet {
	logger = logging.Or(logger)
	path, ok := Locate(root)
	if !ok {
		logger.Debug("No ignore file found, using defaults", zap.String("root", root))
		return Default()
	}
	rs, err := CompileFile(path)
	if err != nil {
		logger.Warn("Failed to read ignore file, using defaults",
			zap.String("file", path), zap.Error(err))
		return Default()
	}
	logger.Debug("Compiled ignore file",
		zap.String("file", path), zap.Int("patterns", len(rs.patterns)))
	return rs
}

// CompileFile compiles one ignore file into a rule set.
func CompileFile(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rs := Compile(f)
	rs.source = path
	return rs, nil
}

// Compile parses ignore rules line by line from r. Blank lines and lines
// starting with '#' are skipped; malformed glob lines are dropped
// individually and never abort the rest of the file.
func Compile(r io.Reader) *RuleSet {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return compileLines(lines, "")
}

func compileLines(lines []string, source string) *RuleSet {
	rs := &RuleSet{source: source}
	for _, line := range lines {
		expanded, ok := expandLine(line)
		if !ok {
			continue
		}
		rs.patterns = append(rs.patterns, expanded...)
	}
	return rs
}

// expandLine turns one rule line into its match patterns, per the line's
// shape. The second return is false for blank, comment, and malformed lines.
func expandLine(line string) ([]compiledPattern, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false
	}

	var out []compiledPattern
	switch {
	case strings.HasSuffix(trimmed, "/"):
		// Directory rule: the directory itself plus everything beneath it.
		// The contents pattern ends in /**/* rather than /** because a bare
		// trailing /** also matches zero segments, which would catch a plain
		// file sharing the directory's name.
		name := strings.TrimSuffix(trimmed, "/")
		out = []compiledPattern{
			{pattern: "**/" + name, dirOnly: true},
			{pattern: "**/" + name + "/**/*"},
		}
	case strings.Contains(trimmed, "/"):
		// Path rule, matched at any depth from the root.
		out = []compiledPattern{{pattern: "**/" + trimmed}}
	case strings.ContainsAny(trimmed, "*?["):
		// Basename glob.
		out = []compiledPattern{{pattern: "**/" + trimmed}}
	default:
		// Bare name: a file or directory of that exact name anywhere,
		// including everything under a directory of that name.
		out = []compiledPattern{
			{pattern: "**/" + trimmed},
			{pattern: "**/" + trimmed + "/**"},
		}
	}

	for _, p := range out {
		if !doublestar.ValidatePattern(p.pattern) {
			return nil, false
		}
	}
	return out, true
}

// Match reports whether the slash-normalized root-relative path matches any
// rule. The test is pure: it never touches the filesystem, so callers must
// pass isDir from their own directory listing.
func (rs *RuleSet) Match(relPath string, isDir bool) bool {
	if rs == nil {
		return false
	}
	path := strings.TrimPrefix(filepath.ToSlash(relPath), "./")
	if path == "" || path == "." {
		return false
	}
	for _, p := range rs.patterns {
		if p.dirOnly && !isDir {
			continue
		}
		if doublestar.MatchUnvalidated(p.pattern, path) {
			return true
		}
	}
	return false
}

// Len returns the number of compiled patterns.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.patterns)
}

// Source returns the file the set was compiled from, or "" for the defaults.
func (rs *RuleSet) Source() string {
	if rs == nil {
		return ""
	}
	return rs.source
}
