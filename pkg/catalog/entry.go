// Package catalog maintains the flat list of discovered files for the active
// project root and the folder tree projected over it.
//
// The flat entry slice is the single source of truth. The tree holds only
// indices into it and is rebuilt, never patched, on every structural change.
package catalog

import "strings"

// Entry represents one on-disk file relative to the active root.
type Entry struct {
	Path     string  // absolute path
	RelPath  string  // slash-normalized path relative to the root; unique per snapshot
	Selected bool    // user-mutable selection flag
	Content  *string // lazily loaded content; nil until loaded, cleared on refresh
	Tokens   int     // size-derived estimate at scan time, exact after a load
}

// BaseName returns the final path component of the entry's relative path.
func (e *Entry) BaseName() string {
	if i := strings.LastIndexByte(e.RelPath, '/'); i >= 0 {
		return e.RelPath[i+1:]
	}
	return e.RelPath
}
