package catalog

import (
	"sort"
	"strings"
)

// Tree is a folder-keyed recursive grouping of catalog entries. It owns
// nothing: Files holds indices into the flat entry slice, and the whole
// tree is rebuilt from the catalog on every render.
type Tree struct {
	Folders map[string]*Tree
	Files   []int
}

func newTree() *Tree {
	return &Tree{Folders: make(map[string]*Tree)}
}

// BuildTree groups entries by splitting relative paths on '/'. Every entry
// lands in exactly one node, reachable by its path components.
func BuildTree(entries []Entry) *Tree {
	root := newTree()
	for i := range entries {
		parts := splitPath(entries[i].RelPath)
		node := root
		for j, part := range parts {
			if j == len(parts)-1 {
				node.Files = append(node.Files, i)
				continue
			}
			child, ok := node.Folders[part]
			if !ok {
				child = newTree()
				node.Folders[part] = child
			}
			node = child
		}
	}
	return root
}

func splitPath(rel string) []string {
	raw := strings.Split(strings.ReplaceAll(rel, "\\", "/"), "/")
	parts := raw[:0]
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// SortTree alphabetizes each node's file list by final path component.
// Folder ordering needs no sorting here: folder names are sorted wherever
// the map is iterated.
func SortTree(tree *Tree, entries []Entry) {
	sort.Slice(tree.Files, func(a, b int) bool {
		return entries[tree.Files[a]].BaseName() < entries[tree.Files[b]].BaseName()
	})
	for _, sub := range tree.Folders {
		SortTree(sub, entries)
	}
}

// SelectionCounts sums total and selected file counts across the node and
// all descendants, for rendering a folder checkbox as checked, unchecked,
// or indeterminate.
func SelectionCounts(tree *Tree, entries []Entry) (total, selected int) {
	total = len(tree.Files)
	for _, i := range tree.Files {
		if entries[i].Selected {
			selected++
		}
	}
	for _, sub := range sortedFolders(tree) {
		subTotal, subSelected := SelectionCounts(tree.Folders[sub], entries)
		total += subTotal
		selected += subSelected
	}
	return total, selected
}

// TokenSum sums entry token counts across the node and all descendants.
func TokenSum(tree *Tree, entries []Entry) int {
	sum := 0
	for _, i := range tree.Files {
		sum += entries[i].Tokens
	}
	for _, sub := range tree.Folders {
		sum += TokenSum(sub, entries)
	}
	return sum
}

// SetSelection forces every entry under the node to value. This is the only
// tree-driven mutation of the flat catalog.
func SetSelection(tree *Tree, entries []Entry, value bool) {
	for _, i := range tree.Files {
		entries[i].Selected = value
	}
	for _, sub := range tree.Folders {
		SetSelection(sub, entries, value)
	}
}

// Render serializes the tree as a human-readable nested listing rooted at
// rootName. At each level folders come before files, each group
// alphabetized, with box-drawing connectors showing sibling position.
func Render(tree *Tree, entries []Entry, rootName string) string {
	var b strings.Builder
	b.WriteString(rootName)
	b.WriteString("/\n")
	renderNode(&b, tree, entries, "")
	return b.String()
}

func renderNode(b *strings.Builder, tree *Tree, entries []Entry, prefix string) {
	folders := sortedFolders(tree)

	files := make([]string, 0, len(tree.Files))
	for _, i := range tree.Files {
		files = append(files, entries[i].BaseName())
	}
	sort.Strings(files)

	total := len(folders) + len(files)
	pos := 0

	writeLine := func(name string, last bool) string {
		connector := "├─ "
		extension := "│   "
		if last {
			connector = "└─ "
			extension = "    "
		}
		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(name)
		b.WriteString("\n")
		return prefix + extension
	}

	for _, name := range folders {
		pos++
		childPrefix := writeLine(name, pos == total)
		renderNode(b, tree.Folders[name], entries, childPrefix)
	}
	for _, name := range files {
		pos++
		writeLine(name, pos == total)
	}
}

func sortedFolders(tree *Tree) []string {
	names := make([]string, 0, len(tree.Folders))
	for name := range tree.Folders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
