package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureEntries() []Entry {
	return []Entry{
		{RelPath: "z.txt", Tokens: 5},
		{RelPath: "b/nested.txt", Tokens: 7},
		{RelPath: "a/deep/leaf.txt", Tokens: 11},
		{RelPath: "a/root.txt", Tokens: 3},
	}
}

func TestBuildTreePlacesEveryEntryOnce(t *testing.T) {
	entries := fixtureEntries()
	tree := BuildTree(entries)

	require.Len(t, tree.Files, 1)
	assert.Equal(t, "z.txt", entries[tree.Files[0]].RelPath)

	a := tree.Folders["a"]
	require.NotNil(t, a)
	require.Len(t, a.Files, 1)
	assert.Equal(t, "a/root.txt", entries[a.Files[0]].RelPath)

	deep := a.Folders["deep"]
	require.NotNil(t, deep)
	require.Len(t, deep.Files, 1)

	total, _ := SelectionCounts(tree, entries)
	assert.Equal(t, len(entries), total)
}

func TestRenderOrdersFoldersBeforeFiles(t *testing.T) {
	entries := fixtureEntries()
	tree := BuildTree(entries)
	SortTree(tree, entries)

	got := Render(tree, entries, "proj")
	want := "proj/\n" +
		"├─ a\n" +
		"│   ├─ deep\n" +
		"│   │   └─ leaf.txt\n" +
		"│   └─ root.txt\n" +
		"├─ b\n" +
		"│   └─ nested.txt\n" +
		"└─ z.txt\n"
	assert.Equal(t, want, got)
}

func TestSelectionCounts(t *testing.T) {
	entries := fixtureEntries()
	entries[1].Selected = true
	entries[2].Selected = true
	tree := BuildTree(entries)

	total, selected := SelectionCounts(tree, entries)
	assert.Equal(t, 4, total)
	assert.Equal(t, 2, selected)

	aTotal, aSelected := SelectionCounts(tree.Folders["a"], entries)
	assert.Equal(t, 2, aTotal)
	assert.Equal(t, 1, aSelected)
}

func TestTokenSum(t *testing.T) {
	entries := fixtureEntries()
	tree := BuildTree(entries)

	assert.Equal(t, 26, TokenSum(tree, entries))
	assert.Equal(t, 14, TokenSum(tree.Folders["a"], entries))
}

func TestSetSelectionTogglesSubtreeOnly(t *testing.T) {
	entries := fixtureEntries()
	tree := BuildTree(entries)

	SetSelection(tree.Folders["a"], entries, true)
	assert.False(t, entries[0].Selected, "z.txt is outside the subtree")
	assert.False(t, entries[1].Selected, "b/nested.txt is outside the subtree")
	assert.True(t, entries[2].Selected)
	assert.True(t, entries[3].Selected)

	SetSelection(tree, entries, false)
	for i := range entries {
		assert.False(t, entries[i].Selected)
	}
}
