package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptdeck/pkg/catalog"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestLoadCappedReadsSmallFileWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.txt")
	writeFile(t, path, "hello world\n")

	got, err := LoadCapped(path, 1024)
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", got)
}

func TestLoadCappedDetectsBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{'P', 'K', 0x00, 0x01, 'x'}, 0o644))

	got, err := LoadCapped(path, 1024)
	require.NoError(t, err)
	assert.Equal(t, BinarySentinel, got)
}

func TestLoadCappedKeepsHeadAndTail(t *testing.T) {
	head := "HEADSTART " + strings.Repeat("h", 2000)
	tail := strings.Repeat("t", 2000) + " TAILEND"
	path := filepath.Join(t.TempDir(), "big.txt")
	writeFile(t, path, head+strings.Repeat(".", 10000)+tail)

	const maxBytes = 1000
	got, err := LoadCapped(path, maxBytes)
	require.NoError(t, err)

	assert.Contains(t, got, "HEADSTART")
	assert.Contains(t, got, "TAILEND")
	assert.Contains(t, got, TruncationMarker)
	assert.LessOrEqual(t, len(got), maxBytes+len(TruncationMarker))
}

func TestLoadCappedReplacesInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	require.NoError(t, os.WriteFile(path, []byte{'c', 'a', 'f', 0xE9}, 0o644))

	got, err := LoadCapped(path, 1024)
	require.NoError(t, err)
	assert.Equal(t, "caf�", got)
}

func TestLoadSelectedPopulatesOnlySelection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "picked.txt"), "picked contents")
	writeFile(t, filepath.Join(dir, "skipped.txt"), "skipped contents")

	entries := []catalog.Entry{
		{Path: filepath.Join(dir, "picked.txt"), RelPath: "picked.txt", Selected: true, Tokens: 1},
		{Path: filepath.Join(dir, "skipped.txt"), RelPath: "skipped.txt"},
	}

	LoadSelected(entries, 1024, 4, nil)

	require.NotNil(t, entries[0].Content)
	assert.Equal(t, "picked contents", *entries[0].Content)
	assert.Greater(t, entries[0].Tokens, 0)
	assert.Nil(t, entries[1].Content)
}

func TestLoadSelectedMarksUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	entries := []catalog.Entry{
		{Path: filepath.Join(dir, "gone.txt"), RelPath: "gone.txt", Selected: true},
	}

	LoadSelected(entries, 1024, 1, nil)

	require.NotNil(t, entries[0].Content)
	assert.Contains(t, *entries[0].Content, "[error reading gone.txt")
}
