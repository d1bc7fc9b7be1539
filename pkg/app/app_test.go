package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptdeck/pkg/terminal"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func newTestApp(t *testing.T) (*App, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "alpha contents")
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "beta contents")

	a := New(nil)
	require.NoError(t, a.SetFolder(root))
	return a, root
}

func TestSetFolderBuildsState(t *testing.T) {
	a, root := newTestApp(t)

	assert.Equal(t, root, a.Root)
	require.NotNil(t, a.Catalog)
	assert.Len(t, a.Catalog.Entries, 2)
	assert.NotNil(t, a.Rules)
	assert.NotNil(t, a.Session)
	assert.Equal(t, terminal.DefaultTimeoutSecs, a.Session.TimeoutSecs)
}

func TestRefreshKeepsSelection(t *testing.T) {
	a, root := newTestApp(t)

	require.True(t, a.Select("a.txt", true))
	writeFile(t, filepath.Join(root, "new.txt"), "new")
	require.NoError(t, a.Refresh())

	require.Len(t, a.Catalog.Entries, 3)
	sel := a.Catalog.Selected()
	require.Len(t, sel, 1)
	assert.Equal(t, "a.txt", a.Catalog.Entries[sel[0]].RelPath)
}

func TestSelectUnknownPath(t *testing.T) {
	a, _ := newTestApp(t)
	assert.False(t, a.Select("nope.txt", true))
}

func TestSelectAll(t *testing.T) {
	a, _ := newTestApp(t)

	a.SelectAll(true)
	assert.Len(t, a.Catalog.Selected(), 2)
	a.SelectAll(false)
	assert.Empty(t, a.Catalog.Selected())
}

func TestRenderTreeUsesRootBaseName(t *testing.T) {
	a, root := newTestApp(t)

	tree := a.RenderTree()
	assert.True(t, strings.HasPrefix(tree, filepath.Base(root)+"/\n"))
	assert.Contains(t, tree, "a.txt")
	assert.Contains(t, tree, "b.txt")
}

func TestBuildAssemblesSelectedFiles(t *testing.T) {
	a, _ := newTestApp(t)
	a.Instruction = "review this"
	require.True(t, a.Select("a.txt", true))

	doc, err := a.Build()
	require.NoError(t, err)

	assert.Contains(t, doc.Text, `<file path="a.txt">`)
	assert.Contains(t, doc.Text, "alpha contents")
	assert.NotContains(t, doc.Text, `<file path="sub/b.txt">`)
	assert.Contains(t, doc.Text, "<file_tree>")
	assert.Equal(t, 2, strings.Count(doc.Text, "review this"))
	assert.Greater(t, doc.Tokens, 0)
}

func TestBuildWithoutFolderFails(t *testing.T) {
	a := New(nil)
	_, err := a.Build()
	assert.Error(t, err)
}

func TestFetchRemoteDeliversViaPoll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("remote body"))
	}))
	defer srv.Close()

	a, _ := newTestApp(t)
	idx := a.AddRemote(srv.URL)
	a.FetchRemote(idx)

	require.Eventually(t, func() bool {
		a.Poll()
		return a.Remotes[idx].Content != nil
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "remote body", *a.Remotes[idx].Content)

	a.Instruction = "x"
	doc, err := a.Build()
	require.NoError(t, err)
	assert.Contains(t, doc.Text, "remote body")
}

func TestRunCommandRecordsHistory(t *testing.T) {
	a, root := newTestApp(t)

	out, err := a.RunCommand("echo hello")
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
	assert.Equal(t, "echo hello", a.Session.Command)
	assert.Contains(t, a.Session.Output, "hello")

	loaded := terminal.LoadHistory(root)
	require.NotEmpty(t, loaded.Commands)
	assert.Equal(t, "echo hello", loaded.Commands[0])
}

func TestRunCommandAsyncDeliversViaPoll(t *testing.T) {
	a, _ := newTestApp(t)

	a.RunCommandAsync("echo async-done")
	require.Eventually(t, func() bool {
		a.Poll()
		return a.Session.Output != ""
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, a.Session.Output, "async-done")
	assert.Equal(t, "echo async-done", a.Session.Command)
}

func TestRunCommandAsyncSnapshotsSessionCaps(t *testing.T) {
	a, _ := newTestApp(t)
	a.Session.HeadLines = 2
	a.Session.TailLines = 2

	a.RunCommandAsync("seq 1 50")
	// Mutating the caps after dispatch must not affect the in-flight run.
	a.Session.HeadLines = 1000
	a.Session.TailLines = 1000

	require.Eventually(t, func() bool {
		a.Poll()
		return a.Session.Output != ""
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "1\n2\n"+terminal.OutputTruncationMarker+"\n49\n50\n", a.Session.Output)
}
