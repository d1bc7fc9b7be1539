// Package app owns all mutable promptdeck state on behalf of a UI layer.
//
// One App instance belongs to one control thread. Background work (remote
// fetches, commands) runs as detached goroutines that own their inputs and
// report back only through the update channel, which the control thread
// drains on its next poll. Rule sets and catalogs are replaced wholesale on
// rebuild, so nothing ever observes a partially updated set.
package app

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"promptdeck/pkg/catalog"
	"promptdeck/pkg/config"
	"promptdeck/pkg/content"
	"promptdeck/pkg/document"
	"promptdeck/pkg/ignore"
	"promptdeck/pkg/logging"
	"promptdeck/pkg/remote"
	"promptdeck/pkg/terminal"
)

// updateBuffer sizes the result mailbox; sends never block detached tasks.
const updateBuffer = 64

// Update is a background result merged into state by Poll.
type Update interface{ isUpdate() }

// RemoteFetched reports a finished background fetch for remotes[Index].
type RemoteFetched struct {
	Index   int
	Content string
	Err     error
}

// CommandFinished reports a finished background command run.
type CommandFinished struct {
	Command string
	Output  string
	Err     error
}

func (RemoteFetched) isUpdate()   {}
func (CommandFinished) isUpdate() {}

// App is the single owner of catalog, remote, and terminal state.
type App struct {
	logger *zap.Logger

	Root    string
	Config  config.Config
	Rules   *ignore.RuleSet
	Catalog *catalog.Catalog
	Remotes []remote.Source
	Session *terminal.Session

	Instruction string

	fetcher *remote.Fetcher
	updates chan Update
}

// New returns an App with no folder selected yet.
func New(logger *zap.Logger) *App {
	logger = logging.Or(logger)
	return &App{
		logger:  logger,
		Config:  config.Default(),
		Session: terminal.NewSession(),
		fetcher: remote.NewFetcher(30*time.Second, logger),
		updates: make(chan Update, updateBuffer),
	}
}

// SetFolder switches the active project root: config, ignore rules, history,
// and catalog are all rebuilt for the new root. Selection does not carry
// across folders.
func (a *App) SetFolder(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve folder %s: %w", root, err)
	}

	cfg, err := config.Load(abs)
	if err != nil {
		a.logger.Warn("Project config unreadable, using defaults", zap.Error(err))
	}
	a.Config = cfg
	a.Root = abs
	a.Rules = ignore.Load(abs, a.logger)
	a.Catalog = catalog.Refresh(abs, cfg.MaxFiles, a.Rules, nil, a.logger)

	a.Session = terminal.NewSession()
	a.Session.HeadLines = cfg.HeadLines
	a.Session.TailLines = cfg.TailLines
	a.Session.TimeoutSecs = cfg.TimeoutSecs
	a.Session.History = terminal.LoadHistory(abs)
	return nil
}

// Refresh rebuilds the ignore rules and the catalog for the current root.
// Selection survives for entries whose absolute path is unchanged; cached
// content is dropped.
func (a *App) Refresh() error {
	if a.Root == "" {
		return fmt.Errorf("no folder selected")
	}
	a.Rules = ignore.Load(a.Root, a.logger)
	a.Catalog = catalog.Refresh(a.Root, a.Config.MaxFiles, a.Rules, a.Catalog, a.logger)
	return nil
}

// Select sets the selection flag of the entry with the given relative path.
func (a *App) Select(relPath string, value bool) bool {
	if a.Catalog == nil {
		return false
	}
	for i := range a.Catalog.Entries {
		if a.Catalog.Entries[i].RelPath == relPath {
			a.Catalog.Entries[i].Selected = value
			return true
		}
	}
	return false
}

// SelectAll sets every entry's selection flag.
func (a *App) SelectAll(value bool) {
	if a.Catalog == nil {
		return
	}
	tree := catalog.BuildTree(a.Catalog.Entries)
	catalog.SetSelection(tree, a.Catalog.Entries, value)
}

// RenderTree returns the display tree for the current catalog.
func (a *App) RenderTree() string {
	if a.Catalog == nil {
		return ""
	}
	tree := catalog.BuildTree(a.Catalog.Entries)
	catalog.SortTree(tree, a.Catalog.Entries)
	return catalog.Render(tree, a.Catalog.Entries, filepath.Base(a.Root))
}

// AddRemote registers a URL for background fetching and returns its index.
func (a *App) AddRemote(url string) int {
	a.Remotes = append(a.Remotes, remote.Source{URL: url, Include: true})
	return len(a.Remotes) - 1
}

// FetchRemote starts a detached fetch for remotes[index]. The result arrives
// via Poll; a failure leaves the source's content absent until re-fetched.
func (a *App) FetchRemote(index int) {
	if index < 0 || index >= len(a.Remotes) {
		return
	}
	url := a.Remotes[index].URL
	go func() {
		text, err := a.fetcher.Fetch(url)
		a.updates <- RemoteFetched{Index: index, Content: text, Err: err}
	}()
}

// RunCommand executes line in the project root, blocking until it finishes
// or times out, and records it in the session and persisted history.
func (a *App) RunCommand(line string) (string, error) {
	if a.Root == "" {
		return "", fmt.Errorf("no folder selected")
	}
	s := a.Session
	s.Command = line

	out, err := terminal.Run(a.Root, line,
		s.HeadLines, s.TailLines,
		time.Duration(s.TimeoutSecs)*time.Second, a.logger)
	if err != nil {
		return "", err
	}
	s.Output = out

	s.History.Add(line)
	if err := s.History.Save(a.Root); err != nil {
		a.logger.Warn("Failed to persist command history", zap.Error(err))
	}
	return out, nil
}

// RunCommandAsync runs line in a detached task; the result arrives via Poll.
// The session caps are snapshotted here so the task never reads shared state
// the control thread might mutate mid-run.
func (a *App) RunCommandAsync(line string) {
	root := a.Root
	head, tail := a.Session.HeadLines, a.Session.TailLines
	timeout := time.Duration(a.Session.TimeoutSecs) * time.Second
	go func() {
		out, err := terminal.Run(root, line, head, tail, timeout, a.logger)
		a.updates <- CommandFinished{Command: line, Output: out, Err: err}
	}()
}

// Poll drains pending background results into state without blocking.
// The UI layer calls this once per control-loop tick.
func (a *App) Poll() {
	for {
		select {
		case u := <-a.updates:
			a.apply(u)
		default:
			return
		}
	}
}

func (a *App) apply(u Update) {
	switch v := u.(type) {
	case RemoteFetched:
		if v.Err != nil {
			a.logger.Warn("Remote fetch failed",
				zap.Int("index", v.Index), zap.Error(v.Err))
			return
		}
		if v.Index >= 0 && v.Index < len(a.Remotes) {
			text := v.Content
			a.Remotes[v.Index].Content = &text
		}
	case CommandFinished:
		if v.Err != nil {
			a.logger.Warn("Command failed", zap.String("command", v.Command), zap.Error(v.Err))
			return
		}
		a.Session.Command = v.Command
		a.Session.Output = v.Output
		a.Session.History.Add(v.Command)
		if err := a.Session.History.Save(a.Root); err != nil {
			a.logger.Warn("Failed to persist command history", zap.Error(err))
		}
	}
}

// Build loads the selected files in parallel, waits for every read to finish,
// and assembles the final document. Unlike fetches and commands, the load
// phase blocks: the document cannot be finished without all contents.
func (a *App) Build() (document.Document, error) {
	if a.Root == "" || a.Catalog == nil {
		return document.Document{}, fmt.Errorf("no folder selected")
	}

	content.LoadSelected(a.Catalog.Entries, a.Config.MaxFileBytes, a.Config.Workers, a.logger)

	var files []document.FileSection
	for i := range a.Catalog.Entries {
		e := &a.Catalog.Entries[i]
		if !e.Selected {
			continue
		}
		body := ""
		if e.Content != nil {
			body = *e.Content
		}
		files = append(files, document.FileSection{Path: e.RelPath, Content: body})
	}

	var remotes []document.RemoteSection
	for i := range a.Remotes {
		r := &a.Remotes[i]
		if !r.Include || r.Content == nil {
			continue
		}
		remotes = append(remotes, document.RemoteSection{URL: r.URL, Content: *r.Content})
	}

	var tree string
	if a.Config.TreeEnabled() {
		tree = a.RenderTree()
	}

	doc := document.Assemble(document.Input{
		SystemPrompt:    document.ResolveSystemPrompt(a.Root, a.logger),
		Instruction:     a.Instruction,
		FileTree:        tree,
		Files:           files,
		Remotes:         remotes,
		TerminalCommand: a.Session.Command,
		TerminalOutput:  a.Session.Output,
	})

	a.logger.Info("Document assembled",
		zap.Int("files", len(files)),
		zap.Int("remotes", len(remotes)),
		zap.Int("tokens", doc.Tokens),
		zap.Int("estimate", doc.Estimate))
	return doc, nil
}
