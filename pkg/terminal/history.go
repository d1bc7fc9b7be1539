package terminal

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// HistoryFileName is the project-scoped history file under .prompt/.
const HistoryFileName = "terminal_history.json"

// History is a bounded most-recent-first command history, de-duplicated by
// exact string match.
type History struct {
	Commands []string `json:"commands"`
	MaxSize  int      `json:"max_size"`
}

// NewHistory returns an empty history capped at maxSize entries.
func NewHistory(maxSize int) *History {
	if maxSize < 1 {
		maxSize = 1
	}
	return &History{MaxSize: maxSize}
}

// Add records command at the front, removing any prior exact duplicate and
// trimming to the size cap. Blank commands are ignored.
func (h *History) Add(command string) {
	if command == "" {
		return
	}
	out := make([]string, 0, len(h.Commands)+1)
	out = append(out, command)
	for _, c := range h.Commands {
		if c != command {
			out = append(out, c)
		}
	}
	if len(out) > h.MaxSize {
		out = out[:h.MaxSize]
	}
	h.Commands = out
}

func historyPath(root string) string {
	return filepath.Join(root, ".prompt", HistoryFileName)
}

// LoadHistory reads the project history file. A missing or unreadable file
// yields a fresh history rather than an error.
func LoadHistory(root string) *History {
	data, err := os.ReadFile(historyPath(root))
	if err != nil {
		return NewHistory(DefaultMaxHistory)
	}
	var h History
	if err := json.Unmarshal(data, &h); err != nil || h.MaxSize < 1 {
		return NewHistory(DefaultMaxHistory)
	}
	if len(h.Commands) > h.MaxSize {
		h.Commands = h.Commands[:h.MaxSize]
	}
	return &h
}

// Save rewrites the project history file, creating .prompt/ if needed.
func (h *History) Save(root string) error {
	if err := os.MkdirAll(filepath.Dir(historyPath(root)), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(historyPath(root), append(data, '\n'), 0o644)
}
