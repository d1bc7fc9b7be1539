// Package terminal runs project-scoped shell commands with bounded output
// and keeps a persisted command history.
package terminal

// Default limits for captured command output and history size.
const (
	DefaultHeadLines   = 1000
	DefaultTailLines   = 1000
	DefaultTimeoutSecs = 25
	DefaultMaxHistory  = 50
)

// Session holds the terminal state for the active project. In-memory state
// resets only on process restart; the history additionally persists to the
// project history file.
type Session struct {
	Command     string // last-run command line
	HeadLines   int
	TailLines   int
	TimeoutSecs int
	Output      string // last captured output
	History     *History
}

// NewSession returns a session with the default caps and an empty history.
func NewSession() *Session {
	return &Session{
		HeadLines:   DefaultHeadLines,
		TailLines:   DefaultTailLines,
		TimeoutSecs: DefaultTimeoutSecs,
		History:     NewHistory(DefaultMaxHistory),
	}
}
