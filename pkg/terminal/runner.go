package terminal

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"promptdeck/pkg/logging"
)

// OutputTruncationMarker separates the head and tail of capped output.
const OutputTruncationMarker = "[... output truncated ...]"

// Run executes the command line in workingDir with the session's caps.
// Leading KEY=VALUE tokens become child environment overrides. Stdout and
// stderr are captured and head/tail capped by line count.
//
// When timeout is positive, a helper goroutine waits on the child while Run
// blocks on a receive-with-timeout. On timeout the child is hard-killed and
// the wait is always drained afterwards, so no zombie is left behind.
// Partial output captured before the kill is returned, not discarded.
// A command that fails to spawn is an error for this action only.
func Run(workingDir, line string, headLines, tailLines int, timeout time.Duration, logger *zap.Logger) (string, error) {
	logger = logging.Or(logger)

	env, prog, args, err := ParseCommandLine(line)
	if err != nil {
		return "", err
	}

	cmd := exec.Command(prog, args...)
	cmd.Dir = workingDir
	cmd.Env = append(os.Environ(), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	setSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to spawn %q: %w", prog, err)
	}
	logger.Info("Started command",
		zap.String("program", prog),
		zap.Strings("args", args),
		zap.Strings("env", env),
		zap.String("dir", workingDir))

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	if timeout > 0 {
		select {
		case err = <-done:
		case <-time.After(timeout):
			logger.Warn("Command timed out, killing",
				zap.String("program", prog), zap.Duration("timeout", timeout))
			hardKill(cmd, logger)
			err = <-done // always join; never leave an orphan
		}
	} else {
		err = <-done
	}
	if err != nil {
		logger.Debug("Command finished with error",
			zap.String("program", prog), zap.Error(err))
	}

	combined := stdout.String() + stderr.String()
	return headTail(combined, headLines, tailLines), nil
}

// headTail keeps the first headLines and last tailLines lines of text,
// splicing the truncation marker between them when lines were dropped.
func headTail(text string, headLines, tailLines int) string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if text == "" {
		lines = nil
	}

	var b strings.Builder
	if len(lines) <= headLines+tailLines {
		for _, l := range lines {
			b.WriteString(l)
			b.WriteString("\n")
		}
		return b.String()
	}

	for _, l := range lines[:headLines] {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString(OutputTruncationMarker)
	b.WriteString("\n")
	for _, l := range lines[len(lines)-tailLines:] {
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}
