//go:build !windows

package terminal

import (
	"os/exec"
	"syscall"

	"go.uber.org/zap"
)

// setSysProcAttr puts the child in its own process group so a timeout kill
// reaches the whole tree, not just the immediate child.
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// hardKill sends SIGKILL to the child's process group.
func hardKill(cmd *exec.Cmd, logger *zap.Logger) {
	if cmd.Process == nil {
		return
	}
	pgid, err := syscall.Getpgid(cmd.Process.Pid)
	if err != nil {
		logger.Warn("Failed to resolve process group, killing process only",
			zap.Int("pid", cmd.Process.Pid), zap.Error(err))
		_ = cmd.Process.Kill()
		return
	}
	if err := syscall.Kill(-pgid, syscall.SIGKILL); err != nil {
		logger.Warn("Failed to kill process group",
			zap.Int("pgid", pgid), zap.Error(err))
		_ = cmd.Process.Kill()
	}
}
