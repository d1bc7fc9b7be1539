//go:build windows

package terminal

import (
	"os/exec"
	"strconv"

	"go.uber.org/zap"
)

func setSysProcAttr(cmd *exec.Cmd) {}

// hardKill forcibly terminates the child and its descendants via taskkill.
func hardKill(cmd *exec.Cmd, logger *zap.Logger) {
	if cmd.Process == nil {
		return
	}
	kill := exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(cmd.Process.Pid))
	if err := kill.Run(); err != nil {
		logger.Warn("taskkill failed, killing process directly",
			zap.Int("pid", cmd.Process.Pid), zap.Error(err))
		_ = cmd.Process.Kill()
	}
}
