//go:build !windows

package terminal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesStdoutAndStderr(t *testing.T) {
	out, err := Run(t.TempDir(), `sh -c 'echo out; echo err >&2'`, 100, 100, 5*time.Second, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "out")
	assert.Contains(t, out, "err")
}

func TestRunAppliesEnvOverrides(t *testing.T) {
	out, err := Run(t.TempDir(), `GREETING=hi sh -c 'echo "$GREETING"'`, 100, 100, 5*time.Second, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "hi")
}

func TestRunUsesWorkingDir(t *testing.T) {
	dir := t.TempDir()
	out, err := Run(dir, "pwd", 100, 100, 5*time.Second, nil)
	require.NoError(t, err)
	assert.Contains(t, out, dir)
}

func TestRunNonZeroExitStillReturnsOutput(t *testing.T) {
	out, err := Run(t.TempDir(), `sh -c 'echo partial; exit 3'`, 100, 100, 5*time.Second, nil)
	require.NoError(t, err, "a failing command is output, not an error")
	assert.Contains(t, out, "partial")
}

func TestRunSpawnFailureIsAnError(t *testing.T) {
	_, err := Run(t.TempDir(), "definitely-not-a-real-binary-xyz", 100, 100, 5*time.Second, nil)
	assert.Error(t, err)
}

func TestRunTimeoutKillsAndKeepsPartialOutput(t *testing.T) {
	start := time.Now()
	out, err := Run(t.TempDir(), `sh -c 'echo before; sleep 30; echo after'`, 100, 100, 300*time.Millisecond, nil)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 10*time.Second, "the child must be killed, not waited out")
	assert.Contains(t, out, "before")
	assert.NotContains(t, out, "after")
}

func TestRunCapsOutputLines(t *testing.T) {
	out, err := Run(t.TempDir(), `sh -c 'seq 1 50'`, 3, 3, 5*time.Second, nil)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n"+OutputTruncationMarker+"\n48\n49\n50\n", out)
}
