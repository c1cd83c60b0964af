//go:build unix

package protocol

import (
	"os/exec"
	"syscall"
)

// killProcessGroup starts the bot in its own process group and makes
// cancellation kill the group instead of just the direct child
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}

// killGroup kills whatever is left of the bot's process group after the bot
// itself has exited. ESRCH means nothing was left.
func killGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
