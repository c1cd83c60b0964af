//go:build !unix

package protocol

import "os/exec"

// killProcessGroup is a no-op where process groups are unavailable;
// exec.CommandContext still kills the direct child
func killProcessGroup(cmd *exec.Cmd) {}

func killGroup(cmd *exec.Cmd) {}
