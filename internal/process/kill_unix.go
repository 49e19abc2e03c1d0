//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// setProcessGroup places the command in its own process group so the whole
// tree can be signalled at once.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort cleanup; error ignored as WaitDelay provides fallback
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
