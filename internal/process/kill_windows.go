//go:build windows

package process

import (
	"os"
	"os/exec"
)

// setProcessGroup is a no-op on Windows; exec.CommandContext kills the
// direct child and converter helpers exit with it.
func setProcessGroup(_ *exec.Cmd) {}

// KillProcessGroup kills the process by PID. Windows has no POSIX process
// groups, so children are left to the default Job Object behavior.
func KillProcessGroup(pid int) {
	p, err := os.FindProcess(pid)
	if err != nil {
		return
	}
	_ = p.Kill()
}
