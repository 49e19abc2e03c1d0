// Package process runs external converter tools and cleans up after them.
package process

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// killWaitDelay bounds how long Wait blocks on I/O after the process is
// killed by context cancellation.
const killWaitDelay = 5 * time.Second

// Runner abstracts command execution to enable testing without real
// subprocesses.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements Runner using os/exec. Commands are started in their
// own process group so that cancellation kills the whole tree, not just the
// direct child (wkhtmltopdf spawns helpers).
type ExecRunner struct{}

// Compile-time interface check.
var _ Runner = ExecRunner{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			KillProcessGroup(cmd.Process.Pid)
		}
		return nil
	}
	cmd.WaitDelay = killWaitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
