package mdbundle_test

// Notes:
// - Subprocess backends are tested through a fake Runner; no pandoc or
//   wkhtmltopdf binary is required. The integration test covers real
//   binaries.

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	mdbundle "github.com/alnah/go-mdbundle"
)

// fakeRunner records the invocation and replies with canned output.
type fakeRunner struct {
	stdout  string
	stderr  string
	err     error
	gotName string
	gotArgs []string

	// onRun, when set, runs before replying (used to fake output files).
	onRun func(args []string)
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	f.gotName = name
	f.gotArgs = args
	if f.onRun != nil {
		f.onRun(args)
	}
	return f.stdout, f.stderr, f.err
}

func TestPandocRenderer_RendersHTML(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{stdout: "<!DOCTYPE html>\n<html><body><h1>T</h1></body></html>"}
	r := &mdbundle.PandocRenderer{Runner: runner}

	out, err := r.RenderHTML(context.Background(), "# T")
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if out != runner.stdout {
		t.Errorf("output = %q, want pandoc stdout", out)
	}

	if runner.gotName != "pandoc" {
		t.Errorf("invoked %q, want pandoc", runner.gotName)
	}
	args := strings.Join(runner.gotArgs, " ")
	if !strings.Contains(args, "--standalone") {
		t.Errorf("args missing --standalone: %v", runner.gotArgs)
	}
	if !strings.Contains(args, "markdown-fancy_lists") {
		t.Errorf("args missing fancy_lists opt-out: %v", runner.gotArgs)
	}
}

func TestPandocRenderer_BinaryNotFound(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: &exec.Error{Name: "pandoc", Err: exec.ErrNotFound}}
	r := &mdbundle.PandocRenderer{Runner: runner}

	_, err := r.RenderHTML(context.Background(), "# T")
	if !errors.Is(err, mdbundle.ErrRendererNotFound) {
		t.Errorf("RenderHTML() error = %v, want ErrRendererNotFound", err)
	}
}

func TestPandocRenderer_CommandFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{stderr: "bad input near line 3", err: errors.New("exit status 64")}
	r := &mdbundle.PandocRenderer{Runner: runner}

	_, err := r.RenderHTML(context.Background(), "# T")
	if !errors.Is(err, mdbundle.ErrHTMLConversion) {
		t.Fatalf("RenderHTML() error = %v, want ErrHTMLConversion", err)
	}
	if !strings.Contains(err.Error(), "bad input near line 3") {
		t.Errorf("error does not carry stderr: %v", err)
	}
}

func TestPandocRenderer_EmptyContent(t *testing.T) {
	t.Parallel()

	r := &mdbundle.PandocRenderer{Runner: &fakeRunner{}}
	_, err := r.RenderHTML(context.Background(), "")
	if !errors.Is(err, mdbundle.ErrHTMLConversion) {
		t.Errorf("RenderHTML() error = %v, want ErrHTMLConversion", err)
	}
}
