package hints_test

// Notes:
// - ForBrowserConnect reads environment variables, so those tests use
//   t.Setenv and cannot run in parallel.

import (
	"strings"
	"testing"

	"github.com/alnah/go-mdbundle/internal/hints"
)

func TestForToolNotFound(t *testing.T) {
	t.Parallel()

	hint := hints.ForToolNotFound("pandoc")
	if !strings.Contains(hint, "pandoc") {
		t.Errorf("hint does not name the tool: %q", hint)
	}
	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("hint format unexpected: %q", hint)
	}
}

func TestForTimeout(t *testing.T) {
	t.Parallel()

	if hint := hints.ForTimeout(); !strings.Contains(hint, "--timeout") {
		t.Errorf("hint does not mention --timeout: %q", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	hint := hints.ForConfigNotFound(nil)
	if !strings.Contains(hint, "--config") {
		t.Errorf("hint does not mention --config: %q", hint)
	}

	withPath := hints.ForConfigNotFound([]string{
		"local.yaml",
		"/home/u/.config/mdbundle/local.yaml",
	})
	if !strings.Contains(withPath, ".config/mdbundle") {
		t.Errorf("hint does not suggest the user config path: %q", withPath)
	}
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	if hint := hints.ForStyleNotFound(nil); hint != "" {
		t.Errorf("hint for empty style list = %q, want empty", hint)
	}

	hint := hints.ForStyleNotFound([]string{"document", "plain"})
	if !strings.Contains(hint, "document, plain") {
		t.Errorf("hint does not list styles: %q", hint)
	}
}

func TestForBrowserConnect_CI(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("ROD_NO_SANDBOX", "")
	t.Setenv("ROD_BROWSER_BIN", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("GITLAB_CI", "")
	t.Setenv("JENKINS_URL", "")

	hint := hints.ForBrowserConnect()
	if !strings.Contains(hint, "ROD_NO_SANDBOX") {
		t.Errorf("CI hint does not mention ROD_NO_SANDBOX: %q", hint)
	}
	if !strings.Contains(hint, "ROD_BROWSER_BIN") {
		t.Errorf("hint does not mention ROD_BROWSER_BIN: %q", hint)
	}
}

func TestForBrowserConnect_Container(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ROD_NO_SANDBOX", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("GITLAB_CI", "")
	t.Setenv("JENKINS_URL", "")

	orig := hints.IsInContainer
	hints.IsInContainer = func() bool { return true }
	defer func() { hints.IsInContainer = orig }()

	hint := hints.ForBrowserConnect()
	if !strings.Contains(hint, "ROD_NO_SANDBOX") {
		t.Errorf("container hint does not mention ROD_NO_SANDBOX: %q", hint)
	}
}
