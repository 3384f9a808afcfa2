package command

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// result captures one app run.
type result struct {
	stdout string
	stderr string
	err    error
}

// runApp runs the CLI with args under an isolated HOME, feeding stdin to
// interactive commands.
func runApp(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	app := App()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(append([]string{"triemap"}, args...))
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// seedFile writes lines to a temporary seed file and returns its path.
func seedFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}
