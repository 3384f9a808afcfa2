// Package tests provides integration tests for triemap.
//
// These tests drive the full CLI application and verify:
//   - Seeding, listing, and fingerprinting agree with the map library
//   - Config hot reload while a REPL session is running
package tests

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/triemap/internal/cli/command"
	"github.com/yndnr/triemap/internal/core/service"
	"github.com/yndnr/triemap/pkg/ordmap"
)

// syncBuffer is a bytes.Buffer safe for the watcher goroutine to write
// while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// waitFor polls until out contains want or the timeout expires.
func waitFor(t *testing.T, out *syncBuffer, want string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in:\n%s", want, out.String())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// TestCLI_DigestMatchesLibrary seeds the CLI and checks its digest
// against a fingerprint computed directly from the expected entries.
func TestCLI_DigestMatchesLibrary(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	seed := filepath.Join(t.TempDir(), "seed.txt")
	writeFile(t, seed, "yak\nbison=shaggy\ncat\n")

	var stdout, stderr bytes.Buffer
	app := command.App()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	if err := app.Run([]string{"triemap", "-f", seed, "-o", "yaml", "digest"}); err != nil {
		t.Fatalf("digest error = %v\n%s", err, stderr.String())
	}

	want := service.Fingerprint([]ordmap.Pair{
		{Key: "bison", Value: "shaggy"},
		{Key: "cat", Value: "CAT"},
		{Key: "yak", Value: "YAK"},
	})
	if !strings.Contains(stdout.String(), "digest: "+want) {
		t.Errorf("stdout = %q, want digest %s", stdout.String(), want)
	}
}

// TestRepl_ConfigHotReload starts a REPL with config watching on, raises
// the log level in the config file, and checks that mutations made after
// the reload are logged at debug level.
func TestRepl_ConfigHotReload(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	t.Setenv("HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, cfgPath, "log:\n  level: info\nrepl:\n  watch_config: true\n")

	stdin, input := io.Pipe()
	var stdout, stderr syncBuffer
	app := command.App()
	app.Reader = stdin
	app.Writer = &stdout
	app.ErrWriter = &stderr

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- app.RunContext(ctx, []string{"triemap", "-c", cfgPath, "repl"})
	}()

	waitFor(t, &stdout, "triemap> ", 5*time.Second)
	if strings.Contains(stderr.String(), "entry added") {
		t.Fatal("debug output before reload")
	}

	writeFile(t, cfgPath, "log:\n  level: debug\nrepl:\n  watch_config: true\n")
	waitFor(t, &stderr, "config reloaded", 5*time.Second)

	if _, err := io.WriteString(input, "set cat\n"); err != nil {
		t.Fatalf("write input: %v", err)
	}
	waitFor(t, &stderr, "entry added", 5*time.Second)

	if _, err := io.WriteString(input, "exit\n"); err != nil {
		t.Fatalf("write input: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("repl error = %v", err)
		}
	case <-ctx.Done():
		t.Fatal("repl did not exit")
	}
	input.Close()
}
