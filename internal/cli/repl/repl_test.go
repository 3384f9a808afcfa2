package repl

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yndnr/triemap/internal/core/service"
	"github.com/yndnr/triemap/internal/telemetry/logger"
	"github.com/yndnr/triemap/pkg/ordmap"
	"github.com/yndnr/triemap/pkg/trie"
)

// run feeds input to a fresh REPL and returns everything it printed,
// with prompts removed.
func run(t *testing.T, input string) (string, *History) {
	t.Helper()
	svc := service.NewMapService(trie.New(), service.WithLogger(logger.Discard()))
	history := NewHistory("", 100)
	var out bytes.Buffer

	r := New(svc,
		WithIO(strings.NewReader(input), &out),
		WithPrompt("> "),
		WithHistory(history),
		WithLogger(logger.Discard()),
	)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return strings.ReplaceAll(out.String(), "> ", ""), history
}

func TestREPL_Run_Exit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"exit command", "exit\n"},
		{"quit command", "quit\n"},
		{"EOF", ""},
		{"last line without newline", "size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run(t, tt.input)
		})
	}
}

func TestREPL_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	r := New(service.NewMapService(trie.New(), service.WithLogger(logger.Discard())),
		WithIO(strings.NewReader("set a\n"), &out),
		WithLogger(logger.Discard()),
	)
	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want nothing after cancel", out.String())
	}
}

func TestREPL_Run_EmptyLines(t *testing.T) {
	var out bytes.Buffer
	r := New(service.NewMapService(trie.New(), service.WithLogger(logger.Discard())),
		WithIO(strings.NewReader("\n\n\nexit\n"), &out),
		WithLogger(logger.Discard()),
	)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := strings.Count(out.String(), DefaultPrompt); got != 4 {
		t.Errorf("prompts = %d, want 4", got)
	}
}

func TestREPL_Run_History(t *testing.T) {
	_, history := run(t, "  size  \nsize\n\thas cat\t\nexit\n")

	want := []string{"exit", "has cat", "size"}
	for i, w := range want {
		if got := history.Get(i); got != w {
			t.Errorf("history.Get(%d) = %q, want %q", i, got, w)
		}
	}
	if history.Len() != 3 {
		t.Errorf("history.Len() = %d, want 3 (repeats collapse)", history.Len())
	}
}

func TestREPL_MapCommands(t *testing.T) {
	input := strings.Join([]string{
		"set cat",
		"set Cat meow loudly",
		"get CAT",
		"has dog",
		`set "" EMPTY`,
		`get ""`,
		"size",
		"del cat",
		"del cat",
		"keys",
		"exit",
	}, "\n")

	got, _ := run(t, input)
	want := strings.Join([]string{
		"OK",
		"OK (replaced CAT)",
		"meow loudly",
		"false",
		"OK",
		"EMPTY",
		"2",
		"removed meow loudly",
		"(not found)",
		"VALUE",
		`""`,
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestREPL_ListAndDump(t *testing.T) {
	got, _ := run(t, "set b\nset ab\nset a1\nlist\ndump\nexit\n")

	want := "OK\nOK\nOK\n" +
		"KEY  VALUE\nab   AB\na1   A1\nb    B\n" +
		"A\nA-B: <ab, AB>\nA-*: <a1, A1>\nB: <b, B>\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestREPL_Cursor(t *testing.T) {
	input := strings.Join([]string{
		"set bison",
		"set cat",
		"cursor open",
		"cursor next 1",
		"cursor open",
		"cursor remove 1",
		"cursor has 2",
		"cursor has 1",
		"cursor next 1",
		"cursor close 2",
		"exit",
	}, "\n")

	got, _ := run(t, input)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")

	want := []string{
		"OK",
		"OK",
		"cursor 1",
		"<bison, BISON>",
		"cursor 2",
		"OK",
		"", // placeholder for the stale-cursor error
		"true",
		"<cat, CAT>",
		"OK",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), got)
	}
	for i, w := range want {
		if i == 6 {
			if !strings.HasPrefix(lines[i], "Error: cursor 2:") ||
				!strings.Contains(lines[i], ordmap.ErrConcurrentModification.Code) {
				t.Errorf("line %d = %q, want a concurrent modification error", i, lines[i])
			}
			continue
		}
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestREPL_Errors(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"get", "usage: get KEY"},
		{"set", "usage: set KEY [VALUE]"},
		{"get nothing", ordmap.ErrNotFound.Code},
		{"cursor", "usage: cursor"},
		{"cursor next", "usage: cursor next ID"},
		{"cursor next x", "not a number"},
		{"cursor next 9", "unknown cursor 9"},
		{"cursor jump 1", `unknown command "cursor jump"`},
		{"sett a", `did you mean: set, size, stats`},
		{"zap", `unknown command "zap" (try help)`},
		{`get "open`, "unterminated quote"},
		{"load /nonexistent/file", "no such file"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, _ := run(t, tt.line+"\nexit\n")
			if !strings.HasPrefix(got, "Error: ") || !strings.Contains(got, tt.want) {
				t.Errorf("output = %q, want error containing %q", got, tt.want)
			}
		})
	}
}

func TestREPL_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animals.txt")
	if err := os.WriteFile(path, []byte("bison\ncat=meow\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, _ := run(t, "load "+path+"\nget cat\nexit\n")
	if want := "loaded 2 entries (size 2)\nmeow\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestREPL_Help(t *testing.T) {
	got, _ := run(t, "help\nexit\n")
	for _, c := range []string{"cursor open", "dump", "values"} {
		if !strings.Contains(got, "  "+c+"\n") {
			t.Errorf("help missing %q", c)
		}
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line    string
		want    []string
		wantErr bool
	}{
		{"set a b", []string{"set", "a", "b"}, false},
		{"  get\t a  ", []string{"get", "a"}, false},
		{`set "" x`, []string{"set", "", "x"}, false},
		{`set "a b" "c\"d"`, []string{"set", "a b", `c"d`}, false},
		{`get "x\n"`, []string{"get", "x\n"}, false},
		{`get "x`, nil, true},
		{"", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := splitArgs(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ordmap.ErrInvalidArgument) {
					t.Errorf("splitArgs() error = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("splitArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
