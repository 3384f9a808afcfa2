package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/triemap/internal/cli/output"
	"github.com/yndnr/triemap/internal/core/service"
	"github.com/yndnr/triemap/internal/telemetry/logger"
	"github.com/yndnr/triemap/pkg/ordmap"
)

// DefaultPrompt is shown before each line.
const DefaultPrompt = "triemap> "

// REPL is the interactive read-eval-print loop over a MapService.
type REPL struct {
	svc       *service.MapService
	input     io.Reader
	output    io.Writer
	formatter output.Formatter
	completer *Completer
	history   *History
	prompt    string
	log       logger.Logger
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO sets the input and output streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithPrompt sets the prompt.
func WithPrompt(prompt string) Option {
	return func(r *REPL) {
		r.prompt = prompt
	}
}

// WithHistory sets the line history.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// WithFormatter sets how listings are rendered.
func WithFormatter(f output.Formatter) Option {
	return func(r *REPL) {
		r.formatter = f
	}
}

// WithLogger sets the REPL logger.
func WithLogger(l logger.Logger) Option {
	return func(r *REPL) {
		r.log = l
	}
}

// New creates a REPL over svc.
func New(svc *service.MapService, opts ...Option) *REPL {
	r := &REPL{
		svc:       svc,
		input:     os.Stdin,
		output:    os.Stdout,
		formatter: &output.TableFormatter{},
		completer: NewCompleter(),
		history:   NewHistory("", 0),
		prompt:    DefaultPrompt,
		log:       logger.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads and executes lines until exit, end of input, or ctx is done.
// Each run is one session, logged under a fresh ULID session_id.
func (r *REPL) Run(ctx context.Context) error {
	sessionID := ulid.Make().String()
	ctx = logger.WithSessionID(ctx, sessionID)
	log := logger.ForContext(ctx, r.log)

	if err := r.history.Load(); err != nil {
		log.Warn("failed to load history", "error", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			log.Warn("failed to save history", "error", err)
		}
	}()

	log.Info("session started", "entries", r.svc.Size())
	defer func() { log.Info("session ended", "entries", r.svc.Size()) }()

	stop := make(chan struct{})
	defer close(stop)
	lines := readLines(r.input, stop)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(r.output, r.prompt)

		var in lineResult
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.output)
			return nil
		case in = <-lines:
		}
		if in.err != nil && !errors.Is(in.err, io.EOF) {
			return in.err
		}
		atEOF := in.err != nil

		line := strings.TrimSpace(in.line)
		if line == "" {
			if atEOF {
				fmt.Fprintln(r.output)
				return nil
			}
			continue
		}

		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		if err := r.execute(ctx, line); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
		if atEOF {
			return nil
		}
	}
}

type lineResult struct {
	line string
	err  error
}

// readLines reads from in on its own goroutine so a blocked read does
// not keep Run from noticing cancellation. The goroutine stops after the
// first read error or once stop is closed and its pending line is dropped.
func readLines(in io.Reader, stop <-chan struct{}) <-chan lineResult {
	ch := make(chan lineResult)
	go func() {
		reader := bufio.NewReader(in)
		for {
			line, err := reader.ReadString('\n')
			select {
			case ch <- lineResult{line: line, err: err}:
			case <-stop:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

func (r *REPL) execute(ctx context.Context, line string) error {
	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "set":
		return r.set(ctx, args)
	case "get":
		key, err := keyArg(args, "get KEY")
		if err != nil {
			return err
		}
		v, err := r.svc.Get(ctx, key)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.output, v)
	case "has":
		key, err := keyArg(args, "has KEY")
		if err != nil {
			return err
		}
		fmt.Fprintln(r.output, r.svc.Has(ctx, key))
	case "del":
		key, err := keyArg(args, "del KEY")
		if err != nil {
			return err
		}
		if old, ok := r.svc.Remove(ctx, key); ok {
			fmt.Fprintf(r.output, "removed %s\n", old)
		} else {
			fmt.Fprintln(r.output, "(not found)")
		}
	case "size":
		fmt.Fprintln(r.output, r.svc.Size())
	case "list":
		entries, err := r.svc.Entries(ctx)
		if err != nil {
			return err
		}
		return r.formatter.Format(r.output, entries)
	case "keys":
		keys, err := r.svc.Keys(ctx)
		if err != nil {
			return err
		}
		return r.formatter.Format(r.output, keys)
	case "values":
		values, err := r.svc.Values(ctx)
		if err != nil {
			return err
		}
		return r.formatter.Format(r.output, values)
	case "dump":
		return r.svc.Dump(ctx, r.output)
	case "digest":
		d, err := r.svc.Digest(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.output, d)
		return nil
	case "load":
		return r.load(ctx, args)
	case "cursor":
		return r.cursor(ctx, args)
	case "stats":
		samples, err := r.svc.Stats()
		if err != nil {
			return err
		}
		return r.formatter.Format(r.output, samples)
	case "help":
		r.help()
	default:
		return unknownCommand(cmd, r.suggest(cmd))
	}
	return nil
}

func (r *REPL) set(ctx context.Context, args []string) error {
	key, err := keyArg(args, "set KEY [VALUE]")
	if err != nil {
		return err
	}
	value := strings.ToUpper(key)
	if len(args) > 1 {
		value = strings.Join(args[1:], " ")
	}

	if old, replaced := r.svc.Set(ctx, key, value); replaced {
		fmt.Fprintf(r.output, "OK (replaced %s)\n", old)
	} else {
		fmt.Fprintln(r.output, "OK")
	}
	return nil
}

func (r *REPL) load(ctx context.Context, args []string) error {
	path, err := keyArg(args, "load FILE")
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := r.svc.Load(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.output, "loaded %d entries (size %d)\n", n, r.svc.Size())
	return nil
}

func (r *REPL) cursor(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("cursor open|next|has|remove|close|list [ID]")
	}

	sub := strings.ToLower(args[0])
	switch sub {
	case "open":
		fmt.Fprintf(r.output, "cursor %d\n", r.svc.OpenCursor(ctx))
		return nil
	case "list":
		return r.formatter.Format(r.output, r.svc.Cursors())
	}

	if len(args) < 2 {
		return usage("cursor " + sub + " ID")
	}
	id, err := strconv.Atoi(args[1])
	if err != nil {
		return ordmap.ErrInvalidArgument.WithDetails(fmt.Sprintf("cursor ID %q is not a number", args[1]))
	}

	switch sub {
	case "next":
		p, err := r.svc.CursorNext(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.output, p)
	case "has":
		ok, err := r.svc.CursorHasNext(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.output, ok)
	case "remove":
		if err := r.svc.CursorRemove(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(r.output, "OK")
	case "close":
		if err := r.svc.CloseCursor(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(r.output, "OK")
	default:
		return unknownCommand("cursor "+sub, r.completer.Complete("cursor "))
	}
	return nil
}

func (r *REPL) help() {
	fmt.Fprintln(r.output, "Commands:")
	for _, c := range r.completer.Commands() {
		fmt.Fprintf(r.output, "  %s\n", c)
	}
	fmt.Fprintln(r.output, `Quote keys with spaces or the empty key: set "" EMPTY`)
}

// suggest offers commands sharing cmd's first letter.
func (r *REPL) suggest(cmd string) []string {
	if cmd == "" {
		return nil
	}
	return r.completer.Complete(cmd[:1])
}

// keyArg returns the first argument or an invalid-argument error.
func keyArg(args []string, form string) (string, error) {
	if len(args) == 0 {
		return "", usage(form)
	}
	return args[0], nil
}

func usage(form string) error {
	return ordmap.ErrInvalidArgument.WithDetails("usage: " + form)
}

func unknownCommand(cmd string, suggestions []string) error {
	if len(suggestions) == 0 {
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return fmt.Errorf("unknown command %q, did you mean: %s", cmd, strings.Join(suggestions, ", "))
}

// splitArgs splits a line on whitespace. A token that starts with a
// double quote runs to the matching quote and is unquoted with Go
// string-literal rules, so "" is the empty key and "a b" keeps its space.
func splitArgs(line string) ([]string, error) {
	var args []string
	for i := 0; i < len(line); {
		switch {
		case line[i] == ' ' || line[i] == '\t':
			i++
		case line[i] == '"':
			end := closingQuote(line, i+1)
			if end < 0 {
				return nil, ordmap.ErrInvalidArgument.WithDetails("unterminated quote")
			}
			s, err := strconv.Unquote(line[i : end+1])
			if err != nil {
				return nil, ordmap.ErrInvalidArgument.WithDetails(err.Error())
			}
			args = append(args, s)
			i = end + 1
		default:
			j := i
			for j < len(line) && line[j] != ' ' && line[j] != '\t' {
				j++
			}
			args = append(args, line[i:j])
			i = j
		}
	}
	return args, nil
}

func closingQuote(s string, from int) int {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}
