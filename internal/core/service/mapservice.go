package service

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spaolacci/murmur3"

	"github.com/yndnr/triemap/internal/telemetry/logger"
	"github.com/yndnr/triemap/internal/telemetry/metric"
	"github.com/yndnr/triemap/pkg/ordmap"
)

// MapService is the single owner of an ordmap.Map. It logs and counts
// every operation and keeps named cursors over the map's fail-fast
// iterators.
//
// MapService is not safe for concurrent use.
type MapService struct {
	m       ordmap.Map
	log     logger.Logger
	metrics *metric.Registry

	cursors map[int]*cursor
	nextID  int
}

type cursor struct {
	id       int
	it       ordmap.Iterator
	returned int
	lastErr  error
}

// Option configures a MapService.
type Option func(*MapService)

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option {
	return func(s *MapService) {
		s.log = l
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(r *metric.Registry) Option {
	return func(s *MapService) {
		s.metrics = r
	}
}

// NewMapService creates a service owning m.
func NewMapService(m ordmap.Map, opts ...Option) *MapService {
	s := &MapService{
		m:       m,
		log:     logger.Default(),
		cursors: make(map[int]*cursor),
		nextID:  1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metric.NewRegistry()
	}
	s.metrics.SetEntries(m.Size())
	return s
}

// logger returns the service logger tagged with the context's session.
func (s *MapService) logger(ctx context.Context) logger.Logger {
	return logger.ForContext(ctx, s.log)
}

// ============================================================================
// Map Operations
// ============================================================================

// Set stores value under key and returns the displaced value, if any.
func (s *MapService) Set(ctx context.Context, key, value string) (string, bool) {
	old, replaced := s.m.Set(key, value)
	s.metrics.ObserveOp("set", metric.ResultOK)
	s.metrics.SetEntries(s.m.Size())

	if replaced {
		s.logger(ctx).Debug("entry replaced", "key", key,
			logger.ValueKey, value, logger.OldValueKey, old)
	} else {
		s.logger(ctx).Debug("entry added", "key", key, logger.ValueKey, value)
	}
	s.staleCursors(ctx)
	return old, replaced
}

// Get returns the value stored under key.
func (s *MapService) Get(ctx context.Context, key string) (string, error) {
	v, err := s.m.Get(key)
	if err != nil {
		s.metrics.ObserveOp("get", resultOf(err))
		s.logger(ctx).Debug("lookup failed", "key", key, "error", err)
		return "", err
	}
	s.metrics.ObserveOp("get", metric.ResultOK)
	return v, nil
}

// Has reports whether key has a stored value.
func (s *MapService) Has(ctx context.Context, key string) bool {
	ok := s.m.ContainsKey(key)
	if ok {
		s.metrics.ObserveOp("contains", metric.ResultOK)
	} else {
		s.metrics.ObserveOp("contains", metric.ResultMiss)
	}
	return ok
}

// Remove deletes key and returns the removed value, if any.
func (s *MapService) Remove(ctx context.Context, key string) (string, bool) {
	old, removed := s.m.Remove(key)
	if !removed {
		s.metrics.ObserveOp("remove", metric.ResultMiss)
		return "", false
	}
	s.metrics.ObserveOp("remove", metric.ResultOK)
	s.metrics.SetEntries(s.m.Size())
	s.logger(ctx).Debug("entry removed", "key", key, logger.OldValueKey, old)
	s.staleCursors(ctx)
	return old, true
}

// Size returns the number of stored entries.
func (s *MapService) Size() int {
	return s.m.Size()
}

// Entries returns all entries in key order.
func (s *MapService) Entries(ctx context.Context) ([]ordmap.Pair, error) {
	items, err := ordmap.Items(s.m)
	if err != nil {
		s.metrics.ObserveOp("iterate", metric.ResultError)
		return nil, fmt.Errorf("list entries: %w", err)
	}
	s.metrics.ObserveOp("iterate", metric.ResultOK)
	return items, nil
}

// Keys returns all keys in order.
func (s *MapService) Keys(ctx context.Context) ([]string, error) {
	keys, err := ordmap.KeySlice(s.m)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

// Values returns all values in key order.
func (s *MapService) Values(ctx context.Context) ([]string, error) {
	values, err := ordmap.ValueSlice(s.m)
	if err != nil {
		return nil, fmt.Errorf("list values: %w", err)
	}
	return values, nil
}

// Dump writes the map's diagnostic listing to w.
func (s *MapService) Dump(ctx context.Context, w io.Writer) error {
	if err := s.m.Dump(w); err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	return nil
}

// Digest returns a MurmurHash3 fingerprint of the entries in key order.
// Two maps holding the same entries in the same order have the same
// digest.
func (s *MapService) Digest(ctx context.Context) (string, error) {
	items, err := s.Entries(ctx)
	if err != nil {
		return "", err
	}
	return Fingerprint(items), nil
}

// Fingerprint hashes pairs in the given order. Each key and value is
// length-prefixed so that ("ab","c") and ("a","bc") differ.
func Fingerprint(pairs []ordmap.Pair) string {
	h := murmur3.New64()
	var n [4]byte
	for _, p := range pairs {
		for _, field := range []string{p.Key, p.Value} {
			binary.BigEndian.PutUint32(n[:], uint32(len(field)))
			h.Write(n[:])
			h.Write([]byte(field))
		}
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Stats returns the current metric samples.
func (s *MapService) Stats() ([]metric.Sample, error) {
	return s.metrics.Snapshot()
}

// ============================================================================
// Bulk Load
// ============================================================================

// Load reads entries from r, one per line, and stores them. A line is
// either "key<TAB>value", "key=value", or a bare key whose value is the
// upper-cased key. Blank lines and lines starting with '#' are skipped.
// It returns the number of lines stored.
func (s *MapService) Load(ctx context.Context, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	n, lineNo := 0, 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, err := ParseEntry(line)
		if err != nil {
			return n, fmt.Errorf("line %d: %w", lineNo, err)
		}
		s.Set(ctx, key, value)
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("read entries: %w", err)
	}

	s.logger(ctx).Info("entries loaded", "count", n, "size", s.m.Size())
	return n, nil
}

// ParseEntry splits one input line into key and value.
func ParseEntry(line string) (key, value string, err error) {
	switch {
	case strings.Contains(line, "\t"):
		key, value, _ = strings.Cut(line, "\t")
	case strings.Contains(line, "="):
		key, value, _ = strings.Cut(line, "=")
	default:
		key, value = line, strings.ToUpper(line)
	}
	if key == "" {
		return "", "", ordmap.ErrInvalidArgument.WithDetails("missing key")
	}
	return key, value, nil
}

// ============================================================================
// Cursors
// ============================================================================

// CursorInfo describes an open cursor.
type CursorInfo struct {
	ID       int    `json:"id"`
	Returned int    `json:"returned"`
	Status   string `json:"status"`
}

// OpenCursor starts a new iterator over the map and returns its ID.
func (s *MapService) OpenCursor(ctx context.Context) int {
	id := s.nextID
	s.nextID++
	s.cursors[id] = &cursor{id: id, it: s.m.Iterator()}
	s.logger(ctx).Debug("cursor opened", "cursor", id)
	return id
}

// CursorHasNext reports whether the cursor has another entry.
func (s *MapService) CursorHasNext(ctx context.Context, id int) (bool, error) {
	c, err := s.cursor(id)
	if err != nil {
		return false, err
	}
	ok, err := c.it.HasNext()
	if err != nil {
		return false, s.cursorFailed(ctx, c, "has_next", err)
	}
	return ok, nil
}

// CursorNext advances the cursor.
func (s *MapService) CursorNext(ctx context.Context, id int) (ordmap.Pair, error) {
	c, err := s.cursor(id)
	if err != nil {
		return ordmap.Pair{}, err
	}
	p, err := c.it.Next()
	if err != nil {
		return ordmap.Pair{}, s.cursorFailed(ctx, c, "next", err)
	}
	c.returned++
	return p, nil
}

// CursorRemove removes the entry the cursor returned last. Every other
// cursor becomes stale.
func (s *MapService) CursorRemove(ctx context.Context, id int) error {
	c, err := s.cursor(id)
	if err != nil {
		return err
	}
	if err := c.it.Remove(); err != nil {
		return s.cursorFailed(ctx, c, "remove", err)
	}
	s.metrics.ObserveOp("cursor_remove", metric.ResultOK)
	s.metrics.SetEntries(s.m.Size())
	s.logger(ctx).Debug("entry removed through cursor", "cursor", id)
	s.staleCursors(ctx)
	return nil
}

// CloseCursor forgets the cursor.
func (s *MapService) CloseCursor(ctx context.Context, id int) error {
	if _, err := s.cursor(id); err != nil {
		return err
	}
	delete(s.cursors, id)
	s.logger(ctx).Debug("cursor closed", "cursor", id)
	return nil
}

// Cursors lists open cursors ordered by ID.
func (s *MapService) Cursors() []CursorInfo {
	out := make([]CursorInfo, 0, len(s.cursors))
	for _, c := range s.cursors {
		status := "open"
		if c.lastErr != nil {
			status = failureKind(c.lastErr)
		}
		out = append(out, CursorInfo{ID: c.id, Returned: c.returned, Status: status})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MapService) cursor(id int) (*cursor, error) {
	c, ok := s.cursors[id]
	if !ok {
		return nil, ordmap.ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown cursor %d", id))
	}
	return c, nil
}

func (s *MapService) cursorFailed(ctx context.Context, c *cursor, op string, err error) error {
	kind := failureKind(err)
	c.lastErr = err
	s.metrics.CursorFailure(kind)
	s.logger(ctx).Warn("cursor operation failed", "cursor", c.id, "op", op, "kind", kind)
	return fmt.Errorf("cursor %d: %w", c.id, err)
}

// staleCursors logs the cursors a mutation just invalidated. Iterators
// detect staleness on their own; this only makes it visible.
func (s *MapService) staleCursors(ctx context.Context) {
	if len(s.cursors) == 0 {
		return
	}
	s.logger(ctx).Debug("mutation invalidates open cursors", "open", len(s.cursors))
}

// ============================================================================
// Error Classification
// ============================================================================

func resultOf(err error) string {
	if errors.Is(err, ordmap.ErrNotFound) {
		return metric.ResultMiss
	}
	return metric.ResultError
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, ordmap.ErrConcurrentModification):
		return "concurrent_modification"
	case errors.Is(err, ordmap.ErrIllegalState):
		return "illegal_state"
	case errors.Is(err, ordmap.ErrNoSuchElement):
		return "no_such_element"
	default:
		return "other"
	}
}
