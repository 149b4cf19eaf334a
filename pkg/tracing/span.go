// Package tracing times the stages of an indexing run as a tree of spans
// carried through context and dumped to slog once the run ends.
package tracing

import (
	"context"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type spanKey struct{}

// Span is one timed stage. Children are stages started from its context.
type Span struct {
	name    string
	traceID string
	start   time.Time
	elapsed time.Duration

	mu       sync.Mutex
	attrs    []slog.Attr
	children []*Span
}

// NewTraceID returns a random identifier for a run.
func NewTraceID() string {
	return uuid.NewString()
}

// Start begins a root span for traceID and returns a context carrying it.
func Start(ctx context.Context, name, traceID string) (context.Context, *Span) {
	s := &Span{name: name, traceID: traceID, start: time.Now()}
	return context.WithValue(ctx, spanKey{}, s), s
}

// StartChild begins a span under the one in ctx. With no span in ctx the
// result is a detached root without a trace id.
func StartChild(ctx context.Context, name string) (context.Context, *Span) {
	parent := FromContext(ctx)
	if parent == nil {
		return Start(ctx, name, "")
	}
	ctx, s := Start(ctx, name, parent.traceID)
	parent.mu.Lock()
	parent.children = append(parent.children, s)
	parent.mu.Unlock()
	return ctx, s
}

func FromContext(ctx context.Context) *Span {
	s, _ := ctx.Value(spanKey{}).(*Span)
	return s
}

// End fixes the span's elapsed time. Later calls are ignored.
func (s *Span) End() {
	s.mu.Lock()
	if s.elapsed == 0 {
		s.elapsed = time.Since(s.start)
	}
	s.mu.Unlock()
}

// SetAttr records a value on the span. Setting a key twice keeps the latest.
func (s *Span) SetAttr(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.attrs {
		if s.attrs[i].Key == key {
			s.attrs[i].Value = slog.AnyValue(value)
			return
		}
	}
	s.attrs = append(s.attrs, slog.Any(key, value))
}

func (s *Span) Name() string    { return s.name }
func (s *Span) TraceID() string { return s.traceID }

func (s *Span) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

func (s *Span) Children() []*Span {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Span(nil), s.children...)
}

// All walks the tree depth first, yielding each span with its depth below s.
func (s *Span) All() iter.Seq2[int, *Span] {
	return func(yield func(int, *Span) bool) {
		s.walk(0, yield)
	}
}

func (s *Span) walk(depth int, yield func(int, *Span) bool) bool {
	if !yield(depth, s) {
		return false
	}
	for _, child := range s.Children() {
		if !child.walk(depth+1, yield) {
			return false
		}
	}
	return true
}

// Log emits one "span" record per node of the tree.
func (s *Span) Log(logger *slog.Logger) {
	for depth, span := range s.All() {
		span.mu.Lock()
		attrs := make([]slog.Attr, 0, len(span.attrs)+4)
		attrs = append(attrs,
			slog.String("trace_id", span.traceID),
			slog.String("span", span.name),
			slog.Int64("duration_ms", span.elapsed.Milliseconds()),
			slog.Int("depth", depth),
		)
		attrs = append(attrs, span.attrs...)
		span.mu.Unlock()
		logger.LogAttrs(context.Background(), slog.LevelInfo, "span", attrs...)
	}
}
