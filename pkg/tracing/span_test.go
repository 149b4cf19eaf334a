package tracing

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestStartChildInheritsTraceID(t *testing.T) {
	traceID := NewTraceID()
	ctx, root := Start(context.Background(), "run", traceID)
	childCtx, scan := StartChild(ctx, "scan")
	_, idf := StartChild(childCtx, "idf")
	idf.End()
	scan.End()
	root.End()

	if scan.TraceID() != traceID || idf.TraceID() != traceID {
		t.Fatalf("trace id not propagated: %q %q", scan.TraceID(), idf.TraceID())
	}
	if children := root.Children(); len(children) != 1 || children[0] != scan {
		t.Fatalf("scan not attached to root")
	}
	if FromContext(childCtx) != scan {
		t.Fatalf("context does not carry the scan span")
	}
}

func TestStartChildWithoutParent(t *testing.T) {
	_, span := StartChild(context.Background(), "orphan")
	if span.TraceID() != "" {
		t.Fatalf("expected empty trace id got %q", span.TraceID())
	}
	if FromContext(context.Background()) != nil {
		t.Fatalf("empty context must carry no span")
	}
}

func TestEndKeepsFirstElapsed(t *testing.T) {
	_, span := Start(context.Background(), "index", "t")
	time.Sleep(time.Millisecond)
	span.End()
	first := span.Elapsed()
	time.Sleep(time.Millisecond)
	span.End()
	if first <= 0 || span.Elapsed() != first {
		t.Fatalf("elapsed changed after second End: %v then %v", first, span.Elapsed())
	}
}

func TestAllWalksDepthFirst(t *testing.T) {
	ctx, root := Start(context.Background(), "run", "t")
	indexCtx, _ := StartChild(ctx, "index")
	StartChild(indexCtx, "scan")
	StartChild(indexCtx, "idf")
	StartChild(ctx, "query")

	var got []string
	for depth, span := range root.All() {
		got = append(got, strings.Repeat(">", depth)+span.Name())
	}
	if strings.Join(got, " ") != "run >index >>scan >>idf >query" {
		t.Fatalf("unexpected walk order %v", got)
	}

	seen := 0
	for range root.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Fatalf("walk did not stop on break")
	}
}

func TestLogWritesTree(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx, root := Start(context.Background(), "index", "trace-1")
	_, idf := StartChild(ctx, "idf")
	idf.SetAttr("tokens", 41)
	idf.SetAttr("tokens", 42)
	idf.End()
	root.End()
	root.Log(logger)

	out := buf.String()
	if strings.Count(out, "msg=span") != 2 {
		t.Fatalf("expected two span lines:\n%s", out)
	}
	if !strings.Contains(out, "tokens=42") || strings.Contains(out, "tokens=41") {
		t.Fatalf("expected the latest attribute value:\n%s", out)
	}
	if !strings.Contains(out, "depth=1 tokens=42") {
		t.Fatalf("child depth missing:\n%s", out)
	}
}
