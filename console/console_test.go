package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestRunScannerLogsNonEmptyLines(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := New(log).WithReader(strings.NewReader("help\n\nstatus\n"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	c.Run(ctx)

	out := buf.String()
	if !strings.Contains(out, "line=help") {
		t.Fatalf("expected a logged line for %q, got: %s", "help", out)
	}
	if !strings.Contains(out, "line=status") {
		t.Fatalf("expected a logged line for %q, got: %s", "status", out)
	}
}

func TestRunScannerStopsAtEOF(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	pr, pw := io.Pipe()
	c := New(log).WithReader(pr)

	done := make(chan struct{})
	go func() {
		c.Run(context.Background())
		close(done)
	}()

	pw.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return once the reader reached EOF")
	}
}

func TestWithReaderNilLeavesExistingReader(t *testing.T) {
	r := strings.NewReader("x\n")
	c := New(slog.Default()).WithReader(r)
	if c.WithReader(nil).reader != r {
		t.Fatal("WithReader(nil) should not replace the existing reader")
	}
}
