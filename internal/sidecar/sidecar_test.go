//go:build !windows

package sidecar

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

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

func TestRunRelaysWorkerOutput(t *testing.T) {
	var buf syncBuffer
	worker := New("sh", "-c", "echo thinking; echo trouble >&2")
	worker.SetLogger(zerolog.New(&buf))

	if err := worker.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	logged := buf.String()
	if !strings.Contains(logged, "thinking") {
		t.Fatalf("stdout line not relayed: %q", logged)
	}
	if !strings.Contains(logged, "trouble") {
		t.Fatalf("stderr line not relayed: %q", logged)
	}
}

func TestRunReportsWorkerFailure(t *testing.T) {
	var buf syncBuffer
	worker := New("sh", "-c", "exit 2")
	worker.SetLogger(zerolog.New(&buf))

	if err := worker.Run(context.Background()); err == nil {
		t.Fatal("expected error for failing worker")
	}
}

func TestRunMissingWorker(t *testing.T) {
	worker := New("/does/not/exist")
	if err := worker.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing worker binary")
	}
}
