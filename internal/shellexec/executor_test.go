//go:build !windows

package shellexec

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCapturesStdout(t *testing.T) {
	e := New(nil)
	out, err := e.Run(context.Background(), "echo hello")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if out != "hello\n" {
		t.Fatalf("stdout = %q, want %q", out, "hello\n")
	}
}

func TestRunFailureReturnsStderr(t *testing.T) {
	e := New(nil)
	_, err := e.Run(context.Background(), "echo broken >&2; exit 3")
	if err == nil {
		t.Fatal("expected error for nonzero exit")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Fatalf("error should carry stderr text, got %q", err.Error())
	}
}

func TestRunFailureWithEmptyStderr(t *testing.T) {
	e := New(nil)
	_, err := e.Run(context.Background(), "exit 7")
	if err == nil {
		t.Fatal("expected error for nonzero exit")
	}
	if !strings.Contains(err.Error(), "command failed") {
		t.Fatalf("expected generic failure message, got %q", err.Error())
	}
}

func TestRunPassesCommandWholeToShell(t *testing.T) {
	e := New(nil)
	out, err := e.Run(context.Background(), "echo a && echo b | tr 'b' 'c'")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if out != "a\nc\n" {
		t.Fatalf("stdout = %q, want %q", out, "a\nc\n")
	}
}

func TestRunBlockedByGuardrail(t *testing.T) {
	guard, err := LoadGuardrail(filepath.Join(t.TempDir(), "guardrail.yaml"))
	if err != nil {
		t.Fatalf("LoadGuardrail error: %v", err)
	}
	e := New(guard)
	_, err = e.Run(context.Background(), "rm -rf /")
	var blocked *BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected *BlockedError, got %v", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	e := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Run(ctx, "echo hello"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
