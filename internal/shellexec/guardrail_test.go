package shellexec

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestGuardrailDefaultsBlockDestructiveCommands(t *testing.T) {
	guard, err := LoadGuardrail(filepath.Join(t.TempDir(), "guardrail.yaml"))
	if err != nil {
		t.Fatalf("LoadGuardrail error: %v", err)
	}
	blockedCommands := []string{
		"rm -rf /",
		"dd if=/dev/zero of=/dev/sda",
		"mkfs.ext4 /dev/sda1",
		"echo x > /dev/sda",
	}
	for _, command := range blockedCommands {
		var blocked *BlockedError
		if err := guard.Check(command); !errors.As(err, &blocked) {
			t.Fatalf("Check(%q) = %v, want *BlockedError", command, err)
		}
	}
}

func TestGuardrailAllowsSafeCommand(t *testing.T) {
	guard, err := LoadGuardrail(filepath.Join(t.TempDir(), "guardrail.yaml"))
	if err != nil {
		t.Fatalf("LoadGuardrail error: %v", err)
	}
	for _, command := range []string{"ls -la", "echo hello", "python infer.py --model 7b.gguf"} {
		if err := guard.Check(command); err != nil {
			t.Fatalf("Check(%q) = %v, want nil", command, err)
		}
	}
}

func TestGuardrailCustomRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guardrail.yaml")
	content := "rules:\n  deny_patterns:\n    - pattern: \"shutdown\"\n      message: \"no shutdowns\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	guard, err := LoadGuardrail(path)
	if err != nil {
		t.Fatalf("LoadGuardrail error: %v", err)
	}
	if err := guard.Check("shutdown -h now"); err == nil {
		t.Fatal("expected custom rule to block shutdown")
	}
	// Custom rules replace the defaults entirely.
	if err := guard.Check("rm -rf /"); err != nil {
		t.Fatalf("default rule should be replaced, got %v", err)
	}
}

func TestGuardrailInvalidPatternFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guardrail.yaml")
	content := "rules:\n  deny_patterns:\n    - pattern: \"([\"\n      message: \"bad\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if _, err := LoadGuardrail(path); err == nil {
		t.Fatal("expected error for invalid regex")
	}
}
