package output

import (
	"strings"
	"testing"
)

func TestProgressBar(t *testing.T) {
	bar := ProgressBar(50, 10)
	if !strings.Contains(bar, "50.0%") {
		t.Fatalf("expected percent in bar, got %q", bar)
	}
	if !strings.Contains(ProgressBar(150, 10), "100.0%") {
		t.Fatal("percent above 100 should clamp")
	}
	if !strings.Contains(ProgressBar(-5, 10), "0.0%") {
		t.Fatal("negative percent should clamp to zero")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{in: 512, want: "512 B"},
		{in: 1024, want: "1.00 KB"},
		{in: 1536, want: "1.50 KB"},
		{in: 1048576, want: "1.00 MB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Fatalf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
