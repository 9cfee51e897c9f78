package cmd

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLatestLogs(t *testing.T) {
	lines := []string{
		`{"time":"2025-01-01T00:00:00Z","level":"INFO","msg":"loaded document","source":"slides.md"}`,
		`{"time":"2025-01-01T00:00:00Z","level":"DEBUG","msg":"request","method":"GET","path":"/state"}`,
		`not json`,
		`{"time":"2025-01-01T00:00:00Z","level":"WARN","msg":"no slides found","source":"slides.md"}`,
	}
	want := []any{
		map[string]any{"time": "2025-01-01T00:00:00Z", "level": "INFO", "msg": "loaded document", "source": "slides.md"},
		"not json",
		map[string]any{"time": "2025-01-01T00:00:00Z", "level": "WARN", "msg": "no slides found", "source": "slides.md"},
	}
	if diff := cmp.Diff(want, latestLogs(lines)); diff != "" {
		t.Errorf("latestLogs() mismatch (-want +got):\n%s", diff)
	}
}
