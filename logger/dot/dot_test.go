package dot

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/fatih/color"
)

func TestHandle(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	tests := []struct {
		name     string
		messages []string
		want     string
	}{
		{"rendered", []string{"rendered slide", "rendered slide", "build completed"}, "..\n"},
		{"loaded then rendered", []string{"loaded document", "rendered slide", "build completed"}, "*.\n"},
		{"failure", []string{"failed to expand variables, using the document as is", "rendered slide"}, "!."},
		{"no slides", []string{"no slides found", "build completed"}, "!\n"},
		{"reload", []string{"document changed", "reused slide", "build completed"}, "~.\n"},
		{"ignored", []string{"navigated", "request"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			h, err := NewWithWriter(slog.NewTextHandler(io.Discard, nil), buf)
			if err != nil {
				t.Fatal(err)
			}
			for _, msg := range tt.messages {
				if err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, msg, 0)); err != nil {
					t.Fatal(err)
				}
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	h, err := NewWithWriter(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo}), io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled")
	}
	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be enabled")
	}
}
