package mdshow

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestSourceLoad(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/slides.md":
			_, _ = fmt.Fprint(w, "# Remote")
		case "/broken.md":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)

	tests := []struct {
		name     string
		files    map[string]string
		names    []string
		wantName string
		wantBody string
		wantErr  bool
	}{
		{
			name:     "primary",
			files:    map[string]string{"slides.md": "# Slides", "README.md": "# Readme"},
			names:    nil,
			wantName: "slides.md",
			wantBody: "# Slides",
		},
		{
			name:     "fallback",
			files:    map[string]string{"README.md": "# Readme"},
			names:    nil,
			wantName: "README.md",
			wantBody: "# Readme",
		},
		{
			name:    "both missing",
			files:   map[string]string{},
			names:   nil,
			wantErr: true,
		},
		{
			name:     "url",
			files:    map[string]string{},
			names:    []string{ts.URL + "/slides.md"},
			wantName: ts.URL + "/slides.md",
			wantBody: "# Remote",
		},
		{
			name:     "url not found falls back to file",
			files:    map[string]string{"local.md": "# Local"},
			names:    []string{ts.URL + "/missing.md", "local.md"},
			wantName: "local.md",
			wantBody: "# Local",
		},
		{
			name:     "url server error falls back to file",
			files:    map[string]string{"local.md": "# Local"},
			names:    []string{ts.URL + "/broken.md", "local.md"},
			wantName: "local.md",
			wantBody: "# Local",
		},
		{
			name:    "unreachable url",
			files:   map[string]string{},
			names:   []string{"http://127.0.0.1:1/slides.md"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
					t.Fatal(err)
				}
			}
			s, err := NewSource(tt.names, WithBaseDir(dir))
			if err != nil {
				t.Fatal(err)
			}
			doc, err := s.Load(context.Background())
			if tt.wantErr {
				if !errors.Is(err, ErrNoDocument) {
					t.Errorf("Load() error = %v, want ErrNoDocument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if doc.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", doc.Name, tt.wantName)
			}
			if string(doc.Content) != tt.wantBody {
				t.Errorf("Content = %q, want %q", doc.Content, tt.wantBody)
			}
			if isURL(doc.Name) != (doc.Path == "") {
				t.Errorf("Path = %q for %q", doc.Path, doc.Name)
			}
		})
	}
}

func TestSourceNotice(t *testing.T) {
	s, err := NewSource(nil)
	if err != nil {
		t.Fatal(err)
	}
	want := "No <strong>slides.md</strong> or <strong>README.md</strong> file found."
	if got := s.Notice(); got != want {
		t.Errorf("Notice() = %q, want %q", got, want)
	}
}

func TestWithRetryMax(t *testing.T) {
	if _, err := NewSource(nil, WithRetryMax(-1)); err == nil {
		t.Error("expected error for negative retry max")
	}
	s, err := NewSource(nil, WithRetryMax(3))
	if err != nil {
		t.Fatal(err)
	}
	if s.client.RetryMax != 3 {
		t.Errorf("RetryMax = %d, want 3", s.client.RetryMax)
	}
}
