package mdshow

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slides.md")
	if err := os.WriteFile(path, []byte("# A"), 0600); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, nil, func(context.Context) {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// other files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-changed:
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch() error = %v", err)
			}
			return
		case <-ticker.C:
			// the watcher is set up asynchronously, keep touching the file until it is noticed
			if err := os.WriteFile(path, []byte("# A\n# B"), 0600); err != nil {
				t.Fatal(err)
			}
		case <-ctx.Done():
			t.Fatal("change was not noticed")
		}
	}
}
