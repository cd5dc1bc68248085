package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want Op
	}{
		{fsnotify.Create, OpCreate},
		{fsnotify.Write, OpWrite},
		{fsnotify.Remove | fsnotify.Rename, OpRemove | OpRename},
		{fsnotify.Chmod, OpChmod},
	}
	for _, tt := range tests {
		if got := convertOp(tt.in); got != tt.want {
			t.Errorf("convertOp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRunDeliversDebouncedBatch(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "main.yaml")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(watched, []byte("files: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()
	if err := w.Add(watched); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	batches := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(paths []string) { batches <- paths })
	}()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(watched, []byte("files: []\n# edit\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-batches:
		abs, _ := filepath.Abs(watched)
		if len(paths) != 1 || paths[0] != abs {
			t.Errorf("batch = %v, want [%s]", paths, abs)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after writing the watched file")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
