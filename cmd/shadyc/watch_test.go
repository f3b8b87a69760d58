package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"

	"github.com/alichraghi/shady/internal/passdriver"
)

// TestRunWatchStopsCleanly is SPEC_FULL.md §5's explicit callout: the
// one background goroutine in this repo (the fsnotify watch loop) must
// exit fully when its stop channel closes, leaking neither the
// goroutine nor the fsnotify watcher's own file descriptor.
func TestRunWatchStopsCleanly(t *testing.T) {
	defer leaktest.Check(t)()

	dir := t.TempDir()
	stop := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- runWatch(passdriver.DefaultConfig(), dir, stop)
	}()

	// give fsnotify a moment to register the watch before tearing it down.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "touch.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	close(stop)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runWatch returned an error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runWatch did not return after stop was closed")
	}
}
