// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func startWatcher(t *testing.T, w *Watcher) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	t.Cleanup(cancel)
	return cancel, errCh
}

func TestNew_NoFiles(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{}); !errors.Is(err, ErrNoFiles) {
		t.Errorf("New() error = %v, want ErrNoFiles", err)
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "gone", "robot.cue")
	if _, err := New(Config{Files: []string{missing}, Stderr: &bytes.Buffer{}}); err == nil {
		t.Error("New() should fail when a manifest directory does not exist")
	}
}

func TestWatcher_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "b.toml")
	b := filepath.Join(dir, "a.cue")
	writeFile(t, a, "")
	writeFile(t, b, "")

	w, err := New(Config{Files: []string{a, b, a}, Stderr: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { _ = w.fsw.Close() })

	if got := w.Files(); !slices.Equal(got, []string{b, a}) {
		t.Errorf("Files() = %v, want %v", got, []string{b, a})
	}
}

// TestWatcherDebounce writes two watched manifests and one unrelated file in
// quick succession; the callback must fire once with the two manifests only.
func TestWatcherDebounce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	robot := filepath.Join(dir, "robot.cue")
	gripper := filepath.Join(dir, "gripper.toml")
	notes := filepath.Join(dir, "notes.txt")
	writeFile(t, robot, "")
	writeFile(t, gripper, "")

	var (
		mu        sync.Mutex
		calls     int
		collected []string
	)
	done := make(chan struct{})

	w, err := New(Config{
		Files:    []string{robot, gripper},
		Debounce: 100 * time.Millisecond,
		Stderr:   &bytes.Buffer{},
		OnChange: func(_ context.Context, changed []string) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			collected = append(collected, changed...)
			if calls == 1 {
				close(done)
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	cancel, errCh := startWatcher(t, w)

	for _, path := range []string{robot, notes, gripper} {
		writeFile(t, path, "leaves: []\n")
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	time.Sleep(250 * time.Millisecond)

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("expected 1 debounced callback, got %d", calls)
	}
	if want := []string{gripper, robot}; !slices.Equal(collected, want) {
		t.Errorf("changed = %v, want %v", collected, want)
	}
}

func TestWatcherCallbackError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	robot := filepath.Join(dir, "robot.cue")
	writeFile(t, robot, "")

	var stderr safeBuffer
	fired := make(chan struct{}, 1)
	w, err := New(Config{
		Files:    []string{robot},
		Debounce: 50 * time.Millisecond,
		Stderr:   &stderr,
		OnChange: func(context.Context, []string) error {
			defer func() { fired <- struct{}{} }()
			return errors.New("manifest rejected")
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	cancel, errCh := startWatcher(t, w)
	writeFile(t, robot, "leaves: []\n")

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("callback error: manifest rejected")) {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestWatcherContextCancel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	robot := filepath.Join(dir, "robot.cue")
	writeFile(t, robot, "")

	w, err := New(Config{Files: []string{robot}, Stderr: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	cancel, errCh := startWatcher(t, w)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() returned %v after cancel, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestWatcherDoubleRunError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	robot := filepath.Join(dir, "robot.cue")
	writeFile(t, robot, "")

	w, err := New(Config{Files: []string{robot}, Stderr: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	cancel, errCh := startWatcher(t, w)
	// Let the first Run claim the watcher.
	time.Sleep(50 * time.Millisecond)

	if err := w.Run(context.Background()); err == nil {
		t.Error("second Run() should fail")
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("first Run() error: %v", err)
	}
}

// safeBuffer is a bytes.Buffer guarded for the watcher goroutines.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.buf.Bytes())
}

func (b *safeBuffer) String() string { return string(b.Bytes()) }
