// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ben-isaac/pcg-gazebo/internal/config"
	"github.com/ben-isaac/pcg-gazebo/internal/testutil"
	"github.com/ben-isaac/pcg-gazebo/pkg/types"
)

// syncBuffer is a bytes.Buffer guarded for writes from the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitForOutput(t *testing.T, b *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(b.String(), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in output:\n%s", want, b.String())
}

func TestValidate_Watch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.MustWriteFile(t, dir, "robot.cue", validCUE)

	stdout := &syncBuffer{}
	app, err := NewApp(Dependencies{
		Config: stubConfig{cfg: config.DefaultConfig()},
		Stdout: stdout,
		Stderr: &syncBuffer{},
	})
	if err != nil {
		t.Fatalf("NewApp() unexpected error: %v", err)
	}
	root := NewRootCommand(app)
	root.SetArgs([]string{"validate", "--watch", "--debounce", "50ms", path})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- root.ExecuteContext(ctx) }()

	waitForOutput(t, stdout, "Watching 1 manifests")

	if err := os.WriteFile(path, []byte(outOfRangeCUE), 0o644); err != nil {
		t.Fatalf("rewrite manifest: %v", err)
	}
	waitForOutput(t, stdout, "1 of 1 manifests rejected")

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("watch mode should end cleanly on cancel, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("validate --watch did not stop after cancel")
	}
}

func TestValidate_WatchRejectsEmit(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t, nil)
	path := testutil.MustWriteFile(t, t.TempDir(), "robot.cue", validCUE)
	wantExitCode(t, cli.run("validate", "--watch", "--emit", "cue", path), types.ExitUsage)
}

func TestValidate_GlobArguments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, "models/robot.cue", validCUE)
	testutil.MustWriteFile(t, dir, "models/gripper/gripper.toml", urdfTOML)

	cli := newTestCLI(t, nil)
	if err := cli.run("validate", dir+"/models/**/*.{cue,toml}"); err != nil {
		t.Fatalf("validate unexpected error: %v\n%s", err, cli.stdout)
	}
	if !strings.Contains(cli.stdout.String(), "2 manifests valid") {
		t.Errorf("pattern should expand to both manifests:\n%s", cli.stdout)
	}

	cli = newTestCLI(t, nil)
	wantExitCode(t, cli.run("validate", dir+"/**/*.xml"), types.ExitUsage)
}
