package watch_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/amplifier-docs/docsync/internal/watch"
)

func newWatcher(t *testing.T, roots ...string) (*watch.Watcher, <-chan struct{}) {
	t.Helper()
	w, err := watch.New(watch.Config{
		Roots:       roots,
		DebounceDur: 50 * time.Millisecond,
	}, zerolog.Nop())
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return w, onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "index.md")
	require.NoError(t, os.WriteFile(page, []byte("# Home"), 0o644))

	_, onChange := newWatcher(t, dir)

	// Rapid writes should coalesce into a single notification.
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(page, []byte(fmt.Sprintf("# Home %d", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(dir, "scratch.txt")
	require.NoError(t, os.WriteFile(other, []byte("scratch"), 0o644))

	_, onChange := newWatcher(t, dir)

	require.NoError(t, os.WriteFile(other, []byte("more scratch"), 0o644))

	select {
	case <-onChange:
		t.Fatal("unexpected notification for irrelevant file")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_WatchesSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "guides")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	page := filepath.Join(sub, "setup.md")
	require.NoError(t, os.WriteFile(page, []byte("# Setup"), 0o644))

	_, onChange := newWatcher(t, dir)

	require.NoError(t, os.WriteFile(page, []byte("# Setup v2"), 0o644))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for subdirectory change")
	}
}

func TestWatcher_StartStop(t *testing.T) {
	dir := t.TempDir()
	w, err := watch.New(watch.DefaultConfig(dir), zerolog.Nop())
	require.NoError(t, err)

	_, err = w.Start()
	require.NoError(t, err)
	require.NoError(t, w.Stop())
}
