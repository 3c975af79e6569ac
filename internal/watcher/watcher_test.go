package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Watcher:
// - A write to a matching file fires the callback with that file
// - Rapid writes are debounced into one batch
// - Non-matching files do not appear in batches
// - Stop is idempotent
// - Context cancellation shuts the watcher down
// - Invalid include pattern and missing directory fail at construction

func startWatcher(t *testing.T, dir string, debounce time.Duration) (Watcher, chan []string) {
	t.Helper()

	w, err := New(dir, []string{"*.json"}, debounce)
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	batches := make(chan []string, 16)
	require.NoError(t, w.Start(context.Background(), func(files []string) {
		batches <- files
	}))
	return w, batches
}

func waitForBatch(t *testing.T, batches chan []string) []string {
	t.Helper()
	select {
	case batch := <-batches:
		return batch
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher callback")
		return nil
	}
}

func TestWatcher_FiresOnMatchingWrite(t *testing.T) {
	dir := t.TempDir()
	_, batches := startWatcher(t, dir, 100*time.Millisecond)

	path := filepath.Join(dir, "Streaming.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	batch := waitForBatch(t, batches)
	assert.Contains(t, batch, path)
}

func TestWatcher_DebouncesRapidWrites(t *testing.T) {
	dir := t.TempDir()
	_, batches := startWatcher(t, dir, 300*time.Millisecond)

	path := filepath.Join(dir, "Streaming.json")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
		time.Sleep(20 * time.Millisecond)
	}

	batch := waitForBatch(t, batches)
	assert.Equal(t, []string{path}, batch)

	// The quiet period collapsed all writes into a single batch.
	select {
	case extra := <-batches:
		t.Fatalf("unexpected second batch: %v", extra)
	case <-time.After(600 * time.Millisecond):
	}
}

func TestWatcher_IgnoresNonMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	_, batches := startWatcher(t, dir, 100*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	matching := filepath.Join(dir, "Recording.json")
	require.NoError(t, os.WriteFile(matching, []byte("{}"), 0644))

	batch := waitForBatch(t, batches)
	assert.Equal(t, []string{matching}, batch)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, _ := startWatcher(t, t.TempDir(), 100*time.Millisecond)

	require.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestWatcher_ContextCancellationStops(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, []string{"*.json"}, 100*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, func([]string) {}))

	cancel()
	assert.NoError(t, w.Stop())
}

func TestNew_InvalidInputs(t *testing.T) {
	_, err := New(t.TempDir(), []string{"[unclosed"}, time.Second)
	assert.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "missing"), []string{"*.json"}, time.Second)
	assert.Error(t, err)
}
