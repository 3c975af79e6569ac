package scenes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Discovery:
// - Include patterns select matching files, sorted by name
// - Ignore patterns exclude files that also match an include
// - Subdirectories and non-matching files are skipped
// - Collection names drop the file extension
// - Missing directory is an error
// - Invalid glob patterns fail at construction

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
	}
}

func TestDiscover_MatchesIncludePatternsSorted(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Streaming.json", "Recording.json", "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "backup"), 0755))

	discovery, err := NewDiscovery(dir, []string{"*.json"}, nil)
	require.NoError(t, err)

	collections, err := discovery.Discover()
	require.NoError(t, err)

	require.Len(t, collections, 2)
	assert.Equal(t, "Recording", collections[0].Name)
	assert.Equal(t, filepath.Join(dir, "Recording.json"), collections[0].Path)
	assert.Equal(t, "Streaming", collections[1].Name)
}

func TestDiscover_IgnorePatternsWin(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Streaming.json", "Streaming_backup.json")

	discovery, err := NewDiscovery(dir, []string{"*.json"}, []string{"*_backup*"})
	require.NoError(t, err)

	collections, err := discovery.Discover()
	require.NoError(t, err)

	require.Len(t, collections, 1)
	assert.Equal(t, "Streaming", collections[0].Name)
}

func TestDiscover_EmptyDirectory(t *testing.T) {
	discovery, err := NewDiscovery(t.TempDir(), []string{"*.json"}, nil)
	require.NoError(t, err)

	collections, err := discovery.Discover()
	require.NoError(t, err)
	require.NotNil(t, collections)
	assert.Empty(t, collections)
}

func TestDiscover_MissingDirectory(t *testing.T) {
	discovery, err := NewDiscovery(filepath.Join(t.TempDir(), "nope"), []string{"*.json"}, nil)
	require.NoError(t, err)

	_, err = discovery.Discover()
	assert.Error(t, err)
}

func TestNewDiscovery_InvalidPattern(t *testing.T) {
	_, err := NewDiscovery(t.TempDir(), []string{"[unclosed"}, nil)
	assert.Error(t, err)

	_, err = NewDiscovery(t.TempDir(), []string{"*.json"}, []string{"[unclosed"})
	assert.Error(t, err)
}
