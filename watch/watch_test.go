package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocWatcherReportsJSONFiles(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan string, 10)

	w, err := NewDocWatcher(dir, func(path string) { changed <- path })
	require.NoError(t, err)
	w.SetDebounce(100 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp.json"), []byte("x"), 0644))

	path := filepath.Join(dir, "john.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	select {
	case got := <-changed:
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}

}

func TestDocWatcherMissingDir(t *testing.T) {
	_, err := NewDocWatcher(filepath.Join(t.TempDir(), "missing"), func(string) {})
	assert.Error(t, err)
}

func TestIsDocFile(t *testing.T) {
	assert.True(t, isDocFile("/docs/john.json"))
	assert.False(t, isDocFile("/docs/.john.json"))
	assert.False(t, isDocFile("/docs/john.json.swp"))
	assert.False(t, isDocFile("/docs/john.conllu"))
}
