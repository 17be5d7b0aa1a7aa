package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
)

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanDirectory(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.pptx"), "b")
	touch(t, filepath.Join(root, "a.PDF"), "a")
	touch(t, filepath.Join(root, "notes.txt"), "x")
	touch(t, filepath.Join(root, ".hidden.pdf"), "h")
	touch(t, filepath.Join(root, "nested", "c.pdf"), "c")

	docs, stats, err := ScanDirectory(root, ScanOptions{})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, filepath.Join(root, "a.PDF"), docs[0].Path)
	assert.Equal(t, "pdf", docs[0].Ext)
	assert.Equal(t, filepath.Join(root, "b.pptx"), docs[1].Path)
	assert.EqualValues(t, 2, stats.Matched)
	assert.EqualValues(t, 1, stats.Hidden)

	docs, _, err = ScanDirectory(root, ScanOptions{Recursive: true})
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}

func TestScanDirectory_BadRoot(t *testing.T) {
	_, _, err := ScanDirectory(filepath.Join(t.TempDir(), "missing"), ScanOptions{})
	assert.Error(t, err)

	_, _, err = ScanDirectory("", ScanOptions{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	file := filepath.Join(t.TempDir(), "a.pdf")
	touch(t, file, "x")
	_, _, err = ScanDirectory(file, ScanOptions{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestHashFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.pdf")
	touch(t, p, "abc")
	h, err := HashFile(p)
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", h)
}

func TestStartWatcher_InitialScan(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "deck.pptx"), "x")
	touch(t, filepath.Join(root, "skip.txt"), "x")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, InitialScan: true})
	require.NoError(t, err)

	select {
	case p := <-events:
		assert.Equal(t, filepath.Join(root, "deck.pptx"), p)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial event")
	}

	cancel()
	for range events {
	}
}

func TestStartWatcher_InitialScanBeyondBuffer(t *testing.T) {
	root := t.TempDir()
	const n = 300
	for i := 0; i < n; i++ {
		touch(t, filepath.Join(root, fmt.Sprintf("deck_%03d.pdf", i)), "x")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, InitialScan: true})
	require.NoError(t, err)

	got := map[string]bool{}
	for len(got) < n {
		select {
		case p := <-events:
			got[p] = true
		case <-ctx.Done():
			require.FailNow(t, "initial files missing", "received %d of %d", len(got), n)
		}
	}
	assert.Len(t, got, n)
}

func TestStartWatcher_NoRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{})
	assert.Error(t, err)
}
