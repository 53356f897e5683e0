package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/connoisseur/internal/embedding"
	"github.com/joescharf/connoisseur/internal/rules"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "vectors"), embedding.New("", "", time.Second), rules.Default())
	require.NoError(t, err)
	return s
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestIndexTree_RecognizedFilesOnly(t *testing.T) {
	s := newTestStore(t)
	src := t.TempDir()
	writeFile(t, src, "a.js", "function a(){}\n")
	writeFile(t, src, "b.py", "def b(): pass\n")
	writeFile(t, src, "notes.txt", "not source\n")
	writeFile(t, src, "sub/c.ts", "const c = () => 1\n")

	count, err := s.IndexTree(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestIndexTree_ReindexOverwrites(t *testing.T) {
	s := newTestStore(t)
	src := t.TempDir()
	writeFile(t, src, "a.js", "function a(){}\n")
	writeFile(t, src, "b.js", "function b(){}\n")

	first, err := s.IndexTree(context.Background(), src)
	require.NoError(t, err)
	second, err := s.IndexTree(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	entries, err := s.List()
	require.NoError(t, err)
	assert.Len(t, entries, 2, "overwrite, never duplicate")
}

func TestIndexTree_EmbeddingLenMatchesProvider(t *testing.T) {
	s := newTestStore(t)
	src := t.TempDir()
	content := "function abc(){}\n"
	writeFile(t, src, "a.js", content)

	_, err := s.IndexTree(context.Background(), src)
	require.NoError(t, err)

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	vec, _ := embedding.New("", "", time.Second).Embed(context.Background(), content)
	assert.Equal(t, len(vec), entries[0].EmbeddingLen)
}

func TestIndexTree_SkipsIgnoredDirs(t *testing.T) {
	s := newTestStore(t)
	src := t.TempDir()
	writeFile(t, src, "a.js", "function a(){}\n")
	writeFile(t, src, "node_modules/dep.js", "function dep(){}\n")

	count, err := s.IndexTree(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIndexTree_UnreadableFileIsolated(t *testing.T) {
	s := newTestStore(t)
	src := t.TempDir()
	writeFile(t, src, "ok.js", "function ok(){}\n")
	bad := writeFile(t, src, "bad.js", "function bad(){}\n")
	require.NoError(t, os.Chmod(bad, 0000))
	t.Cleanup(func() { _ = os.Chmod(bad, 0644) })

	count, err := s.IndexTree(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "unreadable file skipped, batch not aborted")
}

func TestList_SkipsCorruptEntries(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.dir, "junk.json"), []byte("{not json"), 0644))

	entries, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
