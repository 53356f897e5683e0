package feedback

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "feedback.json"))
	require.NoError(t, err)
	return s
}

func TestNewStore_CreatesEmptyLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "feedback.json")

	_, err := NewStore(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"feedback":[]}`, string(data))
}

func TestNewStore_NeverClobbersExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	existing := `{"feedback":[{"id":"r1","score":4}]}`
	require.NoError(t, os.WriteFile(path, []byte(existing), 0644))

	s, err := NewStore(path)
	require.NoError(t, err)

	summary, err := s.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count)
}

func TestAppendAndSummarize(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Append("r1", 5, ""))
	summary, err := s.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count)
	require.NotNil(t, summary.AvgScore)
	assert.Equal(t, 5.0, *summary.AvgScore)

	require.NoError(t, s.Append("r2", 3, "needs work"))
	summary, err = s.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 4.0, *summary.AvgScore)
}

func TestSummarize_EmptyLogHasNoAverage(t *testing.T) {
	s := newTestStore(t)

	summary, err := s.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count)
	assert.Nil(t, summary.AvgScore, "avg_score key must be absent for an empty log")
}

func TestAppend_PreservesOrder(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append("r1", 5, "first"))
	require.NoError(t, s.Append("r2", 2, "second"))

	entries, err := s.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "r1", entries[0].ID)
	assert.Equal(t, "r2", entries[1].ID)
	assert.Equal(t, "second", entries[1].Comment)
}

func TestAppend_CorruptLogFailsLoudly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	require.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0644))

	s, err := NewStore(path)
	require.NoError(t, err)

	err = s.Append("r1", 5, "")
	assert.Error(t, err, "corrupt store must not be silently reinitialized")
}
