package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	r, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.True(t, r.Ignored("node_modules"))
	assert.Contains(t, r.DebugPatterns, "console.")
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "ignore: [build]\ndebug_patterns: [\"fmt.Println\", \"debugger\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	r, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, r.Ignored("build"))
	assert.False(t, r.Ignored("node_modules"))
	assert.Equal(t, []string{"fmt.Println", "debugger"}, r.DebugPatterns)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("ignore: [unclosed"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}
