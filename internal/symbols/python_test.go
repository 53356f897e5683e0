package symbols

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPython_Sample(t *testing.T) {
	table, err := NewPython().Extract("def f():\n    pass\nclass C: pass\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"f"}, table.Functions)
	assert.Equal(t, []string{"C"}, table.Classes)
}

func TestPython_NestedDefinitions(t *testing.T) {
	src := `class Outer:
    def method(self):
        def inner():
            pass
        return inner

def top():
    pass
`
	table, err := NewPython().Extract(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"inner", "method", "top"}, table.Functions)
	assert.Equal(t, []string{"Outer"}, table.Classes)
}

func TestPython_InvalidSyntax(t *testing.T) {
	table, err := NewPython().Extract("def f(:\n")
	require.Error(t, err)

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Empty(t, table.Functions, "symbols must be empty on parse failure, never partial")
	assert.Empty(t, table.Classes)
}

func TestPython_DecoratedAndAsync(t *testing.T) {
	src := `@decorator
def decorated():
    pass

async def fetch():
    pass
`
	table, err := NewPython().Extract(src)
	require.NoError(t, err)
	assert.Contains(t, table.Functions, "decorated")
	assert.Contains(t, table.Functions, "fetch")
}
