package mcpkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStringRequired(t *testing.T) {
	_, err := ReadString(map[string]any{}, "query", true)
	require.Error(t, err)
	assert.Equal(t, CategoryInvalidParams, CategoryOf(err))

	_, err = ReadString(map[string]any{"query": "   "}, "query", true)
	require.Error(t, err)
	assert.Equal(t, CategoryInvalidParams, CategoryOf(err))

	s, err := ReadString(map[string]any{"query": "  dune "}, "query", true)
	require.NoError(t, err)
	assert.Equal(t, "dune", s)

	_, err = ReadString(map[string]any{"query": 12.0}, "query", false)
	assert.Error(t, err)
}

func TestReadIntDefaultKeepsExplicitZero(t *testing.T) {
	n, err := ReadIntDefault(map[string]any{}, "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = ReadIntDefault(map[string]any{"page": 0.0}, "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = ReadIntDefault(map[string]any{"page": "3"}, "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ReadIntDefault(map[string]any{"page": "three"}, "page", 1)
	assert.Equal(t, CategoryInvalidParams, CategoryOf(err))
}

func TestReadBool(t *testing.T) {
	assert.True(t, ReadBool(map[string]any{"headless": true}, "headless", false))
	assert.True(t, ReadBool(map[string]any{"headless": "yes"}, "headless", false))
	assert.False(t, ReadBool(map[string]any{"headless": 0.0}, "headless", true))
	assert.True(t, ReadBool(map[string]any{}, "headless", true))
}

func TestReadStringSlice(t *testing.T) {
	got, err := ReadStringSlice(map[string]any{"terms": []any{"project:home", "+next"}}, "terms", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"project:home", "+next"}, got)

	got, err = ReadStringSlice(map[string]any{"terms": "status:pending due.before:eow"}, "terms", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"status:pending", "due.before:eow"}, got)

	_, err = ReadStringSlice(map[string]any{"terms": []any{1.0}}, "terms", false)
	assert.Error(t, err)
}
