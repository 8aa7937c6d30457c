package adapters

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/envconfig"
)

func TestAllAdaptersSortedAndUnique(t *testing.T) {
	list := All()
	require.Len(t, list, 12)
	seen := map[string]bool{}
	for i, a := range list {
		assert.False(t, seen[a.Name], "duplicate %s", a.Name)
		seen[a.Name] = true
		assert.NotEmpty(t, a.Description)
		if i > 0 {
			assert.Less(t, list[i-1].Name, a.Name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("gopher")
	assert.EqualError(t, err, `unknown adapter "gopher"`)
}

func TestBuildFailsFastOnMissingConfig(t *testing.T) {
	t.Setenv("TERMINAL_BEARER_TOKEN", "")
	a, err := Lookup("terminalshop")
	require.NoError(t, err)
	_, err = a.Build(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, envconfig.IsMissing(err))
	assert.Contains(t, err.Error(), "TERMINAL_BEARER_TOKEN")
}

func TestBuildReadsFileSection(t *testing.T) {
	t.Setenv("SEARXNG_BASE_URL", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("searxng:\n  base_url: http://127.0.0.1:8888\n"), 0o600))
	file, err := envconfig.LoadFile(path)
	require.NoError(t, err)

	a, err := Lookup("searxng")
	require.NoError(t, err)
	built, err := a.Build(context.Background(), file)
	require.NoError(t, err)

	reg := mcpkit.NewRegistry()
	reg.Register(built.Tools...)
	assert.ElementsMatch(t, []string{"searxng_search", "searxng_news_search", "searxng_file_search", "fetch_and_clean"}, reg.Names())
}

func TestChromedriverBuildHasCloser(t *testing.T) {
	a, err := Lookup("chromedriver")
	require.NoError(t, err)
	built, err := a.Build(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, built.Closer)
	assert.Len(t, built.Tools, 24)
	assert.NoError(t, built.Closer.Close())
}

func TestToolNamesWithoutConfig(t *testing.T) {
	t.Setenv("PLEX_URL", "")
	t.Setenv("PLEX_API_KEY", "")
	a, err := Lookup("plex")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ToolNames())

	a, err = Lookup("taskwarrior")
	require.NoError(t, err)
	assert.Contains(t, a.ToolNames(), "get_taskwarrior_md")
}
