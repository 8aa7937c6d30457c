package envconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotenvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PLEX_URL=http://from-file:32400\nPLEX_LIBRARY_SECTION=4\n"), 0o600))

	t.Setenv("PLEX_URL", "http://from-env:32400")
	t.Setenv("PLEX_LIBRARY_SECTION", "")
	require.NoError(t, os.Unsetenv("PLEX_LIBRARY_SECTION"))

	loaded := LoadDotenv(zerolog.Nop(), envFile)
	assert.Equal(t, []string{envFile}, loaded)
	assert.Equal(t, "http://from-env:32400", String("PLEX_URL"))
	assert.Equal(t, "4", String("PLEX_LIBRARY_SECTION"))
	require.NoError(t, os.Unsetenv("PLEX_LIBRARY_SECTION"))
}

func TestIntAndBool(t *testing.T) {
	t.Setenv("VOLLAMA_TIMEOUT_SECONDS", "60")
	t.Setenv("SEARXNG_INSECURE_SKIP_VERIFY", "maybe")
	assert.Equal(t, 60, Int("VOLLAMA_TIMEOUT_SECONDS", 420))
	assert.Equal(t, 7, Int("UNSET_INT_FOR_TEST", 7))
	assert.False(t, Bool("SEARXNG_INSECURE_SKIP_VERIFY", false))
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require("plex", "PLEX_URL", "http://x", "PLEX_API_KEY", "tok"))

	err := Require("plex", "PLEX_URL", "", "PLEX_API_KEY", " ")
	require.Error(t, err)
	assert.True(t, IsMissing(err))
	assert.Equal(t, "plex: missing required configuration: PLEX_URL, PLEX_API_KEY", err.Error())
}

func TestLoadFileSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adapters.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plex:\n  url: http://plex.lan:32400\n  library_section: \"2\"\n"), 0o600))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, f.Has("plex"))
	assert.False(t, f.Has("searxng"))

	var cfg struct {
		URL            string `yaml:"url"`
		LibrarySection string `yaml:"library_section"`
	}
	require.NoError(t, f.Section("plex", &cfg))
	assert.Equal(t, "http://plex.lan:32400", cfg.URL)
	assert.Equal(t, "2", cfg.LibrarySection)
	require.NoError(t, f.Section("searxng", &cfg))
}

func TestLoadFileEmptyPath(t *testing.T) {
	f, err := LoadFile("")
	require.NoError(t, err)
	assert.False(t, f.Has("plex"))
}
