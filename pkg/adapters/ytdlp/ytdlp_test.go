package ytdlp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/execx"
	"github.com/beeper/mcp-adapters/pkg/shared/execx/execxtest"
)

func infoJSON(t *testing.T, info VideoInfo) string {
	data, err := json.Marshal(info)
	require.NoError(t, err)
	return string(data)
}

func TestParseJSON3(t *testing.T) {
	data, err := os.ReadFile("testdata/captions.json3")
	require.NoError(t, err)
	lines, err := ParseJSON3(data)
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Equal(t, "hello everyone", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "hello everyone\nwelcome back", Transcript(lines))
}

func TestParseJSON3WithoutTiming(t *testing.T) {
	lines, err := ParseJSON3([]byte(`{"events":[{"segs":[{"utf8":" so "},{"utf8":"\n"},{"utf8":"it begins"}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"so it begins"}, lines)

	_, err = ParseJSON3([]byte(`{"events":[{"tStartMs":"soon"}]}`))
	assert.NoError(t, err)
}

func TestPickTrackPrefersManualAndJSON3(t *testing.T) {
	info := &VideoInfo{
		Subtitles: map[string][]Track{"en": {{Ext: "vtt", URL: "manual-vtt"}, {Ext: "json3", URL: "manual-json3"}}},
		AutomaticCaptions: map[string][]Track{
			"en": {{Ext: "json3", URL: "auto-json3"}},
			"de": {{Ext: "srv3", URL: "auto-de"}},
		},
	}
	track, ok := info.PickTrack("en")
	require.True(t, ok)
	assert.Equal(t, "manual-json3", track.URL)

	track, ok = info.PickTrack("de")
	require.True(t, ok)
	assert.Equal(t, "auto-de", track.URL)

	_, ok = info.PickTrack("fr")
	assert.False(t, ok)
}

func TestSubtitlesTool(t *testing.T) {
	captions, err := os.ReadFile("testdata/captions.json3")
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(captions)
	}))
	defer srv.Close()

	runner := &execxtest.FakeRunner{Handler: func(cmd execx.Command) (*execx.Result, error) {
		return &execx.Result{Stdout: infoJSON(t, VideoInfo{
			ID:                "abc",
			AutomaticCaptions: map[string][]Track{"en": {{Ext: "json3", URL: srv.URL + "/timedtext"}}},
		})}, nil
	}}
	reg := mcpkit.NewRegistry()
	reg.Register(Tools(NewClient(nil, runner))...)

	res, err := reg.Call(context.Background(), "get_automatic_subtitles_tool", map[string]any{"url": "https://youtu.be/abc"})
	require.NoError(t, err)
	assert.Equal(t, "hello everyone\nwelcome back", res.Text())
	assert.Equal(t, []string{"yt-dlp --dump-single-json --skip-download --no-warnings -- https://youtu.be/abc"}, runner.CommandLines())
}

func TestSubtitlesMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("WEBVTT\n\n00:00.000 --> 00:01.000\nhi"))
	}))
	defer srv.Close()

	none := &execxtest.FakeRunner{Handler: func(cmd execx.Command) (*execx.Result, error) {
		return &execx.Result{Stdout: `{"id":"x"}`}, nil
	}}
	text, err := NewClient(nil, none).Subtitles(context.Background(), "https://youtu.be/x")
	require.NoError(t, err)
	assert.Equal(t, "No English automatic subtitles found.", text)

	vtt := &execxtest.FakeRunner{Handler: func(cmd execx.Command) (*execx.Result, error) {
		return &execx.Result{Stdout: infoJSON(t, VideoInfo{
			Subtitles: map[string][]Track{"en": {{Ext: "vtt", URL: srv.URL}}},
		})}, nil
	}}
	text, err = NewClient(nil, vtt).Subtitles(context.Background(), "https://youtu.be/x")
	require.NoError(t, err)
	assert.Equal(t, "Failed to parse subtitles.", text)
}

func TestSubtitlesCommandFailure(t *testing.T) {
	runner := &execxtest.FakeRunner{Handler: func(cmd execx.Command) (*execx.Result, error) {
		return &execx.Result{ExitCode: 1}, &execx.ExitError{Command: cmd.Name, ExitCode: 1, Stderr: "ERROR: Video unavailable\n"}
	}}
	_, err := NewClient(nil, runner).Subtitles(context.Background(), "https://youtu.be/gone")
	require.Error(t, err)
	assert.Equal(t, mcpkit.CategoryInternal, mcpkit.CategoryOf(err))
	assert.Equal(t, "Error downloading subtitles for https://youtu.be/gone: ERROR: Video unavailable", err.Error())
}
