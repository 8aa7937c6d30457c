package ytdlp

import (
	"encoding/json"
	"strings"
)

// Track is one downloadable subtitle rendition.
type Track struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// VideoInfo is the subset of yt-dlp's info JSON needed to locate subtitles.
type VideoInfo struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Subtitles         map[string][]Track `json:"subtitles"`
	AutomaticCaptions map[string][]Track `json:"automatic_captions"`
}

// ParseInfo decodes the output of --dump-single-json.
func ParseInfo(data []byte) (*VideoInfo, error) {
	var info VideoInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// PickTrack prefers manual subtitles over automatic captions, and json3 over other formats.
func (v *VideoInfo) PickTrack(lang string) (Track, bool) {
	for _, tracks := range []map[string][]Track{v.Subtitles, v.AutomaticCaptions} {
		candidates := tracks[lang]
		if len(candidates) == 0 {
			continue
		}
		for _, t := range candidates {
			if t.Ext == "json3" {
				return t, true
			}
		}
		return candidates[0], true
	}
	return Track{}, false
}

type json3Doc struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// ParseJSON3 returns one line per caption event of a json3 document.
// Segment text is trimmed and joined with spaces. Timing is not kept.
func ParseJSON3(data []byte) ([]string, error) {
	var doc json3Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(doc.Events))
	for _, ev := range doc.Events {
		var parts []string
		for _, seg := range ev.Segs {
			if s := strings.TrimSpace(seg.UTF8); s != "" {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines, nil
}

// Transcript joins the non-empty caption lines with newlines.
func Transcript(lines []string) string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
