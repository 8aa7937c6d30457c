package plex

import (
	"encoding/xml"
	"strings"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
)

type mediaContainer struct {
	XMLName     xml.Name    `xml:"MediaContainer"`
	Videos      []video     `xml:"Video"`
	Directories []directory `xml:"Directory"`
}

type video struct {
	Attrs     []xml.Attr `xml:",any,attr"`
	Directors []tagNode  `xml:"Director"`
	Genres    []tagNode  `xml:"Genre"`
}

type tagNode struct {
	Tag string `xml:"tag,attr"`
}

type directory struct {
	Key   string `xml:"key,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

// Movie is the shaped view of one unwatched video.
type Movie struct {
	Title          string
	Rating         string
	AudienceRating string
	Year           string
	Summary        string
	Directors      string
	Genres         string
}

// Section is one library section on the server.
type Section struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

func (v video) attr(name string) string {
	for _, a := range v.Attrs {
		if a.Name.Local == name {
			if value := strings.TrimSpace(a.Value); value != "" {
				return value
			}
		}
	}
	return mcpkit.NotAvailable
}

func joinTags(tags []tagNode) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		if t.Tag != "" {
			names = append(names, t.Tag)
		}
	}
	if len(names) == 0 {
		return mcpkit.NotAvailable
	}
	return strings.Join(names, ", ")
}

func decode(body []byte) (*mediaContainer, error) {
	var mc mediaContainer
	if err := xml.Unmarshal(body, &mc); err != nil {
		return nil, mcpkit.Internal(err, "Unexpected data format from Plex.")
	}
	return &mc, nil
}

// ParseMovies shapes a library listing into movies.
func ParseMovies(body []byte) ([]Movie, error) {
	mc, err := decode(body)
	if err != nil {
		return nil, err
	}
	movies := make([]Movie, 0, len(mc.Videos))
	for _, v := range mc.Videos {
		movies = append(movies, Movie{
			Title:          v.attr("title"),
			Rating:         v.attr("rating"),
			AudienceRating: v.attr("audienceRating"),
			Year:           v.attr("year"),
			Summary:        v.attr("summary"),
			Directors:      joinTags(v.Directors),
			Genres:         joinTags(v.Genres),
		})
	}
	return movies, nil
}

// ParseSections shapes the library sections listing.
func ParseSections(body []byte) ([]Section, error) {
	mc, err := decode(body)
	if err != nil {
		return nil, err
	}
	sections := make([]Section, 0, len(mc.Directories))
	for _, d := range mc.Directories {
		sections = append(sections, Section(d))
	}
	return sections, nil
}

// FormatMovies renders movies as labelled text blocks separated by blank lines.
func FormatMovies(movies []Movie) string {
	var sb strings.Builder
	for i, m := range movies {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Title: " + m.Title + "\n")
		sb.WriteString("Rating: " + m.Rating + "\n")
		sb.WriteString("Audience Rating: " + m.AudienceRating + "\n")
		sb.WriteString("Year: " + m.Year + "\n")
		sb.WriteString("Summary: " + m.Summary + "\n")
		sb.WriteString("Director(s): " + m.Directors + "\n")
		sb.WriteString("Genre(s): " + m.Genres + "\n")
	}
	return sb.String()
}
