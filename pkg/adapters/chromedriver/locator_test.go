package chromedriver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocatorRejectsUnknownStrategy(t *testing.T) {
	_, err := NewLocator("label", "x")
	var invalid *InvalidStrategyError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Invalid 'by' method: label. Supported methods are: id, xpath, class_name, tag_name, name, css_selector, link_text, partial_link_text", err.Error())
}

func TestLocatorSelector(t *testing.T) {
	cases := []struct {
		by, value string
		expr      string
		xpath     bool
	}{
		{"id", "main", `[id="main"]`, false},
		{"class_name", "btn", `[class~="btn"]`, false},
		{"name", `q"x`, `[name="q\"x"]`, false},
		{"tag_name", "h1", "h1", false},
		{"css_selector", "div > a", "div > a", false},
		{"xpath", "//div", "//div", true},
		{"link_text", " Home ", `//a[normalize-space(.)="Home"]`, true},
		{"partial_link_text", `it's`, `//a[contains(., "it's")]`, true},
	}
	for _, c := range cases {
		loc, err := NewLocator(c.by, c.value)
		require.NoError(t, err, c.by)
		expr, xpath := loc.Selector()
		assert.Equal(t, c.expr, expr, c.by)
		assert.Equal(t, c.xpath, xpath, c.by)
	}
}

func TestXPathLiteralMixedQuotes(t *testing.T) {
	assert.Equal(t, `'say "hi"'`, xpathLiteral(`say "hi"`))
	assert.Equal(t, `concat("it's ", '"', "x", '"')`, xpathLiteral(`it's "x"`))
}
