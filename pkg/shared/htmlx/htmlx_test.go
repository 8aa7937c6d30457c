package htmlx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpers(t *testing.T) {
	doc, err := Parse([]byte(`<div><h3>  The   Left Hand
	of Darkness </h3><a class="x" href=" /book/1 ">link</a><a class="x" href="/book/2">two</a><span></span></div>`))
	require.NoError(t, err)

	assert.Equal(t, "The Left Hand of Darkness", Text(doc.Find("h3")))
	assert.Equal(t, "N/A", TextOr(doc.Find("span"), "N/A"))
	assert.Equal(t, "N/A", TextOr(doc.Find("p"), "N/A"))
	assert.Equal(t, "/book/1", AttrOr(doc.Find("a.x"), "href", ""))
	assert.Equal(t, "none", AttrOr(doc.Find("a.x"), "title", "none"))
	assert.Equal(t, "", Text(nil))
}
