package saleshistory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
)

func TestParseSalesSkipsPromotions(t *testing.T) {
	body, err := os.ReadFile("testdata/sold.html")
	require.NoError(t, err)

	sales, err := ParseSales(body, DefaultBaseURL)
	require.NoError(t, err)
	require.Len(t, sales, 2)

	assert.Equal(t, Sale{
		Item:          "Nintendo Game Boy Color Teal CGB-001 Tested",
		SoldDate:      "Mar 3, 2025",
		SellingPrice:  "$64.99",
		DeliveryPrice: "+$8.50 delivery",
		URL:           "https://www.ebay.com/itm/186512345678",
		ImageURL:      "https://i.ebayimg.com/thumbs/images/g/abc/s-l500.jpg",
	}, sales[0])
	assert.Equal(t, Sale{
		Item:          "Game Boy Color Atomic Purple (parts)",
		SoldDate:      "N/A",
		SellingPrice:  "N/A",
		DeliveryPrice: "N/A",
		URL:           "https://www.ebay.com/sch/promo",
		ImageURL:      "N/A",
	}, sales[1])

	for _, s := range sales {
		assert.NotContains(t, s.Item, "Refurbished", "sponsored entry must be excluded")
		assert.NotEqual(t, "Shop on eBay", s.Item)
	}
}

func TestParseSalesEmptyPage(t *testing.T) {
	sales, err := ParseSales([]byte(`<html><body><p>No exact matches found</p></body></html>`), DefaultBaseURL)
	require.NoError(t, err)
	assert.NotNil(t, sales)
	assert.Empty(t, sales)
}

func TestGetSalesHistoryTool(t *testing.T) {
	body, err := os.ReadFile("testdata/sold.html")
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sch/i.html", r.URL.Path)
		assert.Equal(t, "game boy color", r.URL.Query().Get("_nkw"))
		assert.Equal(t, "1", r.URL.Query().Get("LH_Sold"))
		assert.Equal(t, "1", r.URL.Query().Get("LH_Complete"))
		assert.Contains(t, r.Header.Get("User-Agent"), "iPhone")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	reg := mcpkit.NewRegistry()
	reg.Register(Tools(NewClient(&Config{BaseURL: srv.URL}))...)

	res, err := reg.Call(context.Background(), "get_sales_history", map[string]any{"search_term": "game boy color"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Text(), "[\n    {\n        \"Item\""), res.Text())

	var sales []Sale
	require.NoError(t, json.Unmarshal([]byte(res.Text()), &sales))
	require.Len(t, sales, 2)
	assert.Equal(t, srv.URL+"/itm/186512345678", sales[0].URL)
}

func TestGetSalesHistoryRequiresTerm(t *testing.T) {
	reg := mcpkit.NewRegistry()
	reg.Register(Tools(NewClient(nil))...)
	_, err := reg.Call(context.Background(), "get_sales_history", map[string]any{"search_term": ""})
	require.Error(t, err)
	assert.Equal(t, mcpkit.CategoryInvalidParams, mcpkit.CategoryOf(err))
	assert.Equal(t, "Please provide a search term.", err.Error())
}
