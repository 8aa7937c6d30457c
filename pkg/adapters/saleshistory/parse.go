package saleshistory

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/htmlx"
)

const shopOnEbay = "Shop on eBay"

var itemIDPattern = regexp.MustCompile(`itm/(\d+)`)

// Sale is one completed, sold listing.
type Sale struct {
	Item          string `json:"Item"`
	SoldDate      string `json:"Sold Date"`
	SellingPrice  string `json:"Selling Price"`
	DeliveryPrice string `json:"Delivery Price"`
	URL           string `json:"URL"`
	ImageURL      string `json:"Image URL"`
}

// ParseSales extracts sold listings from a search results page. Sponsored
// entries, "Shop on eBay" placeholders, brand-new listings and entries without
// a title are skipped. Item links are canonicalized onto itemBaseURL.
func ParseSales(body []byte, itemBaseURL string) ([]Sale, error) {
	doc, err := htmlx.Parse(body)
	if err != nil {
		return nil, err
	}
	sales := []Sale{}
	doc.Find("li.s-item").Each(func(_ int, item *goquery.Selection) {
		if skip(item) {
			return
		}
		title := titleOf(item)
		if title == "" {
			return
		}
		sales = append(sales, Sale{
			Item:          title,
			SoldDate:      soldDate(item),
			SellingPrice:  htmlx.TextOr(item.Find("span.s-item__price"), mcpkit.NotAvailable),
			DeliveryPrice: htmlx.TextOr(item.Find("span.s-item__shipping.s-item__logisticsCost"), mcpkit.NotAvailable),
			URL:           itemURL(item, itemBaseURL),
			ImageURL:      htmlx.AttrOr(item.Find("div.s-item__image-wrapper").First().Find("img"), "src", mcpkit.NotAvailable),
		})
	})
	return sales, nil
}

func skip(item *goquery.Selection) bool {
	if item.Find("span.s-item__sponsored-text").Length() > 0 {
		return true
	}
	if item.Find(`div.s-item__image-wrapper img[alt="Shop on eBay"]`).Length() > 0 {
		return true
	}
	brandNew := false
	item.Find("div.s-item__subtitle span.SECONDARY_INFO").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		brandNew = strings.Contains(s.Text(), "Brand New")
		return !brandNew
	})
	return brandNew
}

func titleOf(item *goquery.Selection) string {
	if h3 := item.Find("h3.s-item__title").First(); h3.Length() > 0 {
		if title := htmlx.Text(h3); title != shopOnEbay {
			return title
		}
	}
	return htmlx.Text(item.Find("div.s-item__title"))
}

func soldDate(item *goquery.Selection) string {
	caption := item.Find("span.s-item__caption--signal.POSITIVE").First()
	if caption.Length() == 0 {
		return mcpkit.NotAvailable
	}
	return strings.TrimSpace(strings.ReplaceAll(htmlx.Text(caption), "Sold ", ""))
}

func itemURL(item *goquery.Selection, itemBaseURL string) string {
	href := htmlx.AttrOr(item.Find("a.s-item__link"), "href", "")
	if href == "" {
		return mcpkit.NotAvailable
	}
	if m := itemIDPattern.FindStringSubmatch(href); m != nil {
		return itemBaseURL + "/itm/" + m[1]
	}
	return href
}
