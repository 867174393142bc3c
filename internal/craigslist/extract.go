package craigslist

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selector fallback chains, tried in order until one yields a match. The
// markup differs between the classic and gallery search layouts, so every
// field has its own chain.
var (
	containerSelectors = []string{".cl-search-result", `[class*="result"]`, ".gallery-card"}
	titleSelectors     = []string{"a.posting-title .label", `[class*="title"]`, "a"}
	priceSelectors     = []string{".priceinfo", `[class*="price"]`}
	linkSelectors      = []string{"a.posting-title", "a"}
	imageSelectors     = []string{"img"}
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// extractListings parses rendered search-results HTML into raw items.
// Zero matching nodes under every container fallback is an empty result,
// not an error.
func extractListings(doc *goquery.Document) []Item {
	var nodes *goquery.Selection
	for _, sel := range containerSelectors {
		nodes = doc.Find(sel)
		if nodes.Length() > 0 {
			break
		}
	}
	if nodes == nil || nodes.Length() == 0 {
		return []Item{}
	}

	items := make([]Item, 0, maxResults)
	nodes.EachWithBreak(func(_ int, node *goquery.Selection) bool {
		items = append(items, Item{
			Title: firstText(node, titleSelectors),
			Price: firstText(node, priceSelectors),
			URL:   firstAttr(node, linkSelectors, "href"),
			Image: firstAttr(node, imageSelectors, "src"),
		})
		return len(items) < maxResults
	})

	return items
}

// firstText walks a selector chain and returns the first non-empty text
// match, collapsed to single spaces.
func firstText(node *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		text := strings.TrimSpace(node.Find(sel).First().Text())
		if text != "" {
			return whitespaceRe.ReplaceAllString(text, " ")
		}
	}
	return NotAvailable
}

// firstAttr walks a selector chain and returns the first non-empty value
// of the given attribute.
func firstAttr(node *goquery.Selection, selectors []string, attr string) string {
	for _, sel := range selectors {
		if val, ok := node.Find(sel).First().Attr(attr); ok && val != "" {
			return val
		}
	}
	return NotAvailable
}
