package craigslist

import (
	"fmt"
	"net/url"
)

// NotAvailable is substituted for fields that could not be scraped.
const NotAvailable = "N/A"

// maxResults caps how many listings a single search returns, regardless of
// strategy.
const maxResults = 10

// Item is one raw Craigslist search result in the source-specific wire
// shape the extension consumes. Discarded after normalization.
type Item struct {
	Title       string `json:"craigslist_title"`
	Price       string `json:"craigslist_price"`
	URL         string `json:"craigslist_url"`
	Image       string `json:"craigslist_image,omitempty"`
	Description string `json:"craigslist_description,omitempty"`
}

// searchURL builds the gallery search URL for the given site subdomain.
// The price window is always [1, price+1000].
func searchURL(site, title string, price float64) string {
	maxPrice := int(price) + 1000
	return fmt.Sprintf("https://%s.craigslist.org/search/sss?query=%s&min_price=1&max_price=%d",
		site, url.QueryEscape(title), maxPrice)
}
