package craigslist

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractListingsPrimarySelector(t *testing.T) {
	doc := docFromHTML(t, `
		<ul>
			<li class="cl-search-result">
				<a class="posting-title" href="https://sfbay.craigslist.org/post/1">
					<span class="label">Game Boy Advance</span>
				</a>
				<span class="priceinfo">$120</span>
				<img src="https://images.craigslist.org/1.jpg">
			</li>
		</ul>`)

	items := extractListings(doc)
	require.Len(t, items, 1)
	assert.Equal(t, Item{
		Title: "Game Boy Advance",
		Price: "$120",
		URL:   "https://sfbay.craigslist.org/post/1",
		Image: "https://images.craigslist.org/1.jpg",
	}, items[0])
}

func TestExtractListingsContainerFallback(t *testing.T) {
	// No .cl-search-result nodes; the class-contains fallback should pick
	// these up instead.
	doc := docFromHTML(t, `
		<div class="search-result-row">
			<a href="https://sfbay.craigslist.org/post/2">Bike frame</a>
			<span class="price-tag">$45</span>
		</div>`)

	items := extractListings(doc)
	require.Len(t, items, 1)
	assert.Equal(t, "Bike frame", items[0].Title)
	assert.Equal(t, "$45", items[0].Price)
	assert.Equal(t, "https://sfbay.craigslist.org/post/2", items[0].URL)
	assert.Equal(t, NotAvailable, items[0].Image)
}

func TestExtractListingsGalleryCardFallback(t *testing.T) {
	doc := docFromHTML(t, `
		<div class="gallery-card">
			<a href="https://sfbay.craigslist.org/post/3">Desk</a>
		</div>`)

	items := extractListings(doc)
	require.Len(t, items, 1)
	assert.Equal(t, "Desk", items[0].Title)
	assert.Equal(t, NotAvailable, items[0].Price)
}

func TestExtractListingsNoMatches(t *testing.T) {
	doc := docFromHTML(t, `<div class="unrelated"><p>nothing here</p></div>`)

	items := extractListings(doc)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestExtractListingsFieldDefaults(t *testing.T) {
	doc := docFromHTML(t, `<div class="cl-search-result"><span>bare node</span></div>`)

	items := extractListings(doc)
	require.Len(t, items, 1)
	assert.Equal(t, NotAvailable, items[0].Title)
	assert.Equal(t, NotAvailable, items[0].Price)
	assert.Equal(t, NotAvailable, items[0].URL)
	assert.Equal(t, NotAvailable, items[0].Image)
}

func TestExtractListingsCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&sb, `<li class="cl-search-result"><a href="https://x/%d">item %d</a></li>`, i, i)
	}
	doc := docFromHTML(t, sb.String())

	items := extractListings(doc)
	assert.Len(t, items, maxResults)
	assert.Equal(t, "item 0", items[0].Title)
}
