package craigslist

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

var feedPriceRe = regexp.MustCompile(`\$\d+`)

// FeedSearcher fetches search results as a syndication feed. No browser
// required, but listing images are not part of the feed.
type FeedSearcher struct {
	httpClient *resty.Client
	gofeed     *gofeed.Parser
	site       string
	// baseURL overrides the craigslist host, for tests.
	baseURL string
}

func NewFeedSearcher(site string) *FeedSearcher {
	return &FeedSearcher{
		httpClient: resty.New().
			SetHeader("User-Agent", domUserAgent),
		gofeed: gofeed.NewParser(),
		site:   site,
	}
}

// NewFeedSearcherWithBaseURL creates a feed searcher that queries the
// given base URL instead of the craigslist site subdomain.
func NewFeedSearcherWithBaseURL(baseURL string) *FeedSearcher {
	s := NewFeedSearcher("")
	s.baseURL = baseURL
	return s
}

// Search fetches the results feed with the same price window as the DOM
// strategy and maps each entry into a raw item. Entries missing both title
// and link are skipped; the price is the first dollar amount found in the
// entry title.
func (s *FeedSearcher) Search(ctx context.Context, title string, price float64) ([]Item, error) {
	feedURL := searchURL(s.site, title, price) + "&format=rss"
	if s.baseURL != "" {
		feedURL = s.baseURL + "/search/sss?format=rss"
	}

	res, err := s.httpClient.NewRequest().
		SetContext(ctx).
		Get(feedURL)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("feed request failed: %s (status: %d)", feedURL, res.StatusCode())
	}

	feed, err := s.gofeed.Parse(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Item, 0, maxResults)
	for _, entry := range feed.Items {
		if entry.Title == "" && entry.Link == "" {
			continue
		}

		item := Item{
			Title: entry.Title,
			Price: NotAvailable,
			URL:   entry.Link,
		}
		if m := feedPriceRe.FindString(entry.Title); m != "" {
			item.Price = m
		}
		if entry.Description != "" {
			item.Description = truncate(entry.Description, 100)
		} else {
			item.Description = NotAvailable
		}

		items = append(items, item)
		if len(items) >= maxResults {
			break
		}
	}

	return items, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
