package api

import (
	"github.com/ravenext/raven-server/internal/extract"
	"github.com/ravenext/raven-server/internal/listing"
)

// SearchRequest is the payload both endpoints accept: a base64 data-URL
// screenshot and the URL of the page it was taken from.
type SearchRequest struct {
	ImageData string `json:"imageData"`
	SourceURL string `json:"sourceUrl"`
}

// SearchResponse is the successful result of the full pipeline.
type SearchResponse struct {
	Success   bool           `json:"success"`
	Extracted extract.Fields `json:"extracted"`
	Results   Results        `json:"results"`
	Stats     Stats          `json:"stats"`
}

// Results holds the normalized listings per platform.
type Results struct {
	Ebay       []listing.Normalized `json:"ebay"`
	Craigslist []listing.Normalized `json:"craigslist"`
}

// Stats holds per-source and combined aggregate statistics.
type Stats struct {
	All        SourceStats `json:"all"`
	Ebay       SourceStats `json:"ebay"`
	Craigslist SourceStats `json:"craigslist"`
}

type SourceStats struct {
	Count    int    `json:"count"`
	AvgPrice string `json:"avgPrice"`
}

// ExtractResponse is the result of the extraction-only endpoint.
type ExtractResponse struct {
	Success   bool           `json:"success"`
	Extracted extract.Fields `json:"extracted"`
}

// ErrorResponse is returned for any failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// StatsFromBuckets projects normalization buckets into response stats.
func StatsFromBuckets(b listing.Buckets) Stats {
	return Stats{
		All:        SourceStats{Count: b.All.Count, AvgPrice: b.All.AvgPrice},
		Ebay:       SourceStats{Count: b.Ebay.Count, AvgPrice: b.Ebay.AvgPrice},
		Craigslist: SourceStats{Count: b.Craigslist.Count, AvgPrice: b.Craigslist.AvgPrice},
	}
}
