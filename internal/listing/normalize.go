package listing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ravenext/raven-server/internal/craigslist"
	"github.com/ravenext/raven-server/internal/ebay"
)

// ZeroPrice is the average shown when no listing has a parseable price.
const ZeroPrice = "$0.00"

var numericRunRe = regexp.MustCompile(`[\d,]+\.?\d*`)

// Normalize maps raw source records into canonical listings and computes
// per-source and combined buckets. Buckets are recomputed in full on every
// call; nothing is persisted.
func Normalize(ebayRaw []ebay.Item, craigslistRaw []craigslist.Item) Buckets {
	ebayListings := make([]Normalized, 0, len(ebayRaw))
	for _, item := range ebayRaw {
		ebayListings = append(ebayListings, Normalized{
			Image:    orDefault(item.ImageURL, DefaultImage),
			Price:    orDefault(item.Price, NotAvailable),
			Title:    orDefault(item.Title, DefaultTitle),
			URL:      orDefault(item.URL, DefaultURL),
			Platform: PlatformEbay,
		})
	}

	craigslistListings := make([]Normalized, 0, len(craigslistRaw))
	for _, item := range craigslistRaw {
		craigslistListings = append(craigslistListings, Normalized{
			Image:    orDefault(item.Image, DefaultImage),
			Price:    orDefault(item.Price, NotAvailable),
			Title:    orDefault(item.Title, DefaultTitle),
			URL:      orDefault(item.URL, DefaultURL),
			Platform: PlatformCraigslist,
		})
	}

	// eBay first, then Craigslist. The combined view relies on this order.
	all := make([]Normalized, 0, len(ebayListings)+len(craigslistListings))
	all = append(all, ebayListings...)
	all = append(all, craigslistListings...)

	return Buckets{
		All:        newBucket(all),
		Ebay:       newBucket(ebayListings),
		Craigslist: newBucket(craigslistListings),
	}
}

func newBucket(listings []Normalized) Bucket {
	return Bucket{
		Count:    len(listings),
		AvgPrice: AveragePrice(listings),
		Listings: listings,
	}
}

// AveragePrice computes the arithmetic mean of parseable prices among the
// given listings, formatted to two decimals. Listings whose display price
// yields no positive numeric value are excluded from the average rather
// than counted as zero.
func AveragePrice(listings []Normalized) string {
	var sum float64
	var n int
	for _, l := range listings {
		match := numericRunRe.FindString(l.Price)
		if match == "" {
			continue
		}
		price, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
		if err != nil || price <= 0 {
			continue
		}
		sum += price
		n++
	}
	if n == 0 {
		return ZeroPrice
	}
	return fmt.Sprintf("$%.2f", sum/float64(n))
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
