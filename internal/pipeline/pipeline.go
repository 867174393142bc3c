package pipeline

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ravenext/raven-server/internal/craigslist"
	"github.com/ravenext/raven-server/internal/ebay"
	"github.com/ravenext/raven-server/internal/extract"
	"github.com/ravenext/raven-server/internal/listing"
	"github.com/ravenext/raven-server/internal/vision"
)

// DefaultLimit caps how many eBay results a single request asks for.
const DefaultLimit = 10

// EbaySearcher is the marketplace-API side of the fan-out.
type EbaySearcher interface {
	Search(ctx context.Context, title string, price float64, condition string, limit int) ([]ebay.Item, error)
}

// CraigslistSearcher is the scrape side of the fan-out. It cannot fail;
// failures have already been degraded to an empty result.
type CraigslistSearcher interface {
	Search(ctx context.Context, title string, price float64) []craigslist.Item
}

// Result is everything one request produces.
type Result struct {
	Extracted     extract.Fields
	EbayRaw       []ebay.Item
	CraigslistRaw []craigslist.Item
	Buckets       listing.Buckets
}

// Pipeline runs the screenshot-to-comparison flow. Each request allocates
// fresh state; nothing is shared or cached between runs.
type Pipeline struct {
	recognizer vision.Recognizer
	ebay       EbaySearcher
	craigslist CraigslistSearcher
	limit      int
}

func New(recognizer vision.Recognizer, ebaySearcher EbaySearcher, craigslistSearcher CraigslistSearcher) *Pipeline {
	return &Pipeline{
		recognizer: recognizer,
		ebay:       ebaySearcher,
		craigslist: craigslistSearcher,
		limit:      DefaultLimit,
	}
}

// Extract decodes the screenshot payload, runs text recognition and parses
// the listing fields. This is the fatal half of the pipeline: input,
// recognition and price-extraction failures all abort the request.
func (p *Pipeline) Extract(ctx context.Context, imageData string) (extract.Fields, error) {
	data, mimeType, err := extract.DecodeImageDataURL(imageData)
	if err != nil {
		return extract.Fields{}, err
	}

	text, err := p.recognizer.Recognize(ctx, data, mimeType)
	if err != nil {
		return extract.Fields{}, err
	}

	fields, err := extract.ParseFields(text)
	if err != nil {
		return extract.Fields{}, err
	}

	log.Info().
		Str("title", fields.Title).
		Float64("price", fields.Price).
		Str("condition", fields.Condition).
		Msg("extracted listing fields")

	return fields, nil
}

// Run executes the full pipeline for one request. The two source adapters
// have no data dependency on each other and run concurrently; both are
// joined before normalization. A failed eBay token exchange aborts the
// request, any other adapter failure degrades to an empty bucket for that
// source only.
func (p *Pipeline) Run(ctx context.Context, imageData string) (Result, error) {
	fields, err := p.Extract(ctx, imageData)
	if err != nil {
		return Result{}, err
	}

	var ebayRaw []ebay.Item
	var craigslistRaw []craigslist.Item

	g := new(errgroup.Group)
	g.Go(func() error {
		items, err := p.ebay.Search(ctx, fields.Title, fields.Price, fields.Condition, p.limit)
		if err != nil {
			var authErr *ebay.AuthError
			if errors.As(err, &authErr) {
				return err
			}
			log.Warn().Err(err).Msg("ebay search failed, returning no results")
			items = []ebay.Item{}
		}
		ebayRaw = items
		return nil
	})
	g.Go(func() error {
		craigslistRaw = p.craigslist.Search(ctx, fields.Title, fields.Price)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return Result{
		Extracted:     fields,
		EbayRaw:       ebayRaw,
		CraigslistRaw: craigslistRaw,
		Buckets:       listing.Normalize(ebayRaw, craigslistRaw),
	}, nil
}
