package craigslist

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Searcher is one Craigslist search strategy. Both strategies produce the
// same raw item shape.
type Searcher interface {
	Search(ctx context.Context, title string, price float64) ([]Item, error)
}

// Adapter wraps a search strategy and absorbs its failures. Craigslist is
// best effort: a broken scrape must never take down the whole comparison,
// so any error degrades to an empty result list.
type Adapter struct {
	strategy Searcher
}

func NewAdapter(strategy Searcher) *Adapter {
	return &Adapter{strategy: strategy}
}

// NewAdapterFromStrategy builds an adapter for the configured strategy
// name. Unknown names fall back to the feed strategy, which works without
// a local Chrome install.
func NewAdapterFromStrategy(name, site string) *Adapter {
	switch name {
	case "dom":
		return NewAdapter(NewDOMSearcher(site, DefaultSettlePolicy()))
	default:
		return NewAdapter(NewFeedSearcher(site))
	}
}

// Search runs the configured strategy. Errors are logged and swallowed;
// the caller always gets a usable (possibly empty) slice.
func (a *Adapter) Search(ctx context.Context, title string, price float64) []Item {
	items, err := a.strategy.Search(ctx, title, price)
	if err != nil {
		log.Warn().Err(err).Str("title", title).Msg("craigslist search failed, returning no results")
		return []Item{}
	}
	if items == nil {
		items = []Item{}
	}
	return items
}
