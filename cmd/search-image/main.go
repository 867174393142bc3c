// Command search-image runs the full comparison pipeline against a local
// screenshot file and prints the result as JSON. Useful for testing the
// pipeline without the extension.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ravenext/raven-server/config"
	"github.com/ravenext/raven-server/internal/api"
	"github.com/ravenext/raven-server/internal/craigslist"
	"github.com/ravenext/raven-server/internal/ebay"
	"github.com/ravenext/raven-server/internal/pipeline"
	"github.com/ravenext/raven-server/internal/vision"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: search-image <screenshot.png>")
		os.Exit(1)
	}

	config.LoadEnvFile()
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read screenshot")
	}
	imageData := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)

	ctx := context.Background()

	recognizer, err := vision.NewGeminiRecognizer(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize text recognizer")
	}

	ebayClient := ebay.NewClient(ebay.ClientOpts{
		ClientID:     cfg.EbayClientID,
		ClientSecret: cfg.EbayClientSecret,
		Policy:       ebay.PolicyFromName(cfg.EbayPricePolicy),
	})
	craigslistAdapter := craigslist.NewAdapterFromStrategy(cfg.CraigslistStrategy, cfg.CraigslistSite)

	p := pipeline.New(recognizer, ebayClient, craigslistAdapter)
	result, err := p.Run(ctx, imageData)
	if err != nil {
		log.Fatal().Err(err).Msg("pipeline failed")
	}

	out := api.SearchResponse{
		Success:   true,
		Extracted: result.Extracted,
		Results: api.Results{
			Ebay:       result.Buckets.Ebay.Listings,
			Craigslist: result.Buckets.Craigslist.Listings,
		},
		Stats: api.StatsFromBuckets(result.Buckets),
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to encode result")
	}
	fmt.Println(string(encoded))
}
