package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ravenext/raven-server/config"
	"github.com/ravenext/raven-server/internal/api"
	"github.com/ravenext/raven-server/internal/craigslist"
	"github.com/ravenext/raven-server/internal/ebay"
	"github.com/ravenext/raven-server/internal/pipeline"
	"github.com/ravenext/raven-server/internal/vision"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if os.Getenv("GEMINI_API_KEY") == "" {
		log.Fatal().Msg("GEMINI_API_KEY is not set")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	recognizer, err := vision.NewGeminiRecognizer(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize text recognizer")
	}
	log.Info().Msg("text recognizer initialized")

	ebayClient := ebay.NewClient(ebay.ClientOpts{
		ClientID:     cfg.EbayClientID,
		ClientSecret: cfg.EbayClientSecret,
		Policy:       ebay.PolicyFromName(cfg.EbayPricePolicy),
	})

	craigslistAdapter := craigslist.NewAdapterFromStrategy(cfg.CraigslistStrategy, cfg.CraigslistSite)
	log.Info().
		Str("strategy", cfg.CraigslistStrategy).
		Str("site", cfg.CraigslistSite).
		Msg("craigslist adapter initialized")

	p := pipeline.New(recognizer, ebayClient, craigslistAdapter)
	router := api.NewServer(api.NewHandler(p))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("shutdown with error")
	} else {
		log.Info().Msg("shutdown complete")
	}
}
