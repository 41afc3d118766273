package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"finbot/internal/alphavantage"
	"finbot/internal/bot"
	"finbot/internal/config"
	"finbot/internal/httpx"
	"finbot/internal/market"
	"finbot/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	// Missing credentials are fatal: the process must not start without them.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer st.Close()
	if err := st.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure database schema")
	}

	httpClient := httpx.New(time.Duration(cfg.AlphaVantage.RequestTimeoutSec) * time.Second)

	avClient, err := alphavantage.NewClient(
		cfg.AlphaVantage.APIKey,
		alphavantage.WithBaseURL(cfg.AlphaVantage.BaseURL),
		alphavantage.WithHTTPClient(httpClient),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create market data client")
	}

	ctrl := bot.NewController(st, market.NewSource(avClient))

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Telegram")
	}

	bot.NewTelegram(api, ctrl, cfg.Telegram.PollTimeoutSec).Run(ctx)
	log.Info().Msg("bot stopped")
}
