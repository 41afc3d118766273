package market

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Source turns provider errors into absent results. Conversation code never
// sees a fetch error: a nil record means "no data" and the failure is logged
// with enough context to diagnose provider issues.
type Source struct {
	p Provider
}

func NewSource(p Provider) *Source {
	return &Source{p: p}
}

// Quote fetches a fresh quote for ticker. Exactly one request, no retry,
// no cache. Returns nil on any failure.
func (s *Source) Quote(ctx context.Context, ticker string) *Quote {
	q, err := s.p.GlobalQuote(ctx, ticker)
	if err != nil {
		log.Error().Err(err).Str("ticker", ticker).Str("op", "quote").Msg("market data fetch failed")
		return nil
	}
	return q
}

// Overview fetches company fundamentals for ticker. Returns nil on any failure.
func (s *Source) Overview(ctx context.Context, ticker string) *Overview {
	o, err := s.p.CompanyOverview(ctx, ticker)
	if err != nil {
		log.Error().Err(err).Str("ticker", ticker).Str("op", "overview").Msg("market data fetch failed")
		return nil
	}
	return o
}
