package market_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"finbot/internal/market"
)

type fakeProvider struct {
	quote    *market.Quote
	overview *market.Overview
	err      error
	calls    int
}

func (f *fakeProvider) GlobalQuote(_ context.Context, symbol string) (*market.Quote, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.quote, nil
}

func (f *fakeProvider) CompanyOverview(_ context.Context, symbol string) (*market.Overview, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.overview, nil
}

func TestSource_QuotePassthrough(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{quote: &market.Quote{Symbol: "AAPL", Price: 150.25}}
	s := market.NewSource(p)

	q := s.Quote(context.Background(), "AAPL")
	require.NotNil(t, q)
	require.Equal(t, "AAPL", q.Symbol)
	require.Equal(t, 1, p.calls)
}

func TestSource_QuoteAbsentOnError(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{err: errors.New("connection refused")}
	s := market.NewSource(p)

	// A failed fetch is absent, never an error to the caller.
	require.Nil(t, s.Quote(context.Background(), "AAPL"))
	require.Nil(t, s.Overview(context.Background(), "AAPL"))
}

func TestSource_OneRequestPerCall(t *testing.T) {
	t.Parallel()

	// No retry and no caching: every call reaches the provider once.
	p := &fakeProvider{err: errors.New("boom")}
	s := market.NewSource(p)

	s.Quote(context.Background(), "AAPL")
	s.Quote(context.Background(), "AAPL")
	require.Equal(t, 2, p.calls)
}
