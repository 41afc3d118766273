package alphavantage_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

const overviewBody = `{
	"Symbol": "AAPL",
	"Name": "Apple Inc",
	"Sector": "TECHNOLOGY",
	"Industry": "ELECTRONIC COMPUTERS",
	"Country": "USA",
	"MarketCapitalization": "2953679847000",
	"PERatio": "29.5",
	"EPS": "6.42",
	"DividendYield": "0.0054",
	"52WeekHigh": "199.62",
	"52WeekLow": "164.08",
	"Description": "Apple Inc. designs and sells smartphones.",
	"Beta": "1.286"
}`

func TestCompanyOverview(t *testing.T) {
	t.Parallel()

	// Arrange: a client answering a full OVERVIEW payload.
	client := newQuoteClient(t, func(req *http.Request) (*http.Response, error) {
		require.Equal(t, "OVERVIEW", req.URL.Query().Get("function"))
		require.Equal(t, "AAPL", req.URL.Query().Get("symbol"))
		return okResponse(overviewBody), nil
	})

	// Act
	overview, err := client.CompanyOverview(context.Background(), "AAPL")

	// Assert: named fundamentals are lifted, everything stays in Raw.
	require.NoError(t, err)
	require.Equal(t, "AAPL", overview.Symbol)
	require.Equal(t, "Apple Inc", overview.Name)
	require.Equal(t, "TECHNOLOGY", overview.Sector)
	require.Equal(t, "2953679847000", overview.MarketCap)
	require.Equal(t, "29.5", overview.PERatio)
	require.Equal(t, "199.62", overview.WeekHigh52)
	require.Equal(t, "164.08", overview.WeekLow52)
	require.Equal(t, "Apple Inc. designs and sells smartphones.", overview.Description)
	require.Equal(t, "1.286", overview.Raw["Beta"])
	require.Equal(t, "Apple Inc", overview.Raw["Name"])
}

func TestCompanyOverview_MissingSymbol(t *testing.T) {
	t.Parallel()

	// Arrange: unknown tickers come back as an empty object.
	client := newQuoteClient(t, func(req *http.Request) (*http.Response, error) {
		return okResponse(`{}`), nil
	})

	// Act
	overview, err := client.CompanyOverview(context.Background(), "ZZZZINVALID")

	// Assert
	require.Error(t, err)
	require.Nil(t, overview)
}

func TestCompanyOverview_SkipsNonStringValues(t *testing.T) {
	t.Parallel()

	// Arrange: throttling notes nest objects next to normal fields.
	client := newQuoteClient(t, func(req *http.Request) (*http.Response, error) {
		return okResponse(`{"Symbol": "AAPL", "Information": {"note": "throttled"}}`), nil
	})

	// Act
	overview, err := client.CompanyOverview(context.Background(), "AAPL")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "AAPL", overview.Symbol)
	require.NotContains(t, overview.Raw, "Information")
}
