package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"

	"finbot/internal/market"
)

// CompanyOverview retrieves company fundamentals for a symbol. The OVERVIEW
// payload is a flat JSON object; a "Symbol" field is the existence signal
// (the provider returns an empty object for unknown tickers).
func (c *Client) CompanyOverview(ctx context.Context, symbol string) (*market.Overview, error) {
	query := maps.Clone(c.query)
	query.Add("function", "OVERVIEW")
	query.Add("symbol", symbol)

	url := fmt.Sprintf("%s/query?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusForbidden:
		return nil, fmt.Errorf("unauthorized")

	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("rate limited")

	default:
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding overview response: %w", err)
	}

	raw := make(map[string]string, len(body))
	for key, value := range body {
		// Overview values are documented as strings; anything else
		// (throttling notes carry nested objects) is skipped.
		if s, ok := value.(string); ok {
			raw[key] = s
		}
	}
	if raw["Symbol"] == "" {
		return nil, fmt.Errorf("missing %q field for %s", "Symbol", symbol)
	}

	return &market.Overview{
		Symbol:        raw["Symbol"],
		Name:          raw["Name"],
		Sector:        raw["Sector"],
		Industry:      raw["Industry"],
		Country:       raw["Country"],
		MarketCap:     raw["MarketCapitalization"],
		PERatio:       raw["PERatio"],
		EPS:           raw["EPS"],
		DividendYield: raw["DividendYield"],
		WeekHigh52:    raw["52WeekHigh"],
		WeekLow52:     raw["52WeekLow"],
		Description:   raw["Description"],
		Raw:           raw,
	}, nil
}
