package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"strconv"
	"strings"

	"finbot/internal/market"
)

// Field labels of the GLOBAL_QUOTE payload as documented by the provider.
const (
	fieldSymbol        = "01. symbol"
	fieldOpen          = "02. open"
	fieldHigh          = "03. high"
	fieldLow           = "04. low"
	fieldPrice         = "05. price"
	fieldVolume        = "06. volume"
	fieldPrevClose     = "08. previous close"
	fieldChange        = "09. change"
	fieldChangePercent = "10. change percent"
)

// GlobalQuote retrieves the current quote for a symbol and normalizes it.
// The provider signals existence with a top-level "Global Quote" object;
// its absence (unknown ticker, throttling note, malformed body) is an error.
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (*market.Quote, error) {
	query := maps.Clone(c.query)
	query.Add("function", "GLOBAL_QUOTE")
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

	var body struct {
		GlobalQuote map[string]string `json:"Global Quote"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding quote response: %w", err)
	}
	if len(body.GlobalQuote) == 0 {
		return nil, fmt.Errorf("missing %q object for %s", "Global Quote", symbol)
	}

	raw := body.GlobalQuote
	return &market.Quote{
		Symbol:        raw[fieldSymbol],
		Price:         parseFloat(raw[fieldPrice]),
		Change:        parseFloat(raw[fieldChange]),
		ChangePercent: changePercentOrDefault(raw[fieldChangePercent]),
		Volume:        parseInt(raw[fieldVolume]),
		High:          parseFloat(raw[fieldHigh]),
		Low:           parseFloat(raw[fieldLow]),
		Open:          parseFloat(raw[fieldOpen]),
		PreviousClose: parseFloat(raw[fieldPrevClose]),
	}, nil
}

// parseFloat parses a provider numeric string; missing or malformed is 0,
// which downstream treats as "unknown".
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func changePercentOrDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return "0%"
	}
	return s
}
