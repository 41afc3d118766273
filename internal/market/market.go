package market

import "context"

// Quote is the normalized snapshot of a security's current trading figures.
// Numeric fields missing from the provider payload are zero, which callers
// treat as "unknown" rather than a true zero price.
type Quote struct {
	Symbol        string
	Price         float64
	Change        float64
	ChangePercent string
	Volume        int64
	High          float64
	Low           float64
	Open          float64
	PreviousClose float64
}

// Overview is descriptive and fundamental data about the issuing company.
// Raw carries every field of the provider payload unaltered, including the
// ones lifted into named fields.
type Overview struct {
	Symbol        string
	Name          string
	Sector        string
	Industry      string
	Country       string
	MarketCap     string
	PERatio       string
	EPS           string
	DividendYield string
	WeekHigh52    string
	WeekLow52     string
	Description   string
	Raw           map[string]string
}

// Provider fetches market data for a single ticker per call.
type Provider interface {
	GlobalQuote(ctx context.Context, symbol string) (*Quote, error)
	CompanyOverview(ctx context.Context, symbol string) (*Overview, error)
}
