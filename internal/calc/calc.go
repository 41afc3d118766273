// Package calc computes buy-vs-current profit/loss on exact decimals.
package calc

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrBadInput marks calculator input that cannot be evaluated: wrong token
// count, non-numeric shares or price, or a position with nothing invested.
var ErrBadInput = errors.New("invalid calculator input")

// Position is a parsed "TICKER shares buy-price" calculator payload.
type Position struct {
	Ticker   string
	Shares   int64
	BuyPrice decimal.Decimal
}

// Result holds the evaluated position. All money values are exact decimals;
// rendering decides the display precision.
type Result struct {
	Ticker        string
	Shares        int64
	BuyPrice      decimal.Decimal
	CurrentPrice  decimal.Decimal
	Invested      decimal.Decimal
	CurrentValue  decimal.Decimal
	ProfitLoss    decimal.Decimal
	ProfitPercent decimal.Decimal
}

// Gain reports whether the position is in profit.
func (r Result) Gain() bool {
	return r.ProfitLoss.IsPositive()
}

// ParsePosition parses calculator input of exactly three whitespace-separated
// tokens: ticker, integer share count, decimal buy price. Validation happens
// here, before any arithmetic: a zero share count or zero buy price means
// zero invested and is rejected up front rather than guarded at division.
func ParsePosition(text string) (Position, error) {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) != 3 {
		return Position{}, ErrBadInput
	}

	shares, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || shares <= 0 {
		return Position{}, ErrBadInput
	}

	buyPrice, err := decimal.NewFromString(parts[2])
	if err != nil || !buyPrice.IsPositive() {
		return Position{}, ErrBadInput
	}

	return Position{
		Ticker:   strings.ToUpper(parts[0]),
		Shares:   shares,
		BuyPrice: buyPrice,
	}, nil
}

// Evaluate computes invested amount, current value and profit/loss of a
// position at the given current price.
func Evaluate(p Position, currentPrice decimal.Decimal) (Result, error) {
	shares := decimal.NewFromInt(p.Shares)
	invested := shares.Mul(p.BuyPrice)
	if invested.IsZero() {
		return Result{}, ErrBadInput
	}

	currentValue := shares.Mul(currentPrice)
	profitLoss := currentValue.Sub(invested)
	profitPercent := profitLoss.Div(invested).Mul(decimal.NewFromInt(100))

	return Result{
		Ticker:        p.Ticker,
		Shares:        p.Shares,
		BuyPrice:      p.BuyPrice,
		CurrentPrice:  currentPrice,
		Invested:      invested,
		CurrentValue:  currentValue,
		ProfitLoss:    profitLoss,
		ProfitPercent: profitPercent,
	}, nil
}
