// Package format renders domain records into user-facing message text.
// Everything here is a pure function of its inputs; messages use Telegram
// HTML markup.
package format

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"finbot/internal/calc"
	"finbot/internal/market"
)

// descriptionLimit caps the company description at 500 characters before
// the continuation marker.
const descriptionLimit = 500

var volumePrinter = message.NewPrinter(language.English)

// Volume renders a share volume with thousands separators.
func Volume(v int64) string {
	return volumePrinter.Sprintf("%d", v)
}

func trendEmoji(positive bool) string {
	if positive {
		return "📈"
	}
	return "📉"
}

// QuoteAnalysis renders a quote snapshot. The timestamp is the formatting
// time, not the quote's own: the provider does not supply one.
func QuoteAnalysis(q *market.Quote, now time.Time) string {
	emoji := trendEmoji(q.Change > 0)
	color := "🔴"
	if q.Change > 0 {
		color = "🟢"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>Stock analysis: %s</b>\n\n", html.EscapeString(q.Symbol))
	fmt.Fprintf(&b, "💰 <b>Price:</b> $%.2f\n", q.Price)
	fmt.Fprintf(&b, "%s <b>Change:</b> %s $%+.2f (%s)\n\n", emoji, color, q.Change, html.EscapeString(q.ChangePercent))
	fmt.Fprintf(&b, "📈 <b>Day high:</b> $%.2f\n", q.High)
	fmt.Fprintf(&b, "📉 <b>Day low:</b> $%.2f\n", q.Low)
	fmt.Fprintf(&b, "🎯 <b>Open:</b> $%.2f\n", q.Open)
	fmt.Fprintf(&b, "🔒 <b>Previous close:</b> $%.2f\n", q.PreviousClose)
	fmt.Fprintf(&b, "📊 <b>Volume:</b> %s\n\n", Volume(q.Volume))
	fmt.Fprintf(&b, "⏰ <b>Updated:</b> %s", now.Format("2006-01-02 15:04"))
	return b.String()
}

// OverviewReport renders company fundamentals. The free-text description is
// truncated to its first 500 characters with a continuation marker.
func OverviewReport(o *market.Overview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏢 <b>Company overview: %s</b>\n\n", html.EscapeString(o.Symbol))
	fmt.Fprintf(&b, "📝 <b>Name:</b> %s\n", orNA(html.EscapeString(o.Name)))
	fmt.Fprintf(&b, "🏭 <b>Sector:</b> %s\n", orNA(html.EscapeString(o.Sector)))
	fmt.Fprintf(&b, "🔧 <b>Industry:</b> %s\n", orNA(html.EscapeString(o.Industry)))
	fmt.Fprintf(&b, "🌍 <b>Country:</b> %s\n\n", orNA(html.EscapeString(o.Country)))
	fmt.Fprintf(&b, "💹 <b>Market cap:</b> $%s\n", orNA(o.MarketCap))
	fmt.Fprintf(&b, "💰 <b>P/E ratio:</b> %s\n", orNA(o.PERatio))
	fmt.Fprintf(&b, "📊 <b>EPS:</b> %s\n", orNA(o.EPS))
	fmt.Fprintf(&b, "💵 <b>Dividend yield:</b> %s\n\n", orNA(o.DividendYield))
	fmt.Fprintf(&b, "📈 <b>52-week high:</b> $%s\n", orNA(o.WeekHigh52))
	fmt.Fprintf(&b, "📉 <b>52-week low:</b> $%s\n\n", orNA(o.WeekLow52))

	description := o.Description
	if description == "" {
		description = "No description available"
	}
	// Truncate before escaping so the 500-character budget counts the
	// description's own characters, not entity expansions.
	fmt.Fprintf(&b, "📄 <b>Description:</b> %s", html.EscapeString(truncate(description, descriptionLimit)))
	return b.String()
}

// WatchlistLine pairs a stored ticker with its freshly fetched quote.
// A nil quote marks a failed fetch for that one line.
type WatchlistLine struct {
	Ticker string
	Quote  *market.Quote
}

// WatchlistReport renders the watch-list in stored order. Lines whose fetch
// failed are marked unavailable instead of dropping the whole response.
func WatchlistReport(lines []WatchlistLine) string {
	var b strings.Builder
	b.WriteString("📋 <b>Your watchlist:</b>\n\n")
	for _, line := range lines {
		if line.Quote == nil {
			fmt.Fprintf(&b, "• <b>%s</b>: data unavailable\n", html.EscapeString(line.Ticker))
			continue
		}
		fmt.Fprintf(&b, "%s <b>%s</b>: $%.2f (%s)\n",
			trendEmoji(line.Quote.Change > 0),
			html.EscapeString(line.Ticker),
			line.Quote.Price,
			html.EscapeString(line.Quote.ChangePercent))
	}
	return strings.TrimRight(b.String(), "\n")
}

// CalculatorReport renders an evaluated position with signed absolute and
// percent change.
func CalculatorReport(r calc.Result) string {
	var b strings.Builder
	b.WriteString("🧮 <b>Investment calculation</b>\n\n")
	fmt.Fprintf(&b, "📊 <b>Stock:</b> %s\n", html.EscapeString(r.Ticker))
	fmt.Fprintf(&b, "💰 <b>Current price:</b> $%s\n", r.CurrentPrice.StringFixed(2))
	fmt.Fprintf(&b, "🔢 <b>Shares:</b> %d\n", r.Shares)
	fmt.Fprintf(&b, "💵 <b>Buy price:</b> $%s\n\n", r.BuyPrice.StringFixed(2))
	fmt.Fprintf(&b, "💸 <b>Invested:</b> $%s\n", r.Invested.StringFixed(2))
	fmt.Fprintf(&b, "💰 <b>Current value:</b> $%s\n\n", r.CurrentValue.StringFixed(2))
	fmt.Fprintf(&b, "%s <b>Profit/Loss:</b> $%s (%s%%)",
		trendEmoji(r.Gain()), signedFixed(r.ProfitLoss), signedFixed(r.ProfitPercent))
	return b.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// truncate cuts s to limit characters (runes, not bytes) and appends a
// continuation marker when something was cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// signedFixed renders a decimal to two places with an explicit sign.
func signedFixed(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if !strings.HasPrefix(s, "-") {
		return "+" + s
	}
	return s
}
