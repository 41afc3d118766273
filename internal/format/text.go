package format

import (
	"fmt"
	"html"
)

// Static message templates. User-visible failures are friendly strings with
// no internal diagnostic detail.

const Welcome = `🏦 <b>Welcome to the Financial Advisor!</b>

I can help you with stock market analysis:

📊 <b>What I can do:</b>
• Analyze stocks by ticker
• Detailed company information
• Investment calculator
• Personal watchlist
• Investment tips

<b>Commands:</b>
/stock [TICKER] - stock analysis
/overview [TICKER] - company overview
/watchlist - your watchlist
/calculator - investment calculator
/tips - investment tips
/help - help

Enter a stock ticker or use the menu 👇`

const Help = `<b>Commands:</b>
/stock [TICKER] - stock analysis
/overview [TICKER] - company overview
/watchlist - your watchlist
/calculator - investment calculator
/tips - investment tips

You can also pick an action from the menu below.`

const Tips = `💡 <b>Investment tips:</b>

💡 <b>Diversify</b> - don't put all your money into one stock

📊 <b>Check the P/E ratio</b> - a gauge of how richly a company is valued

🎯 <b>Long-term investing</b> is usually less risky

📈 <b>Dollar cost averaging</b> - buy regularly in small amounts

🔍 <b>Study the company</b> before investing

⚖️ <b>Risk and reward</b> always go together

📰 <b>Follow the news</b> about the company and the market`

const (
	TickerPrompt = "Enter a stock ticker to analyze (for example: AAPL, TSLA, MSFT):"

	OverviewTickerPrompt = "Enter a company ticker for a detailed overview:"

	CalculatorPrompt = `🧮 <b>Investment calculator</b>

Enter your position in this format:
<code>TICKER shares buy_price</code>

Example: <code>AAPL 10 150.50</code>`

	CalculatorFormatError = `❌ Wrong input format!

Use: <code>TICKER shares price</code>
Example: <code>AAPL 10 150.50</code>`

	UsageStock    = "Enter a stock ticker. Example: /stock AAPL"
	UsageOverview = "Enter a company ticker. Example: /overview AAPL"

	EmptyWatchlist = "📋 Your watchlist is empty.\n" +
		"Analyze a stock with /stock [TICKER] and press 'Add to watchlist'"

	WatchlistUnavailable = "❌ Could not load your watchlist, try again later"

	SearchingQuote    = "🔍 Fetching data..."
	SearchingOverview = "🔍 Loading company data..."

	TopStocksPrompt = "📈 <b>Popular stocks:</b>\n\nPick a stock to analyze:"

	UnknownInput = "I didn't get that. Use /help or the menu below 👇"
)

// NoData is the templated not-found reply for a quote fetch.
func NoData(ticker string) string {
	return fmt.Sprintf("❌ Could not find data for %s", html.EscapeString(ticker))
}

// NoCompanyData is the templated not-found reply for an overview fetch.
func NoCompanyData(ticker string) string {
	return fmt.Sprintf("❌ Could not find company data for %s", html.EscapeString(ticker))
}

// AddedToWatchlist confirms a persisted watch-list entry.
func AddedToWatchlist(ticker string) string {
	return fmt.Sprintf("✅ %s added to your watchlist!", ticker)
}
