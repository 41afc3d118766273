package bot

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"finbot/internal/calc"
	"finbot/internal/format"
	"finbot/internal/market"
)

// Store is the persistence surface the controller needs.
type Store interface {
	UpsertUser(ctx context.Context, id int64, username, displayName string) error
	AddToWatchlist(ctx context.Context, userID int64, ticker string) error
	Watchlist(ctx context.Context, userID int64) ([]string, error)
}

// MarketData fetches fresh market records; nil means no data.
type MarketData interface {
	Quote(ctx context.Context, ticker string) *market.Quote
	Overview(ctx context.Context, ticker string) *market.Overview
}

// Event is one inbound user action, already stripped of transport detail.
// Exactly one of Command, Text or Callback is meaningful.
type Event struct {
	UserID      int64
	ChatID      int64
	Username    string
	DisplayName string
	Command     string // command name without the slash
	Args        string // command argument string
	Text        string // plain text message
	Callback    string // button payload
}

// Button is one selectable action offered with a reply.
type Button struct {
	Label string
	Data  string
}

// Reply is one outbound message. Ack carries a callback acknowledgement
// toast and may appear without text. Columns hints the button layout;
// zero means the default two-column grid.
type Reply struct {
	Text    string
	Buttons []Button
	Columns int
	Menu    bool
	Ack     string
}

// Menu button labels.
const (
	menuAnalyze    = "📊 Analyze stock"
	menuOverview   = "🏢 Company overview"
	menuWatchlist  = "📋 My watchlist"
	menuCalculator = "🧮 Calculator"
	menuTips       = "💡 Tips"
	menuTopStocks  = "📈 Top stocks"
)

// Callback payload prefixes; the ticker follows the final underscore.
const (
	callbackAnalyze      = "analyze_"
	callbackAddWatchlist = "add_watchlist_"
	callbackOverview     = "overview_"
)

var topTickers = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "JPM"}

// Controller is the per-user conversation state machine. It owns all
// conversation state; collaborators are injected.
type Controller struct {
	store  Store
	market MarketData
	now    func() time.Time

	mu       sync.Mutex
	sessions map[int64]*session
}

func NewController(store Store, marketData MarketData) *Controller {
	return &Controller{
		store:    store,
		market:   marketData,
		now:      time.Now,
		sessions: make(map[int64]*session),
	}
}

// session returns the user's session, creating it on first contact.
func (c *Controller) session(userID int64) *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[userID]
	if !ok {
		s = &session{}
		c.sessions[userID] = s
	}
	return s
}

// State reports the user's current conversation state.
func (c *Controller) State(userID int64) State {
	s := c.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Handle interprets one inbound event and produces the replies to send.
// Events from the same user are serialized on the session mutex; different
// users proceed independently.
func (c *Controller) Handle(ctx context.Context, ev Event) []Reply {
	sess := c.session(ev.UserID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch {
	case ev.Callback != "":
		return c.handleCallback(ctx, ev)
	case ev.Command != "":
		return c.handleCommand(ctx, ev, sess)
	default:
		return c.handleText(ctx, ev, sess)
	}
}

func (c *Controller) handleCommand(ctx context.Context, ev Event, sess *session) []Reply {
	sess.state = Idle

	switch ev.Command {
	case "start":
		if err := c.store.UpsertUser(ctx, ev.UserID, ev.Username, ev.DisplayName); err != nil {
			log.Error().Err(err).Int64("user_id", ev.UserID).Msg("failed to upsert user")
		}
		return []Reply{{Text: format.Welcome, Menu: true}}
	case "stock":
		if ev.Args == "" {
			return []Reply{{Text: format.UsageStock}}
		}
		return c.analyze(ctx, normalizeTicker(firstToken(ev.Args)))
	case "overview":
		if ev.Args == "" {
			return []Reply{{Text: format.UsageOverview}}
		}
		return c.companyOverview(ctx, normalizeTicker(firstToken(ev.Args)))
	case "watchlist":
		return c.watchlist(ctx, ev.UserID)
	case "calculator":
		sess.state = AwaitingCalculator
		return []Reply{{Text: format.CalculatorPrompt}}
	case "tips":
		return []Reply{{Text: format.Tips}}
	case "help":
		return []Reply{{Text: format.Help}}
	default:
		return []Reply{{Text: format.UnknownInput}}
	}
}

func (c *Controller) handleText(ctx context.Context, ev Event, sess *session) []Reply {
	// Menu presses are plain text and win over any in-flight state.
	switch ev.Text {
	case menuAnalyze:
		sess.state = AwaitingTicker
		return []Reply{{Text: format.TickerPrompt}}
	case menuOverview:
		sess.state = AwaitingTicker
		return []Reply{{Text: format.OverviewTickerPrompt}}
	case menuWatchlist:
		sess.state = Idle
		return c.watchlist(ctx, ev.UserID)
	case menuCalculator:
		sess.state = AwaitingCalculator
		return []Reply{{Text: format.CalculatorPrompt}}
	case menuTips:
		sess.state = Idle
		return []Reply{{Text: format.Tips}}
	case menuTopStocks:
		sess.state = Idle
		buttons := make([]Button, 0, len(topTickers))
		for _, t := range topTickers {
			buttons = append(buttons, Button{Label: t, Data: callbackAnalyze + t})
		}
		return []Reply{{Text: format.TopStocksPrompt, Buttons: buttons}}
	}

	switch sess.state {
	case AwaitingTicker:
		sess.state = Idle
		return c.analyze(ctx, normalizeTicker(ev.Text))
	case AwaitingCalculator:
		sess.state = Idle
		return c.calculator(ctx, ev.Text)
	default:
		return []Reply{{Text: format.UnknownInput}}
	}
}

func (c *Controller) handleCallback(ctx context.Context, ev Event) []Reply {
	switch {
	case strings.HasPrefix(ev.Callback, callbackAddWatchlist):
		ticker := strings.TrimPrefix(ev.Callback, callbackAddWatchlist)
		if err := c.store.AddToWatchlist(ctx, ev.UserID, ticker); err != nil {
			log.Error().Err(err).Str("ticker", ticker).Int64("user_id", ev.UserID).Msg("failed to add watchlist entry")
			return []Reply{{Ack: "⚠️ Could not save, try again"}}
		}
		return []Reply{{Ack: format.AddedToWatchlist(normalizeTicker(ticker))}}
	case strings.HasPrefix(ev.Callback, callbackAnalyze):
		return c.analyze(ctx, normalizeTicker(strings.TrimPrefix(ev.Callback, callbackAnalyze)))
	case strings.HasPrefix(ev.Callback, callbackOverview):
		return c.companyOverview(ctx, normalizeTicker(strings.TrimPrefix(ev.Callback, callbackOverview)))
	default:
		log.Warn().Str("payload", ev.Callback).Msg("unknown callback payload")
		return nil
	}
}

// analyze is the quote-analysis flow: acknowledge, fetch, render with
// follow-up actions attached to the ticker.
func (c *Controller) analyze(ctx context.Context, ticker string) []Reply {
	replies := []Reply{{Text: format.SearchingQuote}}

	q := c.market.Quote(ctx, ticker)
	if q == nil {
		return append(replies, Reply{Text: format.NoData(ticker)})
	}
	return append(replies, Reply{
		Text: format.QuoteAnalysis(q, c.now()),
		Buttons: []Button{
			{Label: "➕ Add to watchlist", Data: callbackAddWatchlist + ticker},
			{Label: "🏢 Company overview", Data: callbackOverview + ticker},
		},
		// Follow-up actions stack one per row.
		Columns: 1,
	})
}

func (c *Controller) companyOverview(ctx context.Context, ticker string) []Reply {
	replies := []Reply{{Text: format.SearchingOverview}}

	o := c.market.Overview(ctx, ticker)
	if o == nil {
		return append(replies, Reply{Text: format.NoCompanyData(ticker)})
	}
	return append(replies, Reply{Text: format.OverviewReport(o)})
}

// watchlist renders the stored list with live quotes, one fetch per ticker.
// A failed fetch marks its own line unavailable without aborting the rest.
func (c *Controller) watchlist(ctx context.Context, userID int64) []Reply {
	tickers, err := c.store.Watchlist(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("failed to load watchlist")
		return []Reply{{Text: format.WatchlistUnavailable}}
	}
	if len(tickers) == 0 {
		return []Reply{{Text: format.EmptyWatchlist}}
	}

	lines := make([]format.WatchlistLine, 0, len(tickers))
	for _, t := range tickers {
		lines = append(lines, format.WatchlistLine{Ticker: t, Quote: c.market.Quote(ctx, t)})
	}
	return []Reply{{Text: format.WatchlistReport(lines)}}
}

func (c *Controller) calculator(ctx context.Context, text string) []Reply {
	pos, err := calc.ParsePosition(text)
	if err != nil {
		return []Reply{{Text: format.CalculatorFormatError}}
	}

	q := c.market.Quote(ctx, pos.Ticker)
	if q == nil {
		return []Reply{{Text: format.NoData(pos.Ticker)}}
	}

	result, err := calc.Evaluate(pos, decimal.NewFromFloat(q.Price))
	if err != nil {
		return []Reply{{Text: format.CalculatorFormatError}}
	}
	return []Reply{{Text: format.CalculatorReport(result)}}
}

func normalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// firstToken takes the ticker token of a command argument string.
func firstToken(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
