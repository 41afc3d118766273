package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Telegram drives the controller from the Telegram long-polling API and
// renders replies back into messages and keyboards.
type Telegram struct {
	api         *tgbotapi.BotAPI
	ctrl        *Controller
	pollTimeout int
}

func NewTelegram(api *tgbotapi.BotAPI, ctrl *Controller, pollTimeoutSec int) *Telegram {
	return &Telegram{api: api, ctrl: ctrl, pollTimeout: pollTimeoutSec}
}

// Run polls for updates until the context is canceled. Each update is
// handled in its own goroutine so one user's slow fetch never blocks the
// intake of another's; per-user ordering is the controller's job.
func (t *Telegram) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = t.pollTimeout
	updates := t.api.GetUpdatesChan(u)

	log.Info().Str("username", t.api.Self.UserName).Msg("bot started, polling for updates")

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go t.handle(ctx, update)
		}
	}
}

func (t *Telegram) handle(ctx context.Context, update tgbotapi.Update) {
	ev, ok := eventFrom(update)
	if !ok {
		return
	}

	replies := t.ctrl.Handle(ctx, ev)

	if update.CallbackQuery != nil {
		ack := ""
		for _, r := range replies {
			if r.Ack != "" {
				ack = r.Ack
			}
		}
		if _, err := t.api.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, ack)); err != nil {
			log.Error().Err(err).Msg("failed to answer callback query")
		}
	}

	for _, r := range replies {
		if r.Text == "" {
			continue
		}
		msg := tgbotapi.NewMessage(ev.ChatID, r.Text)
		msg.ParseMode = tgbotapi.ModeHTML
		if len(r.Buttons) > 0 {
			msg.ReplyMarkup = inlineKeyboard(r.Buttons, r.Columns)
		}
		if r.Menu {
			msg.ReplyMarkup = menuKeyboard()
		}
		if _, err := t.api.Send(msg); err != nil {
			log.Error().Err(err).Int64("chat_id", ev.ChatID).Msg("failed to send message")
		}
	}
}

// eventFrom extracts the controller event from an update. Updates that are
// neither messages nor callback queries are ignored.
func eventFrom(update tgbotapi.Update) (Event, bool) {
	switch {
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		ev := Event{
			UserID:      cq.From.ID,
			ChatID:      cq.From.ID,
			Username:    cq.From.UserName,
			DisplayName: cq.From.FirstName,
			Callback:    cq.Data,
		}
		if cq.Message != nil {
			ev.ChatID = cq.Message.Chat.ID
		}
		return ev, true

	case update.Message != nil && update.Message.From != nil:
		m := update.Message
		ev := Event{
			UserID:      m.From.ID,
			ChatID:      m.Chat.ID,
			Username:    m.From.UserName,
			DisplayName: m.From.FirstName,
		}
		if m.IsCommand() {
			ev.Command = m.Command()
			ev.Args = strings.TrimSpace(m.CommandArguments())
		} else {
			ev.Text = m.Text
		}
		return ev, true
	}
	return Event{}, false
}

// inlineKeyboard lays action buttons out in a grid. columns <= 0 falls
// back to the default two-column layout.
func inlineKeyboard(buttons []Button, columns int) tgbotapi.InlineKeyboardMarkup {
	if columns <= 0 {
		columns = 2
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, (len(buttons)+columns-1)/columns)
	for i := 0; i < len(buttons); i += columns {
		row := make([]tgbotapi.InlineKeyboardButton, 0, columns)
		for j := i; j < i+columns && j < len(buttons); j++ {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(buttons[j].Label, buttons[j].Data))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func menuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuAnalyze),
			tgbotapi.NewKeyboardButton(menuOverview),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuWatchlist),
			tgbotapi.NewKeyboardButton(menuCalculator),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuTips),
			tgbotapi.NewKeyboardButton(menuTopStocks),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}
