// Package bot is the contact-sharing bridge: a user shares their phone number
// through Telegram, and gets back a button opening the WebApp with that phone
// in the URL. The backend then maps the phone to a role.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	webAppURL string
}

func New(api *tgbotapi.BotAPI, log *slog.Logger, webAppURL string) *Bot {
	return &Bot{api: api, log: log, webAppURL: webAppURL}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(upd.Message)
			}
		}
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("telegram send failed", "err", err)
	}
}

func (b *Bot) onMessage(msg *tgbotapi.Message) {
	if msg.Contact != nil {
		b.onContact(msg)
		return
	}
	if msg.IsCommand() && msg.Command() == "start" {
		b.askContact(msg.Chat.ID)
	}
}

func (b *Bot) askContact(chatID int64) {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact("Открыть AWR"),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true

	m := tgbotapi.NewMessage(chatID, "AWR — мини-приложение. Нажмите кнопку, чтобы открыть и поделиться номером.")
	m.ReplyMarkup = kb
	b.send(m)
}

func (b *Bot) onContact(msg *tgbotapi.Message) {
	phone := msg.Contact.PhoneNumber
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	link := fmt.Sprintf("%s?phone=%s", b.webAppURL, url.QueryEscape(phone))

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.InlineKeyboardButton{
				Text:   "Запустить AWR",
				WebApp: &tgbotapi.WebAppInfo{URL: link},
			},
		),
	)
	m := tgbotapi.NewMessage(msg.Chat.ID, "Открыть мини-приложение AWR:")
	m.ReplyMarkup = kb
	b.send(m)
}
