package telegram

import (
	"fmt"

	"github.com/fasthttp/router"
	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegoutil"
	"github.com/valyala/fasthttp"

	"github.com/aminrz/kharj_bot/internal/service"
)

type telegramMessenger struct {
	api         *telego.Bot
	updatesType string
	srvAddr     string
	webhookURL  string
}

var _ service.MessengerAPI = (*telegramMessenger)(nil)

// Options represents options that required for creating new instance of telegram API.
type Options struct {
	// Token represents telegram bot token.
	Token string
	// UpdatesType represents a way we'll receive updates from Telegram. (webhook | polling)
	UpdatesType string

	// ServerAddress represents an address on which we'll start a server. (Required for webhook updates type)
	ServerAddress string
	// WebhookURL represents an url to which telegram will send updates. (Required for webhook updates type)
	WebhookURL string
}

// New creates a new instance of telegram API.
func New(opts Options) (*telegramMessenger, error) {
	bot, err := telego.NewBot(opts.Token, telego.WithDefaultLogger(false, true))
	if err != nil {
		return nil, fmt.Errorf("init bot instance: %w", err)
	}

	if opts.UpdatesType == "webhook" {
		err := bot.SetWebhook(&telego.SetWebhookParams{
			URL: opts.WebhookURL + "/bot",
		})
		if err != nil {
			return nil, fmt.Errorf("set webhook url: %w", err)
		}
	}

	return &telegramMessenger{
		api:         bot,
		updatesType: opts.UpdatesType,
		srvAddr:     opts.ServerAddress,
		webhookURL:  opts.WebhookURL,
	}, nil
}

func (t *telegramMessenger) ReadUpdates(result chan service.Message, errors chan error) {
	var (
		updates <-chan telego.Update
		err     error
	)

	switch t.updatesType {
	case "webhook":
		updates, err = t.api.UpdatesViaWebhook("/bot",
			telego.WithWebhookServer(telego.FastHTTPWebhookServer{
				Logger: t.api.Logger(),
				Server: &fasthttp.Server{},
				Router: router.New(),
			}),
		)
		if err != nil {
			errors <- fmt.Errorf("register webhook telegram updates receiver: %w", err)

			return
		}

		go func() {
			err := t.api.StartWebhook(t.srvAddr)
			if err != nil {
				errors <- fmt.Errorf("start webhook: %w", err)
			}
		}()
	case "polling":
		updates, err = t.api.UpdatesViaLongPolling(nil)
		if err != nil {
			errors <- fmt.Errorf("register long polling telegram updates receiver: %w", err)

			return
		}

	default:
		errors <- fmt.Errorf("unknown updates type: %s", t.updatesType)

		return
	}

	for update := range updates {
		// Only text messages matter, edits, reactions and the rest are dropped.
		if update.Message == nil || update.Message.From == nil {
			continue
		}

		result <- &Update{update: update}
	}
}

// Update wraps a single telegram update.
type Update struct {
	update telego.Update
}

func (u *Update) GetChatID() int64 {
	return u.update.Message.Chat.ID
}

func (u *Update) GetSenderID() int64 {
	return u.update.Message.From.ID
}

func (u *Update) GetText() string {
	return u.update.Message.Text
}

func (u *Update) IsPrivateChat() bool {
	return u.update.Message.Chat.Type == telego.ChatTypePrivate
}

func (t *telegramMessenger) Close() error {
	return t.api.StopWebhook()
}

func (t *telegramMessenger) SendMessage(chatID int64, text string) error {
	_, err := t.api.SendMessage(telegoutil.Message(telegoutil.ID(chatID), text))

	return err
}

func (t *telegramMessenger) SendWithKeyboard(opts service.SendWithKeyboardOptions) error {
	message := telegoutil.Message(telegoutil.ID(opts.ChatID), opts.Message)

	if len(opts.Keyboard) != 0 {
		message = message.WithReplyMarkup(createKeyboard(opts.Keyboard))
	}

	_, err := t.api.SendMessage(message)

	return err
}

func (t *telegramMessenger) RemoveKeyboard(chatID int64, text string) error {
	message := telegoutil.
		Message(telegoutil.ID(chatID), text).
		WithReplyMarkup(&telego.ReplyKeyboardRemove{RemoveKeyboard: true})

	_, err := t.api.SendMessage(message)

	return err
}

func createKeyboard(rows []service.KeyboardRow) *telego.ReplyKeyboardMarkup {
	var convertedRows [][]telego.KeyboardButton

	for _, r := range rows {
		var buttons []telego.KeyboardButton

		for _, b := range r.Buttons {
			buttons = append(buttons, telegoutil.KeyboardButton(b))
		}

		convertedRows = append(convertedRows, buttons)
	}

	return telegoutil.Keyboard(convertedRows...).WithResizeKeyboard()
}
