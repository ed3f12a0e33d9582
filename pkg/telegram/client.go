package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dskvich/media-telegram-bot/pkg/domain"
)

// Telegram downloads media passed by URL itself, so a send can take a while.
const requestTimeout = 60 * time.Second

const redactedToken = "<redacted>"

type client struct {
	token string
	bot   *tgbotapi.BotAPI
}

// NewClient connects to the Bot API at endpoint, a format string like tgbotapi.APIEndpoint.
func NewClient(token, endpoint string) (*client, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: requestTimeout})
	if err != nil {
		return nil, fmt.Errorf("creating bot api instance: %w", redact(err, token))
	}

	slog.Info("authorized on telegram", "account", bot.Self.UserName)

	return &client{token: token, bot: bot}, nil
}

// UserName is the bot's @username without the leading "@".
func (c *client) UserName() string {
	return c.bot.Self.UserName
}

func (c *client) SendVideo(ctx context.Context, reply domain.MediaReply) error {
	if _, err := c.bot.Send(reply.ToVideoMessage()); err != nil {
		return fmt.Errorf("sending video %s: %w", reply.URL, redact(err, c.token))
	}

	slog.InfoContext(ctx, "Video sent", "chatID", reply.ChatID)
	return nil
}

func (c *client) SendPhoto(ctx context.Context, reply domain.MediaReply) error {
	if _, err := c.bot.Send(reply.ToPhotoMessage()); err != nil {
		return fmt.Errorf("sending photo %s: %w", reply.URL, redact(err, c.token))
	}

	slog.InfoContext(ctx, "Photo sent", "chatID", reply.ChatID)
	return nil
}

func (c *client) SendText(ctx context.Context, reply domain.TextReply) error {
	if _, err := c.bot.Send(reply.ToChatMessage()); err != nil {
		return fmt.Errorf("sending message: %w", redact(err, c.token))
	}

	slog.DebugContext(ctx, "Message sent", "chatID", reply.ChatID)
	return nil
}

// SetWebhook points Telegram at url for update delivery.
func (c *client) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("parsing webhook url: %w", redact(err, c.token))
	}

	if _, err := c.bot.Request(wh); err != nil {
		return fmt.Errorf("setting webhook: %w", redact(err, c.token))
	}

	slog.Info("webhook registered", "account", c.bot.Self.UserName)
	return nil
}

// redactedError hides the bot token that transport errors carry in the request URL.
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }

func redact(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return &redactedError{
		msg: strings.ReplaceAll(err.Error(), token, redactedToken),
		err: err,
	}
}
