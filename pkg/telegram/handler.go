package telegram

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/dskvich/media-telegram-bot/pkg/domain"
	"github.com/dskvich/media-telegram-bot/pkg/logger"
	"github.com/dskvich/media-telegram-bot/pkg/metrics"
)

type Sender interface {
	SendVideo(ctx context.Context, reply domain.MediaReply) error
	SendPhoto(ctx context.Context, reply domain.MediaReply) error
	SendText(ctx context.Context, reply domain.TextReply) error
}

type URLResolver interface {
	VideoURL(ctx context.Context) (string, error)
	WallpaperURL(ctx context.Context) string
}

type Authenticator interface {
	IsAuthorized(chatID int64) bool
}

type commandFunc func(ctx context.Context, event domain.Event)

type handler struct {
	sender        Sender
	resolver      URLResolver
	authenticator Authenticator
	metrics       *metrics.Metrics
	botUsername   string
	commands      map[string]commandFunc
}

func NewHandler(
	sender Sender,
	resolver URLResolver,
	authenticator Authenticator,
	metrics *metrics.Metrics,
	botUsername string,
) *handler {
	h := &handler{
		sender:        sender,
		resolver:      resolver,
		authenticator: authenticator,
		metrics:       metrics,
		botUsername:   botUsername,
	}

	h.commands = map[string]commandFunc{
		domain.CommandStart:     h.start,
		domain.CommandHelp:      h.help,
		domain.CommandVideo:     h.video,
		domain.CommandWallpaper: h.wallpaper,
	}

	return h
}

// Commands lists the supported commands in lexical order.
func (h *handler) Commands() []string {
	cmds := lo.Keys(h.commands)
	sort.Strings(cmds)
	return cmds
}

func (h *handler) HandleEvent(ctx context.Context, event domain.Event) {
	cmd, ok := parseCommand(event.Text, h.botUsername)
	if !ok {
		return
	}

	if !h.authenticator.IsAuthorized(event.ChatID) {
		slog.DebugContext(ctx, "Ignoring command from unauthorized chat", "chatID", event.ChatID, "cmd", cmd)
		h.metrics.UnauthorizedEvents.Inc()
		return
	}

	run, ok := h.commands[cmd]
	if !ok {
		slog.DebugContext(ctx, "Unhandled command", "cmd", cmd)
		return
	}

	slog.InfoContext(ctx, "Handling command", "cmd", cmd, "chatID", event.ChatID)
	h.metrics.CommandsTotal.WithLabelValues(cmd).Inc()

	run(ctx, event)
}

// parseCommand extracts "/video" from texts like "/Video@MediaBot extra words".
// Commands addressed to any bot other than botUsername are rejected.
func parseCommand(text, botUsername string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", false
	}

	cmd, addressee, addressed := strings.Cut(fields[0], "@")
	if addressed && !strings.EqualFold(addressee, botUsername) {
		return "", false
	}

	cmd = strings.ToLower(cmd)
	return cmd, cmd != "/"
}

func (h *handler) start(ctx context.Context, event domain.Event) {
	h.reply(ctx, event, domain.GreetingMessage)
}

func (h *handler) help(ctx context.Context, event domain.Event) {
	h.reply(ctx, event, domain.HelpMessage)
}

func (h *handler) video(ctx context.Context, event domain.Event) {
	url, err := h.resolver.VideoURL(ctx)
	if err == nil {
		err = h.sender.SendVideo(ctx, domain.MediaReply{
			ChatID:           event.ChatID,
			ReplyToMessageID: event.MessageID,
			URL:              url,
			Caption:          domain.VideoCaption,
		})
	}

	if err != nil {
		slog.ErrorContext(ctx, "Error sending video", logger.Err(err))
		h.metrics.MediaSendFailures.WithLabelValues("video").Inc()
		h.reply(ctx, event, domain.VideoFailedMessage)
	}
}

func (h *handler) wallpaper(ctx context.Context, event domain.Event) {
	err := h.sender.SendPhoto(ctx, domain.MediaReply{
		ChatID:           event.ChatID,
		ReplyToMessageID: event.MessageID,
		URL:              h.resolver.WallpaperURL(ctx),
		Caption:          domain.WallpaperCaption,
	})

	if err != nil {
		slog.ErrorContext(ctx, "Error sending wallpaper", logger.Err(err))
		h.metrics.MediaSendFailures.WithLabelValues("wallpaper").Inc()
		h.reply(ctx, event, domain.WallpaperFailedMessage)
	}
}

// reply is best effort: a failed text reply is logged and dropped.
func (h *handler) reply(ctx context.Context, event domain.Event, text string) {
	err := h.sender.SendText(ctx, domain.TextReply{
		ChatID:           event.ChatID,
		ReplyToMessageID: event.MessageID,
		Text:             text,
	})
	if err != nil {
		slog.ErrorContext(ctx, "Error sending reply", logger.Err(err))
	}
}
