package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dskvich/media-telegram-bot/pkg/api/response"
	"github.com/dskvich/media-telegram-bot/pkg/domain"
	"github.com/dskvich/media-telegram-bot/pkg/logger"
	"github.com/dskvich/media-telegram-bot/pkg/metrics"
)

const (
	maxUpdateSize = 1 << 20

	webhookAck = "ok"
)

type EventHandler interface {
	HandleEvent(ctx context.Context, event domain.Event)
}

type webhook struct {
	handler EventHandler
	metrics *metrics.Metrics
	writer  response.TextResponseWriter
}

func NewWebhook(handler EventHandler, metrics *metrics.Metrics) *webhook {
	return &webhook{
		handler: handler,
		metrics: metrics,
		writer:  response.TextResponseWriter{},
	}
}

// ServeHTTP always acknowledges with 200 so Telegram does not redeliver the update.
func (wh *webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateSize)).Decode(&update); err != nil {
		slog.WarnContext(r.Context(), "Dropping update", logger.Err(fmt.Errorf("%w: %v", domain.ErrMalformedUpdate, err)))
		wh.metrics.MalformedUpdates.Inc()
		wh.writer.WriteText(w, http.StatusOK, webhookAck)
		return
	}

	ctx := logger.ContextWithRequestID(r.Context(), int64(update.UpdateID))

	event, ok := domain.EventFromUpdate(&update)
	if !ok {
		slog.DebugContext(ctx, "Skipping update without message")
		wh.writer.WriteText(w, http.StatusOK, webhookAck)
		return
	}

	wh.handler.HandleEvent(ctx, event)

	wh.writer.WriteText(w, http.StatusOK, webhookAck)
}
