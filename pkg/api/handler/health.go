package handler

import (
	"net/http"

	"github.com/dskvich/media-telegram-bot/pkg/api/response"
)

const healthMessage = "Bot is running!"

type health struct {
	writer response.TextResponseWriter
}

func NewHealth() *health {
	return &health{writer: response.TextResponseWriter{}}
}

func (h *health) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	h.writer.WriteText(w, http.StatusOK, healthMessage)
}
