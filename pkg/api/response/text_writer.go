package response

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/dskvich/media-telegram-bot/pkg/logger"
)

type TextResponseWriter struct{}

func (t *TextResponseWriter) WriteText(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := io.WriteString(w, body); err != nil {
		slog.Error("writing response", logger.Err(err))
	}
}
