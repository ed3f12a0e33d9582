package api

import (
	"net/http"
)

// Routes are the handlers exposed over HTTP.
type Routes struct {
	Webhook http.Handler
	Health  http.Handler
	Metrics http.Handler
}

// NewRouter mounts the webhook under the bot token, which doubles as a shared secret.
func NewRouter(token string, routes Routes) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("POST /"+token, routes.Webhook)
	mux.Handle("GET /{$}", routes.Health)
	if routes.Metrics != nil {
		mux.Handle("GET /metrics", routes.Metrics)
	}

	return mux
}
