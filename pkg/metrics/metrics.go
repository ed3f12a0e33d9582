package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "media_bot"

// Metrics holds the bot's Prometheus collectors.
type Metrics struct {
	// CommandsTotal counts dispatched commands from the allowed chat.
	CommandsTotal *prometheus.CounterVec
	// MediaSendFailures counts failed media deliveries by kind (video, wallpaper).
	MediaSendFailures *prometheus.CounterVec
	// UnauthorizedEvents counts commands ignored because of the chat id.
	UnauthorizedEvents prometheus.Counter
	// MalformedUpdates counts webhook bodies that could not be decoded.
	MalformedUpdates prometheus.Counter
}

// New registers the collectors in reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Total number of handled commands from the allowed chat",
			},
			[]string{"command"},
		),
		MediaSendFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "media_send_failures_total",
				Help:      "Total number of media messages that could not be delivered",
			},
			[]string{"kind"},
		),
		UnauthorizedEvents: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unauthorized_events_total",
			Help:      "Total number of commands ignored because they came from another chat",
		}),
		MalformedUpdates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_updates_total",
			Help:      "Total number of webhook requests with an undecodable body",
		}),
	}
}
