package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v9"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dskvich/media-telegram-bot/pkg/api"
	"github.com/dskvich/media-telegram-bot/pkg/api/handler"
	"github.com/dskvich/media-telegram-bot/pkg/auth"
	"github.com/dskvich/media-telegram-bot/pkg/catalog"
	"github.com/dskvich/media-telegram-bot/pkg/logger"
	"github.com/dskvich/media-telegram-bot/pkg/media"
	"github.com/dskvich/media-telegram-bot/pkg/metrics"
	"github.com/dskvich/media-telegram-bot/pkg/service"
	"github.com/dskvich/media-telegram-bot/pkg/telegram"
)

type Config struct {
	TelegramBotToken    string     `env:"TOKEN,required,notEmpty"`
	AllowedGroupID      int64      `env:"ALLOWED_GROUP_ID,required"`
	VideoBaseURL        string     `env:"API_URL,required,notEmpty"`
	WallpaperBaseURL    string     `env:"WALLPAPER_API_URL,required,notEmpty"`
	CatalogPath         string     `env:"CATALOG_PATH" envDefault:"./data.json"`
	Port                string     `env:"PORT" envDefault:"8443"`
	WebhookBaseURL      string     `env:"WEBHOOK_BASE_URL"`
	TelegramAPIEndpoint string     `env:"TELEGRAM_API_ENDPOINT"`
	LogLevel            slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogNoColor          bool       `env:"LOG_NO_COLOR"`
}

// WebhookURL is where Telegram should deliver updates, empty when registration is left to the operator.
func (c Config) WebhookURL() string {
	if c.WebhookBaseURL == "" {
		return ""
	}
	return strings.TrimRight(c.WebhookBaseURL, "/") + "/" + c.TelegramBotToken
}

// BotAPIEndpoint allows pointing the client at a self-hosted Bot API server.
func (c Config) BotAPIEndpoint() string {
	if c.TelegramAPIEndpoint == "" {
		return tgbotapi.APIEndpoint
	}
	return c.TelegramAPIEndpoint
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, &logger.Options{
		Level:     cfg.LogLevel,
		AddSource: true,
		NoColor:   cfg.LogNoColor,
	})))

	services, err := setupServices(cfg)
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return services.Run(ctx)
}

func loadConfig() (Config, error) {
	// A missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing env config: %w", err)
	}
	return cfg, nil
}

func setupServices(cfg Config) (service.Group, error) {
	entries, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	telegramClient, err := telegram.NewClient(cfg.TelegramBotToken, cfg.BotAPIEndpoint())
	if err != nil {
		return nil, fmt.Errorf("creating telegram client: %w", err)
	}

	if url := cfg.WebhookURL(); url != "" {
		if err := telegramClient.SetWebhook(url); err != nil {
			return nil, fmt.Errorf("registering webhook: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	botMetrics := metrics.New(registry)

	commandHandler := telegram.NewHandler(
		telegramClient,
		media.NewResolver(entries, cfg.VideoBaseURL, cfg.WallpaperBaseURL),
		auth.NewAuthenticator(cfg.AllowedGroupID),
		botMetrics,
		telegramClient.UserName(),
	)
	slog.Info("commands registered", "commands", commandHandler.Commands())

	router := api.NewRouter(cfg.TelegramBotToken, api.Routes{
		Webhook: handler.NewWebhook(commandHandler, botMetrics),
		Health:  handler.NewHealth(),
		Metrics: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	return service.Group{
		api.NewServer(net.JoinHostPort("", cfg.Port), router),
	}, nil
}
