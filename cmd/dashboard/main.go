package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paper-dashboard/internal/auth"
	"paper-dashboard/internal/broker"
	"paper-dashboard/internal/config"
	"paper-dashboard/internal/events"
	"paper-dashboard/internal/health"
	"paper-dashboard/internal/httpserver"
	"paper-dashboard/internal/logging"
	"paper-dashboard/internal/orders"
	"paper-dashboard/internal/web"
)

func main() {
	if err := config.LoadDotEnv(os.Getenv("DOTENV_PATH")); err != nil {
		slog.Error("load .env", "err", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	adapter, brokerURL := newBroker(cfg)
	bus := events.NewBus()
	views, err := web.NewRenderer(cfg.AuthEnabled())
	if err != nil {
		slog.Error("load templates", "err", err)
		os.Exit(1)
	}
	authSvc := auth.NewService(cfg.PasswordHash, cfg.SessionIssuer, []byte(cfg.SessionSecret), cfg.SessionTTL)
	orderSvc := orders.NewService(adapter, bus, logger)
	limiter := httpserver.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	stopPrune := make(chan struct{})
	go limiter.Run(stopPrune, time.Minute)

	healthHandler := health.NewHandler(health.Info{
		HTTPAddr:    cfg.HTTPAddr,
		Broker:      adapter.Name(),
		BrokerURL:   brokerURL,
		Paper:       cfg.Paper,
		AuthEnabled: authSvc.Enabled(),
	}, bus, time.Now())

	router := httpserver.NewRouter(httpserver.RouterDeps{
		OrderHandler:  orders.NewHandler(orderSvc, views),
		AuthHandler:   auth.NewHandler(authSvc, views),
		AuthService:   authSvc,
		HealthHandler: healthHandler,
		WSHandler:     httpserver.NewOrdersWSHandler(bus, cfg.WebSocketOrigin),
		RateLimiter:   limiter,
	})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("server listening", "addr", cfg.HTTPAddr, "broker", adapter.Name(), "broker_url", brokerURL, "paper", cfg.Paper, "auth", authSvc.Enabled())
	if cfg.APIKeyID == "" || cfg.APISecretKey == "" {
		slog.Warn("broker credentials are empty; orders will be rejected by the broker")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		close(stopPrune)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
	slog.Info("server exited")
}

func newBroker(cfg config.Config) (broker.Adapter, string) {
	if cfg.Broker == config.BrokerDisabled {
		return broker.NewDisabledAdapter(), ""
	}
	a := broker.NewAlpacaAdapter(broker.AlpacaConfig{
		KeyID:     cfg.APIKeyID,
		SecretKey: cfg.APISecretKey,
		BaseURL:   cfg.APIBaseURL,
		Paper:     cfg.Paper,
	})
	return a, a.BaseURL()
}
