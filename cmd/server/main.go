// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swapsync/broadcast-backend/internal/config"
	"github.com/swapsync/broadcast-backend/internal/db"
	"github.com/swapsync/broadcast-backend/internal/gateway"
	"github.com/swapsync/broadcast-backend/internal/handler"
	"github.com/swapsync/broadcast-backend/internal/logger"
	"github.com/swapsync/broadcast-backend/internal/queue"
	"github.com/swapsync/broadcast-backend/internal/repository"
	"github.com/swapsync/broadcast-backend/internal/service"
)

func main() {
	// .env is optional; deployed environments set the OS env directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	defer conn.Close()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.Timezone).Msg("invalid timezone")
	}

	recipientRepo := &repository.RecipientRepository{DB: conn}
	runRepo := &repository.CampaignRunRepository{DB: conn}

	var gw gateway.Gateway
	if cfg.GatewayURL != "" {
		gw = gateway.NewHTTPGateway(cfg.GatewayURL, cfg.GatewayAPIKey)
	} else {
		log.Warn().Msg("no gateway configured, sends go to the log")
		gw = &gateway.StdoutGateway{Log: log}
	}

	var reports queue.ReportPublisher = queue.NopPublisher{}
	if cfg.AMQPURL != "" {
		pub, err := queue.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			log.Fatal().Err(err).Msg("amqp connect failed")
		}
		defer pub.Close()
		reports = pub
	}

	composer := &service.Composer{}
	dispatcher := &service.Dispatcher{
		Directory:   recipientRepo,
		Resolver:    &service.BrandingResolver{Directory: recipientRepo},
		Gateway:     gw,
		Reports:     reports,
		Concurrency: cfg.DispatchConcurrency,
		SendTimeout: cfg.SendTimeout,
		Log:         log,
	}
	scheduler := &service.CampaignScheduler{
		Directory:       recipientRepo,
		Runs:            runRepo,
		Composer:        composer,
		Dispatch:        dispatcher,
		Location:        loc,
		HolidaySendHour: cfg.HolidaySendHour,
		Log:             log,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	holidayCron := scheduler.StartHolidayCron(ctx)
	defer func() { <-holidayCron.Stop().Done() }()

	h := &handler.BroadcastHandler{
		Recipients: recipientRepo,
		Composer:   composer,
		Dispatcher: dispatcher,
		Scheduler:  scheduler,
		Log:        log,
	}

	r := chi.NewRouter()
	r.Get("/recipients", h.ListRecipientsHandler)
	r.Post("/broadcast", h.SendBroadcastHandler)
	r.Post("/broadcast/monthly-wishes", h.MonthlyWishesHandler)
	r.Get("/healthz", h.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
		os.Exit(1)
	}
}
