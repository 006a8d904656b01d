package app

import (
	"context"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"go.uber.org/zap"

	libredis "evstation/backend/libs/redis"
	"evstation/backend/services/station-service/internal/config"
	"evstation/backend/services/station-service/internal/events"
	httpserver "evstation/backend/services/station-service/internal/http"
	"evstation/backend/services/station-service/internal/http/handlers"
	"evstation/backend/services/station-service/internal/http/middleware"
	"evstation/backend/services/station-service/internal/service"
	"evstation/backend/services/station-service/internal/telemetry"
	"evstation/backend/services/station-service/internal/ws"
)

// App wires station-service dependencies.
type App struct {
	server  *httpserver.Server
	hub     *ws.Hub
	service *service.StationService
	logger  *zap.Logger
	closers []func() error
}

// New constructs the application graph. Optional sinks are connected only when configured.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	return newApp(ctx, cfg, clock.WallClock, logger)
}

func newApp(ctx context.Context, cfg *config.Config, clk clock.Clock, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	hub := ws.NewHub(cfg.PingInterval(), cfg.WriteTimeout(), logger)
	fanout := events.NewFanout()
	fanout.Add("websocket", hub)

	if err := a.connectSinks(ctx, cfg, fanout); err != nil {
		a.Close()
		return nil, err
	}

	state := service.NewSeededState(clk.Now())
	stationService := service.NewStationService(state, clk, fanout, logger)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		StationHandlers:  handlers.NewStationHandlers(stationService),
		SessionsHandlers: handlers.NewSessionsHandlers(stationService, logger),
		HealthHandler:    handlers.NewHealthHandler(),
		LogStream:        hub.HandleWS,
		AllowedOrigins:   cfg.AllowedOrigins(),
	})

	a.server = httpserver.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		middleware.RecoveryMiddleware(logger),
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware(logger),
	)
	a.hub = hub
	a.service = stationService

	logger.Info("station state seeded",
		zap.Int("sessions", len(stationService.GetSessions())),
		zap.Int("event_sinks", fanout.Len()),
	)
	return a, nil
}

func (a *App) connectSinks(ctx context.Context, cfg *config.Config, fanout *events.Fanout) error {
	if cfg.RedisEnabled() {
		client, err := libredis.NewRedisClient(ctx, libredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return errors.Annotate(err, "connect redis")
		}
		a.addCloser("redis", client.Close)
		fanout.Add("redis", events.NewRedisPublisher(client, cfg.Redis.Channel))
	}

	if cfg.KafkaEnabled() {
		producer, err := events.NewKafkaProducer(cfg.Kafka.Brokers)
		if err != nil {
			return errors.Annotate(err, "connect kafka")
		}
		publisher := events.NewKafkaPublisher(producer, cfg.Kafka.Topic)
		a.addCloser("kafka", publisher.Close)
		fanout.Add("kafka", publisher)
	}

	if cfg.InfluxEnabled() {
		client, err := telemetry.NewInfluxClient(ctx, cfg.Influx.URL, cfg.Influx.Token)
		if err != nil {
			return errors.Annotate(err, "connect influxdb")
		}
		sink := telemetry.NewInfluxSink(client, cfg.Influx.Org, cfg.Influx.Bucket)
		a.addCloser("influxdb", func() error { sink.Close(); return nil })
		fanout.Add("influxdb", sink)
	}
	return nil
}

func (a *App) addCloser(name string, fn func() error) {
	a.closers = append(a.closers, func() error {
		if err := fn(); err != nil {
			return errors.Annotatef(err, "close %s", name)
		}
		return nil
	})
}

// Run starts the log stream hub and HTTP server; it returns once ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	go a.hub.Start(ctx)
	return a.server.Run(ctx)
}

// Close releases sink connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to release resource", zap.Error(err))
		}
	}
	a.closers = nil
}
