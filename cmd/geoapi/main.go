// Command geoapi serves the read-only countries, states and cities API.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/geoapi/internal/location"
	"github.com/dmitrymomot/geoapi/pkg/alert"
	"github.com/dmitrymomot/geoapi/pkg/breaker"
	"github.com/dmitrymomot/geoapi/pkg/cache"
	"github.com/dmitrymomot/geoapi/pkg/clientip"
	"github.com/dmitrymomot/geoapi/pkg/config"
	"github.com/dmitrymomot/geoapi/pkg/email"
	"github.com/dmitrymomot/geoapi/pkg/environment"
	"github.com/dmitrymomot/geoapi/pkg/hpp"
	"github.com/dmitrymomot/geoapi/pkg/httpserver"
	"github.com/dmitrymomot/geoapi/pkg/logger"
	"github.com/dmitrymomot/geoapi/pkg/metrics"
	"github.com/dmitrymomot/geoapi/pkg/mongo"
	"github.com/dmitrymomot/geoapi/pkg/ratelimiter"
	"github.com/dmitrymomot/geoapi/pkg/redis"
	"github.com/dmitrymomot/geoapi/pkg/requestid"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("geoapi stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg     appConfig
		httpCfg    httpserver.Config
		ipCfg      clientip.Config
		logCfg     logger.Config
		mongoCfg   mongo.Config
		redisCfg   redis.Config
		cacheCfg   cache.Config
		breakerCfg breaker.Config
		limitCfg   ratelimiter.Config
		emailCfg   email.Config
		alertCfg   alert.Config
	)
	if err := errors.Join(
		config.Load(&appCfg),
		config.Load(&httpCfg),
		config.Load(&ipCfg),
		config.Load(&logCfg),
		config.Load(&mongoCfg),
		config.Load(&redisCfg),
		config.Load(&cacheCfg),
		config.Load(&breakerCfg),
		config.Load(&limitCfg),
		config.Load(&emailCfg),
		config.Load(&alertCfg),
	); err != nil {
		return err
	}
	if err := appCfg.validate(); err != nil {
		return err
	}
	env, err := environment.Parse(appCfg.Env)
	if err != nil {
		return err
	}

	logOverrides, err := logger.WithConfig(logCfg)
	if err != nil {
		return err
	}
	log := logger.New(
		logger.WithEnvironment(env, appCfg.Name),
		logOverrides,
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			hpp.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	resolver, err := clientip.NewResolver(ipCfg)
	if err != nil {
		return err
	}
	m := metrics.New(appCfg.MetricsNamespace)

	mongoCfg.Database = env.DatabaseName(mongoCfg.Database)
	db, err := mongo.NewWithDatabase(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Client().Disconnect(context.WithoutCancel(ctx)); err != nil {
			log.Error("mongodb disconnect failed", logger.Component("mongodb"), logger.Error(err))
		}
	}()
	checks := []httpserver.Check{{
		Name: "mongodb",
		Fn:   mongo.Healthcheck(db, location.CountriesCollection, location.StatesCollection, location.CitiesCollection),
	}}

	var redisClient goredis.UniversalClient
	if cacheCfg.Backend == cache.BackendRedis || limitCfg.Backend == ratelimiter.BackendRedis {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		redisClient = client
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	}

	cacheStore, err := cache.NewStore(cacheCfg, redisClient)
	if err != nil {
		return err
	}
	if c, ok := cacheStore.(io.Closer); ok {
		defer c.Close()
	}

	sender, err := email.NewSender(emailCfg)
	if err != nil {
		return err
	}
	host, port := origin(httpCfg.Addr)
	notifier := alert.New(sender, alertCfg,
		alert.WithLogger(log),
		alert.WithRecorder(m),
		alert.WithOrigin(host, port),
	)
	defer notifier.Wait()
	if notifier.Enabled() {
		log.Info("critical alerts enabled", logger.Component("alert"), slog.String("transport", emailCfg.Kind()))
	} else {
		log.Warn("critical alerts disabled, ADMIN_EMAIL is not set", logger.Component("alert"))
	}

	store := location.NewMongoStore(db,
		location.WithBreaker(breaker.New("mongodb", breakerCfg,
			breaker.WithLogger(log),
			breaker.WithIgnoredErrors(location.ErrNotFound),
			breaker.WithStateListener(m.BreakerStateChanged),
		)),
		location.WithQueryRecorder(m),
	)

	limiterStore, err := ratelimiter.NewStore(limitCfg, redisClient)
	if err != nil {
		return err
	}
	if c, ok := limiterStore.(io.Closer); ok {
		defer c.Close()
	}
	limiter, err := ratelimiter.New(limiterStore, limitCfg)
	if err != nil {
		return err
	}

	a := &app{
		cfg:      appCfg,
		logger:   log,
		clientIP: resolver,
		service: location.NewService(store,
			location.WithLogger(log),
			location.WithAlerter(notifier),
			location.WithLookupRecorder(m),
		),
		cache: cache.NewResponseCache(cacheStore,
			cache.WithTTL(cacheCfg.TTL),
			cache.WithFillTimeout(appCfg.RequestTimeout),
			cache.WithLogger(log),
			cache.WithRecorder(m),
		),
		limiter:      limiter,
		metrics:      m,
		checks:       checks,
		checkTimeout: httpCfg.CheckTimeout,
	}

	log.Info("starting geoapi",
		slog.String("env", env.String()),
		slog.String("api", appCfg.apiPrefix()),
		slog.String("cache_backend", cacheCfg.Backend),
		slog.String("rate_limit_backend", limitCfg.Backend),
	)

	return httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log)).Run(ctx, a.handler())
}
