package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/bootcamp-directory/internal/config"
	"github.com/iliyamo/bootcamp-directory/internal/database"
	"github.com/iliyamo/bootcamp-directory/internal/geocode"
	"github.com/iliyamo/bootcamp-directory/internal/handler"
	"github.com/iliyamo/bootcamp-directory/internal/middleware"
	"github.com/iliyamo/bootcamp-directory/internal/queue"
	"github.com/iliyamo/bootcamp-directory/internal/repository"
	"github.com/iliyamo/bootcamp-directory/internal/router"
	"github.com/iliyamo/bootcamp-directory/internal/service"
	"github.com/iliyamo/bootcamp-directory/internal/validate"
)

func main() {
	cfg := config.Load()
	log.SetLevel(config.ParseLogLevel(cfg.LogLevel))

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	defer db.Close()
	if cfg.DBMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			log.Fatalf("mysql: %v", err)
		}
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	cacheCfg := config.LoadCacheConfig()
	geoCfg := config.LoadGeocoderConfig()

	geocoder := geocode.NewCached(
		geocode.NewMapQuest(geocode.MapQuestConfig{APIKey: geoCfg.APIKey, BaseURL: geoCfg.BaseURL, Timeout: geoCfg.Timeout}),
		rdb, geoCfg.CacheTTL, geoCfg.CachePrefix)

	var events service.EventPublisher = service.NopPublisher{}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.RabbitMQURL != "" {
		events = service.AMQPPublisher{URL: cfg.RabbitMQURL}
		go func() {
			if err := queue.StartBootcampEventConsumer(ctx, cfg.RabbitMQURL, queue.DefaultAuditLog); err != nil && !errors.Is(err, context.Canceled) {
				log.Errorf("bootcamp-consumer stopped: %v", err)
			}
		}()
	}

	v := validate.New()
	bootcampRepo := repository.NewBootcampRepo(db)
	courseRepo := repository.NewCourseRepo(db)
	bootcamps := service.NewBootcampService(bootcampRepo, courseRepo, geocoder, v, events)
	courses := service.NewCourseService(courseRepo, bootcamps, v)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(config.ParseLogLevel(cfg.LogLevel))
	e.Validator = v
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, rv echomw.RequestLoggerValues) error {
			c.Logger().Infof("%s %s %d %s", rv.Method, rv.URI, rv.Status, rv.Latency)
			return nil
		},
	}))
	e.Use(echomw.Recover())

	router.RegisterRoutes(e, router.Deps{
		JWTSecret: cfg.JWTSecret,
		Health:    &handler.HealthHandler{DB: db, Redis: rdb},
		Auth:      handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)),
		Bootcamps: handler.NewBootcampHandler(bootcamps),
		Courses:   handler.NewCourseHandler(courses),
		Cache:     middleware.NewRedisCache(cacheCfg, rdb),
		Purge:     middleware.PurgeOnWrite(cacheCfg, rdb),
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	})

	addr := ":" + cfg.Port
	log.Infof("listening on %s (env=%s)", addr, cfg.Env)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
