package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/config"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/database"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/fixture"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/handler"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/logger"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/middleware"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/repository"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/router"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/seatmap"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/service"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/session"
)

// sources groups the storage the handlers and the cart read from.
type sources struct {
	layouts   handler.LayoutFetcher
	overrides handler.OverrideFetcher
	commits   handler.CommitLister
	cart      service.CartStore
}

func main() {
	_ = godotenv.Load()

	cfg, cfgErr := config.Load()
	log := logger.Must(cfg.Env, "seatmap-server")
	defer func() { _ = log.Sync() }()
	if cfgErr != nil {
		log.Fatal("invalid configuration", zap.Error(cfgErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := config.NewRedisClient()
	if err != nil {
		log.Warn("redis unavailable; caching and rate limiting disabled", zap.Error(err))
	} else {
		defer func() { _ = rdb.Close() }()
	}

	src, closeSrc := openSources(ctx, cfg, rdb, log)
	defer closeSrc()

	var pub service.EventPublisher
	if cfg.CommitEvents {
		pub = service.NewPublisher(cfg.RabbitMQURL, cfg.CommitQueue, log)
	}
	cart := service.NewCartService(src.cart, pub, log)

	engineCfg := cfg.Engine.Seatmap()
	sessions := session.NewStore(cfg.SessionTTL, func(id string) *seatmap.Engine {
		return seatmap.New(engineCfg, cart, seatmap.WithLogger(log.With(zap.String("session_id", id))))
	}, log)
	go sessions.Run(ctx, time.Minute)

	var (
		respStore middleware.ResponseStore
		scripter  redis.Scripter
	)
	if rdb != nil {
		respStore, scripter = rdb, rdb
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover(), middleware.RequestID(), middleware.RequestLogger(log))
	router.Register(e, router.Deps{
		SeatMap:   handler.NewSeatMapHandler(src.layouts, src.overrides, engineCfg, log),
		Sessions:  handler.NewSessionHandler(sessions, src.layouts, src.overrides, src.commits, log),
		JWTSecret: cfg.JWTSecret,
		Cache:     middleware.NewResponseCache(config.LoadCacheConfig(), respStore, log),
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), scripter, log),
	})

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}

// openSources returns MySQL-backed stores when DB_HOST is set and the
// in-memory fixture otherwise.
func openSources(ctx context.Context, cfg config.Config, rdb repository.LayoutCache, log *zap.Logger) (sources, func()) {
	if !cfg.UseDatabase() {
		fx := fixture.NewSource(cfg.FixtureSeed, fixture.DefaultRates)
		log.Info("no DB_HOST configured; serving the demo fixture",
			zap.String("event_id", fixture.DemoEventID), zap.Int64("seed", cfg.FixtureSeed))
		return sources{layouts: fx, overrides: fx, commits: fx, cart: fx}, func() {}
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("schema migration failed", zap.Error(err))
	}

	layouts := repository.NewLayoutRepo(db)
	if cfg.SeedDemo {
		if err := layouts.Save(ctx, fixture.DemoVenue(fixture.DemoEventID)); err != nil {
			log.Fatal("seeding demo venue failed", zap.Error(err))
		}
		log.Info("demo venue stored", zap.String("event_id", fixture.DemoEventID))
	}
	carts := repository.NewCartRepo(db)
	return sources{
		layouts:   repository.NewCachedLayoutRepo(layouts, rdb, cfg.LayoutCacheTTL, log),
		overrides: repository.NewOverrideRepo(db),
		commits:   carts,
		cart:      carts,
	}, func() { _ = db.Close() }
}
