package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"agritradehub/internal/core/auth"
	"agritradehub/internal/core/cache"
	"agritradehub/internal/core/config"
	"agritradehub/internal/core/database"
	"agritradehub/internal/core/logger"
	"agritradehub/internal/core/server"
	"agritradehub/internal/domain"
	"agritradehub/internal/repo"
	"agritradehub/internal/service"
	"agritradehub/internal/transport/http/router"
	"agritradehub/internal/tts"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// The store must be reachable before anything binds.
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if err := db.AutoMigrate(&domain.User{}, &domain.Product{}, &domain.Order{}, &domain.Session{}); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	users := repo.NewUserRepo(db)
	products := repo.NewProductRepo(db)
	orders := repo.NewOrderRepo(db)
	sessions := repo.NewSessionRepo(db)

	rcache := newCache(cfg, log)

	// Seed the catalog before accepting traffic; reruns are no-ops.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	productSvc := service.NewProductService(products, rcache)
	if err := productSvc.Seed(seedCtx); err != nil {
		log.Fatal("product seed failed", zap.Error(err))
	}
	cancelSeed()
	log.Info("catalog seeded")

	signer := &auth.Signer{Secret: []byte(cfg.Session.Secret), Issuer: cfg.App.Name}
	authSvc := service.NewAuthService(users, sessions, signer,
		time.Duration(cfg.Session.TTLDays)*24*time.Hour)
	userSvc := service.NewUserService(users)
	orderSvc := service.NewOrderService(orders, products)
	statsSvc := service.NewStatsService(users, products, orders, rcache)
	ttsClient := tts.NewClient(cfg.TTS.Endpoint, cfg.TTS.APIKey,
		time.Duration(cfg.TTS.TimeoutSec)*time.Second)

	r := router.NewAPIEngine(router.Deps{
		Log:           log,
		DB:            db,
		Auth:          authSvc,
		Users:         userSvc,
		Products:      productSvc,
		Orders:        orderSvc,
		Stats:         statsSvc,
		TTS:           ttsClient,
		CookieName:    cfg.Session.CookieName,
		SecureCookies: cfg.App.Env == "production",
	})

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go service.NewSweeper(sessions, time.Hour, log).Run(sweepCtx)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.Build(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	log.Info("api starting", zap.String("addr", addr), zap.Bool("tts", ttsClient.Enabled()))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.Ping(ctx, db); err != nil {
		l.Fatal("db unreachable", zap.Error(err))
	}
	return db
}

// newCache returns the shared redis cache, or nil when redis is not
// configured (services degrade to direct loads).
func newCache(cfg *config.Config, l *zap.Logger) *cache.Cache {
	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if c == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		l.Warn("redis unreachable, caching disabled", zap.Error(err))
		return nil
	}
	return c
}
