package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/retail-backoffice/internal/config"
	"github.com/retail-backoffice/internal/events"
	"github.com/retail-backoffice/internal/fallback"
	handler "github.com/retail-backoffice/internal/http"
	"github.com/retail-backoffice/internal/logger"
	"github.com/retail-backoffice/internal/observability"
	"github.com/retail-backoffice/internal/remote"
	"github.com/retail-backoffice/internal/service"
	"github.com/retail-backoffice/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		zlog.Fatal("ping database", zap.Error(err))
	}
	if err := postgres.RunMigrations(db, cfg.MigrationsDir); err != nil {
		zlog.Fatal("apply migrations", zap.Error(err))
	}
	zlog.Info("connected to database, migrations applied")

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zlog.Fatal("parse redis url", zap.Error(err))
	}
	redisClient := redis.NewClient(opt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		zlog.Fatal("ping redis", zap.Error(err))
	}
	zlog.Info("connected to redis")

	table := postgres.NewTable(db)
	queue := events.NewRedisQueue(redisClient)
	notifier := events.NewNotifier(queue)
	metrics := observability.New()

	api := remote.New(cfg.RemoteBaseURL, cfg.RemoteTimeout)

	customers := service.NewCustomers(api, fallback.NewCustomers(table), zlog, metrics)
	products := service.NewProducts(api, fallback.NewProducts(table), zlog, metrics)
	orders := service.NewOrders(api, fallback.NewOrders(table), notifier, zlog, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := events.NewConsumer(queue, zlog)
	go consumer.Run(ctx)

	h := handler.NewHandler(customers, products, orders, api)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(logger.Middleware(zlog), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		zlog.Info("starting server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		zlog.Error("close redis", zap.Error(err))
	}
	zlog.Info("server exited")
}
