package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/db"
	httpServer "taskboard/internal/http"
	"taskboard/internal/http/handlers"
	"taskboard/internal/http/middleware"
	"taskboard/internal/logger"
	"taskboard/internal/migrations"
	"taskboard/internal/repository"
	"taskboard/internal/repository/memrepo"
	"taskboard/internal/service"
	"taskboard/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var version = "dev"

type stores struct {
	tasks    service.TaskStore
	feedback service.FeedbackStore
	people   service.PersonStore
	audit    service.AuditStore
	ping     handlers.Pinger
	close    func()
}

func openStores(ctx context.Context, cfg *config.Config) stores {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		mem := memrepo.New()
		return stores{
			tasks:    mem.Tasks(),
			feedback: mem.Feedback(),
			people:   mem.People(),
			audit:    mem.AuditLogs(),
			ping:     mem,
			close:    func() {},
		}
	}

	pool := db.Connect(ctx, cfg.DatabaseURL)
	if cfg.AutoMigrate {
		if err := migrations.Up(cfg.DatabaseURL); err != nil {
			logger.Fatal("failed to apply migrations", "error", err)
		}
	}
	return stores{
		tasks:    repository.NewTaskRepository(pool),
		feedback: repository.NewFeedbackRepository(pool),
		people:   repository.NewPersonRepository(pool),
		audit:    repository.NewAuditRepository(pool),
		ping:     pool,
		close:    pool.Close,
	}
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	ctx := context.Background()
	st := openStores(ctx, cfg)
	defer st.close()

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer middleware.CloseRedis()

	hub := ws.NewHub()
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	audit := service.NewAuditService(st.audit)

	h := handlers.NewHandler(
		service.NewTaskService(st.tasks, st.feedback, audit, hub, cfg.RequireAssignee),
		service.NewPersonService(st.people, audit, hub),
		service.NewAuthService(st.people, tokens, audit),
		audit,
	)

	var checks map[string]handlers.Pinger
	if cfg.RedisAddr != "" {
		checks = map[string]handlers.Pinger{"redis": handlers.PingFunc(middleware.RedisPing)}
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID}
	corsCfg.ExposeHeaders = []string{middleware.HeaderRequestID, "Retry-After"}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer.RegisterRoutes(r, httpServer.Deps{
		Handler:  h,
		Health:   handlers.NewHealthHandler(st.ping, version, checks),
		Hub:      hub,
		Identity: h.Auth,
		Tokens:   tokens,
		Config:   cfg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "store", cfg.Store, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
