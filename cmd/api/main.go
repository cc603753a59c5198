package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"microblog/cmd/app"
	"microblog/internal/config"
	handlers "microblog/internal/handler"
	"microblog/internal/lang"
	"microblog/internal/logging"
	"microblog/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()
	log := logging.New(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.JWTSecretKey == "" {
		log.Error(ctx, "JWT_SECRET_KEY не установлен в .env файле")
		os.Exit(1)
	}

	db, _, services, err := app.App(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "ошибка запуска", "error", err)
		os.Exit(1)
	}
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, db, cfg, log)

	authLimiter := middleware.NewRateLimiter(cfg.RateLimit,
		"/api/auth/register",
		"/api/auth/login",
		"/api/auth/refresh-token",
	)

	// the last middleware is the outermost
	handlerChain := middleware.Chain(
		handler.Router(),
		middleware.LastSeenMiddleware(services.User, log),
		middleware.AuthMiddleware(services.Auth),
		middleware.LocaleMiddleware(lang.NewMatcher(cfg.Languages)),
		authLimiter.Middleware,
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware(log),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           handlerChain,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error(shutdownCtx, "ошибка остановки сервера", "error", err)
		}
	}()

	// Starting the server
	log.Info(ctx, "сервер запущен", "addr", server.Addr, "dbname", cfg.DB.DbNAME)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(ctx, "ошибка запуска сервера", "error", err)
		os.Exit(1)
	}
}
