package main

import (
	"auth-web-server/config"
	_ "auth-web-server/docs"
	"auth-web-server/internal/handler"
	"auth-web-server/internal/ratelimit"
	"auth-web-server/internal/repository"
	"auth-web-server/internal/security"
	"auth-web-server/internal/service"
	"context"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// @title Auth-web-server
// @version 1.0
// @description REST API аутентификации: выдача, обновление и отзыв токенов

// @host localhost:8080
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	jwtRepo := repository.NewJWTRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.Cache.UserTTLSeconds)*time.Second)

	jwtService, err := security.NewJWTService(&cfg.JWT)
	if err != nil {
		log.Fatalf("Ошибка создания JWT сервиса: %v", err)
	}

	authService := service.NewAuthenticationService(jwtRepo, jwtService, userRepo)
	userService := service.NewUserService(userRepo, cacheRepo)

	authHandler := handler.NewAuthenticationHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	publicHandler := handler.NewPublicHandler()

	// один реестр ведер на сервер, без глобального состояния
	limiter := ratelimit.NewLimiter()

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupRoutes(router, authHandler, userHandler, publicHandler, jwtService, userRepo, limiter, cfg)

	runServer(ctx, srv)
}

func setupRoutes(
	router chi.Router,
	authHandler *handler.AuthenticationHandler,
	userHandler *handler.UserHandler,
	publicHandler *handler.PublicHandler,
	jwtService *security.JWTService,
	userRepo *repository.UserRepository,
	limiter *ratelimit.Limiter,
	cfg *config.AppConfig,
) {
	loginScoped := func(scope string) func(http.Handler) http.Handler {
		return ratelimit.Middleware(limiter, scope, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(ratelimit.Middleware(limiter, "api", cfg.RateLimit.DefaultLimit, cfg.RateLimit.DefaultWindow))

		r.Route("/public", func(r chi.Router) {
			r.Get("/ping", publicHandler.Ping)
			r.Get("/health", publicHandler.Health)
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(loginScoped("register")).Post("/register", userHandler.RegisterUser)
			r.With(loginScoped("login")).Post("/login", authHandler.Login)
			r.With(loginScoped("refresh")).Post("/refresh", authHandler.RefreshToken)
			r.With(loginScoped("logout")).Post("/logout", authHandler.Logout)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService, userRepo))
			r.Get("/me", userHandler.Me)
			r.With(security.RequireRole("admin")).Get("/admin/secret", userHandler.AdminSecret)
		})
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
