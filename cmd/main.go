package main

import (
	"auth-service/config"
	_ "auth-service/docs"
	"auth-service/internal/handler"
	"auth-service/internal/ports"
	"auth-service/internal/repository"
	"auth-service/internal/security"
	"auth-service/internal/service"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Auth-service
// @version 1.0
// @description REST API регистрации и аутентификации пользователей

// @host localhost:5501

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(config.ResolveConfigPath("config.yaml"))
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

	// Redis необязателен: без него реестр refresh-токенов работает только через БД
	var tokenCache ports.RefreshTokenCache
	if cfg.RedisConfig.Addr != "" {
		redisClient, err := config.SetupRedis(&cfg.RedisConfig)
		if err != nil {
			log.Printf("Redis недоступен, кэш refresh-токенов отключен: %v", err)
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					log.Printf("Ошибка при закрытии Redis: %v", err)
				}
			}()
			tokenCache = repository.NewCacheRepository(redisClient, cfg.RedisConfig.TTL)
		}
	}

	keys, err := setupKeyProvider(ctx, cfg)
	if err != nil {
		log.Fatalf("Ошибка создания источника ключей: %v", err)
	}
	// ключ читается лениво, здесь только предупреждаем о проблеме заранее
	if _, err := keys.PrivateKey(ctx); err != nil {
		log.Printf("Приватный ключ пока недоступен, подпись токенов будет возвращать ошибку: %v", err)
	}

	hasher, err := security.NewBcryptHasher(cfg.Security.BcryptCost)
	if err != nil {
		log.Fatalf("Ошибка настройки bcrypt: %v", err)
	}
	jwtService := security.NewJWTService(&cfg.JWT, keys)

	userRepo := repository.NewUserRepository()
	refreshTokenRepo := repository.NewRefreshTokenRepository()
	transactor := repository.NewTransactor(db)

	ledger := service.NewLedgerService(refreshTokenRepo, tokenCache, transactor, cfg.JWT.RefreshTokenTTL, cfg.Ledger.MaxActivePerUser)
	issuer := service.NewTokenIssuer(jwtService, ledger)
	userService := service.NewUserService(userRepo, hasher, issuer, transactor)
	authService := service.NewAuthenticationService(userRepo, hasher, jwtService, issuer, ledger, transactor)

	cookies := handler.NewCookieSettings(&cfg.Cookie, &cfg.JWT)
	authHandler := handler.NewAuthenticationHandler(authService, cookies)
	userHandler := handler.NewUserHandler(userService, cookies)
	healthHandler := handler.NewHealthHandler(handler.HealthCheck{Name: "postgres", Check: db.PingContext})

	srv, router := config.SetupServer(cfg.ServerAddr)

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	handler.SetupAuthRoutes(router, authHandler, userHandler, security.JWTMiddleware(jwtService, handler.WriteError))
	handler.SetupHealthRoutes(router, healthHandler)

	runServer(ctx, srv)
}

func setupKeyProvider(ctx context.Context, cfg *config.AppConfig) (*security.RSAKeyProvider, error) {
	if cfg.JWT.KeySource == config.KeySourceS3 {
		s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
		if err != nil {
			return nil, err
		}
		return security.NewObjectKeyProvider(s3Service, cfg.JWT.PrivateKeyObject), nil
	}
	return security.NewFileKeyProvider(cfg.JWT.ResolvePrivateKeyPath()), nil
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
		if err != nil && err != http.ErrServerClosed {
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
