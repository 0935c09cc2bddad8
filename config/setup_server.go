package config

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	KeySourceFile = "file"
	KeySourceS3   = "s3"

	DefaultIssuer           = "auth-service"
	DefaultPrivateKeyPath   = "certs/private.pem"
	DefaultAccessTokenTTL   = time.Hour
	DefaultRefreshTokenTTL  = 365 * 24 * time.Hour
	DefaultBcryptCost       = 10
	DefaultMaxActivePerUser = 5
	DefaultCacheTTL         = 10 * time.Minute
	DefaultServerAddr       = ":5501"
)

type AppConfig struct {
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig"`
	RedisConfig    RedisConfig    `yaml:"redisConfig"`
	ServerAddr     string         `yaml:"serverAddr" env:"SERVER_ADDR"`
	S3Config       S3Config       `yaml:"s3Config"`
	JWT            JWTConfig      `yaml:"jwt"`
	Cookie         CookieConfig   `yaml:"cookie"`
	Ledger         LedgerConfig   `yaml:"ledger"`
	Security       SecurityConfig `yaml:"security"`
}

// LoadConfig читает конфигурацию через ReadConfig и проверяет обязательные параметры сервиса.
func LoadConfig(path string) (*AppConfig, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ReadConfig читает yaml файл, затем .env и переменные окружения, и подставляет значения по умолчанию.
// Переменные окружения имеют приоритет над значениями из файла.
// Отсутствующий файл не является ошибкой: вся конфигурация может прийти из окружения.
// Validate не вызывается, это нужно утилитам, которым не нужна вся конфигурация сервиса.
func ReadConfig(path string) (*AppConfig, error) {
	var cfg AppConfig

	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(file, &cfg); err != nil {
				return nil, fmt.Errorf("ошибка разбора %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			log.Printf("файл конфигурации %s не найден, используется окружение", path)
		default:
			return nil, fmt.Errorf("ошибка чтения %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("ошибка чтения .env: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора переменных окружения: %w", err)
	}

	cfg.applyDefaults(path)

	return &cfg, nil
}

func (cfg *AppConfig) applyDefaults(configPath string) {
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = DefaultServerAddr
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = DefaultIssuer
	}
	if cfg.JWT.KeySource == "" {
		cfg.JWT.KeySource = KeySourceFile
	}
	if cfg.JWT.PrivateKeyPath == "" {
		cfg.JWT.PrivateKeyPath = DefaultPrivateKeyPath
	}
	if cfg.JWT.KeyBaseDir == "" {
		cfg.JWT.KeyBaseDir = defaultBaseDir(configPath)
	}
	if cfg.JWT.AccessTokenTTL == 0 {
		cfg.JWT.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if cfg.JWT.RefreshTokenTTL == 0 {
		cfg.JWT.RefreshTokenTTL = DefaultRefreshTokenTTL
	}
	if cfg.Security.BcryptCost == 0 {
		cfg.Security.BcryptCost = DefaultBcryptCost
	}
	if cfg.Ledger.MaxActivePerUser == 0 {
		cfg.Ledger.MaxActivePerUser = DefaultMaxActivePerUser
	}
	if cfg.RedisConfig.TTL == 0 {
		cfg.RedisConfig.TTL = DefaultCacheTTL
	}
}

// Validate проверяет обязательные параметры.
func (cfg *AppConfig) Validate() error {
	if strings.TrimSpace(cfg.JWT.RefreshTokenSecret) == "" {
		return errors.New("REFRESH_TOKEN_SECRET обязателен")
	}
	if cfg.JWT.AccessTokenTTL < 0 || cfg.JWT.RefreshTokenTTL < 0 {
		return errors.New("время жизни токенов должно быть положительным")
	}
	switch cfg.JWT.KeySource {
	case KeySourceFile:
	case KeySourceS3:
		if cfg.S3Config.Bucket == "" || cfg.JWT.PrivateKeyObject == "" {
			return errors.New("для key_source=s3 нужны s3Config.bucket и jwt.private_key_object")
		}
	default:
		return fmt.Errorf("неизвестный key_source: %q", cfg.JWT.KeySource)
	}
	return nil
}

// ResolvePrivateKeyPath : абсолютный путь к ключу.
// Относительный путь считается от KeyBaseDir, а не от рабочей директории процесса.
func (c *JWTConfig) ResolvePrivateKeyPath() string {
	if filepath.IsAbs(c.PrivateKeyPath) {
		return c.PrivateKeyPath
	}
	return filepath.Join(c.KeyBaseDir, c.PrivateKeyPath)
}

// ResolveConfigPath : AUTH_CONFIG имеет приоритет, относительный путь считается от директории бинарника
func ResolveConfigPath(path string) string {
	if fromEnv := os.Getenv("AUTH_CONFIG"); fromEnv != "" {
		path = fromEnv
	}
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(executableDir(), path)
}

// defaultBaseDir : директория файла конфигурации, если путь к нему абсолютный, иначе директория бинарника
func defaultBaseDir(configPath string) string {
	if filepath.IsAbs(configPath) {
		return filepath.Dir(configPath)
	}
	return executableDir()
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		log.Printf("не удалось определить путь к бинарнику: %v", err)
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:              serverAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
