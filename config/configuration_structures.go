package config

import "time"

type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"DATABASE_DSN"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB"`
	TTL      time.Duration `yaml:"ttl" env:"REDIS_CACHE_TTL"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket" env:"S3_BUCKET"`
	Region    string `yaml:"region" env:"S3_REGION"`
	Endpoint  string `yaml:"endpoint" env:"S3_ENDPOINT"`
	Local     bool   `yaml:"local" env:"S3_LOCAL"`
	AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
}

// JWTConfig : параметры подписи токенов.
// KeySource выбирает, откуда читать приватный RSA ключ: "file" или "s3".
type JWTConfig struct {
	Issuer             string        `yaml:"issuer" env:"JWT_ISSUER"`
	RefreshTokenSecret string        `yaml:"refresh_token_secret" env:"REFRESH_TOKEN_SECRET"`
	KeySource          string        `yaml:"key_source" env:"PRIVATE_KEY_SOURCE"`
	PrivateKeyPath     string        `yaml:"private_key_path" env:"PRIVATE_KEY_PATH"`
	KeyBaseDir         string        `yaml:"key_base_dir" env:"AUTH_BASE_DIR"`
	PrivateKeyObject   string        `yaml:"private_key_object" env:"PRIVATE_KEY_OBJECT"`
	AccessTokenTTL     time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL    time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL"`
}

type CookieConfig struct {
	Domain string `yaml:"domain" env:"COOKIE_DOMAIN"`
	Secure bool   `yaml:"secure" env:"COOKIE_SECURE"`
}

// LedgerConfig : отрицательный MaxActivePerUser отключает ограничение, 0 означает значение по умолчанию
type LedgerConfig struct {
	MaxActivePerUser int `yaml:"max_active_per_user" env:"LEDGER_MAX_ACTIVE_PER_USER"`
}

type SecurityConfig struct {
	BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
}
