package main

import (
	"auth-service/config"
	"auth-service/internal/service"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// keygen создает пару RSA ключей для подписи access токенов.
// С флагом -s3-object приватный ключ дополнительно загружается в бакет из config.yaml.
func main() {
	bits := flag.Int("bits", 2048, "длина RSA ключа")
	out := flag.String("out", config.DefaultPrivateKeyPath, "путь для приватного ключа")
	object := flag.String("s3-object", "", "ключ объекта в S3 для загрузки приватного ключа")
	configPath := flag.String("config", "config.yaml", "файл конфигурации (нужен только для -s3-object)")
	flag.Parse()

	if *bits < 2048 {
		log.Fatalf("длина ключа должна быть не меньше 2048 бит, получено %d", *bits)
	}

	privatePEM, publicPEM, err := generateKeyPair(*bits)
	if err != nil {
		log.Fatalf("ошибка генерации ключа: %v", err)
	}

	publicPath := publicKeyPath(*out)
	if err := writeFile(*out, privatePEM, 0o600); err != nil {
		log.Fatalf("ошибка записи приватного ключа: %v", err)
	}
	if err := writeFile(publicPath, publicPEM, 0o644); err != nil {
		log.Fatalf("ошибка записи публичного ключа: %v", err)
	}
	log.Printf("ключи записаны: %s, %s", *out, publicPath)

	if *object == "" {
		return
	}

	s3Cfg, err := loadS3Config(*configPath)
	if err != nil {
		log.Fatalf("ошибка загрузки конфигурации: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s3Service, err := service.NewS3Service(ctx, s3Cfg)
	if err != nil {
		log.Fatalf("ошибка создания S3 сервиса: %v", err)
	}
	if err := s3Service.PutObject(ctx, *object, privatePEM); err != nil {
		log.Fatalf("ошибка загрузки ключа в S3: %v", err)
	}
	log.Printf("приватный ключ загружен в s3://%s/%s", s3Cfg.Bucket, *object)
}

// loadS3Config : для загрузки ключа нужен только раздел s3Config, секреты сервиса не требуются
func loadS3Config(path string) (*config.S3Config, error) {
	cfg, err := config.ReadConfig(path)
	if err != nil {
		return nil, err
	}
	if cfg.S3Config.Bucket == "" {
		return nil, errors.New("не задан s3Config.bucket (S3_BUCKET)")
	}
	return &cfg.S3Config, nil
}

func generateKeyPair(bits int) ([]byte, []byte, error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, nil, err
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка кодирования публичного ключа: %w", err)
	}

	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})
	return privatePEM, publicPEM, nil
}

func publicKeyPath(privatePath string) string {
	ext := filepath.Ext(privatePath)
	return privatePath[:len(privatePath)-len(ext)] + ".pub" + ext
}

func writeFile(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}
