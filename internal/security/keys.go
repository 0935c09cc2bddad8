package security

import (
	"auth-service/internal/apperror"
	"auth-service/internal/ports"
	"auth-service/internal/util"
	"context"
	"crypto/rsa"
	"fmt"
	"os"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

type keyLoader func(ctx context.Context) ([]byte, error)

// RSAKeyProvider читает приватный ключ при первом обращении и кэширует его.
// Неудачное чтение не кэшируется: следующий вызов попробует снова.
type RSAKeyProvider struct {
	source string
	load   keyLoader

	mu  sync.RWMutex
	key *rsa.PrivateKey
}

func NewFileKeyProvider(path string) *RSAKeyProvider {
	return &RSAKeyProvider{
		source: path,
		load: func(_ context.Context) ([]byte, error) {
			return os.ReadFile(path)
		},
	}
}

func NewObjectKeyProvider(storage ports.ObjectStorage, objectKey string) *RSAKeyProvider {
	return &RSAKeyProvider{
		source: "s3://" + objectKey,
		load: func(ctx context.Context) ([]byte, error) {
			return storage.GetObject(ctx, objectKey)
		},
	}
}

func (p *RSAKeyProvider) PrivateKey(ctx context.Context) (*rsa.PrivateKey, error) {
	p.mu.RLock()
	key := p.key
	p.mu.RUnlock()
	if key != nil {
		return key, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.key != nil {
		return p.key, nil
	}

	data, err := p.load(ctx)
	if err != nil {
		logged := util.LogError(fmt.Sprintf("[KeyProvider] не удалось прочитать ключ %s", p.source), err)
		return nil, apperror.Wrap(apperror.KeyUnavailable, "signing key is unavailable", logged)
	}

	parsed, err := jwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		logged := util.LogError(fmt.Sprintf("[KeyProvider] ключ %s не является RSA PEM", p.source), err)
		return nil, apperror.Wrap(apperror.KeyUnavailable, "signing key is unavailable", logged)
	}

	p.key = parsed
	return parsed, nil
}

func (p *RSAKeyProvider) PublicKey(ctx context.Context) (*rsa.PublicKey, error) {
	key, err := p.PrivateKey(ctx)
	if err != nil {
		return nil, err
	}
	return &key.PublicKey, nil
}
