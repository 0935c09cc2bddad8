package service_test

import (
	"auth-service/config"
	"auth-service/internal/security"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	keyOnce sync.Once
	keyPEM  []byte
)

func newTestSigner(t *testing.T, now func() time.Time) *security.JWTService {
	t.Helper()
	keyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		keyPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	})

	path := filepath.Join(t.TempDir(), "private.pem")
	require.NoError(t, os.WriteFile(path, keyPEM, 0o600))

	cfg := &config.JWTConfig{
		Issuer:             config.DefaultIssuer,
		RefreshTokenSecret: "service-test-secret",
		AccessTokenTTL:     config.DefaultAccessTokenTTL,
		RefreshTokenTTL:    config.DefaultRefreshTokenTTL,
	}
	return security.NewJWTService(cfg, security.NewFileKeyProvider(path)).WithClock(now)
}
