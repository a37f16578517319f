package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type googleTestEnv struct {
	verifier *GoogleVerifier
	key      *rsa.PrivateKey
	server   *httptest.Server
}

func setupGoogleTestEnv(t *testing.T, clientID string) *googleTestEnv {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemData := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"test-kid": string(pemData)})
	}))
	t.Cleanup(srv.Close)

	verifier := NewGoogleVerifier(clientID)
	verifier.certsURL = srv.URL

	return &googleTestEnv{verifier: verifier, key: key, server: srv}
}

func (env *googleTestEnv) signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "test-kid"

	signed, err := token.SignedString(env.key)
	require.NoError(t, err)
	return signed
}

func TestGoogleVerifier_Verify(t *testing.T) {
	env := setupGoogleTestEnv(t, "client-123")

	token := env.signToken(t, jwt.MapClaims{
		"iss":     "https://accounts.google.com",
		"aud":     "client-123",
		"sub":     "google-uid-42",
		"email":   "carol@example.com",
		"name":    "Carol Danvers",
		"picture": "https://lh3.example.com/photo.jpg",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	claims, err := env.verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "google-uid-42", claims.Subject)
	require.Equal(t, "carol@example.com", claims.Email)
	require.Equal(t, "Carol Danvers", claims.Name)
	require.Equal(t, "https://lh3.example.com/photo.jpg", claims.Picture)
}

func TestGoogleVerifier_Verify_WrongAudience(t *testing.T) {
	env := setupGoogleTestEnv(t, "client-123")

	token := env.signToken(t, jwt.MapClaims{
		"iss": "accounts.google.com",
		"aud": "someone-else",
		"sub": "google-uid-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := env.verifier.Verify(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidIDToken)
}

func TestGoogleVerifier_Verify_WrongIssuer(t *testing.T) {
	env := setupGoogleTestEnv(t, "client-123")

	token := env.signToken(t, jwt.MapClaims{
		"iss": "https://evil.example.com",
		"aud": "client-123",
		"sub": "google-uid-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := env.verifier.Verify(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidIDToken)
}

func TestGoogleVerifier_Verify_Expired(t *testing.T) {
	env := setupGoogleTestEnv(t, "client-123")

	token := env.signToken(t, jwt.MapClaims{
		"iss": "https://accounts.google.com",
		"aud": "client-123",
		"sub": "google-uid-42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := env.verifier.Verify(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidIDToken)
}

func TestGoogleVerifier_Verify_UnknownKey(t *testing.T) {
	env := setupGoogleTestEnv(t, "client-123")

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss": "https://accounts.google.com",
		"aud": "client-123",
		"sub": "google-uid-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token.Header["kid"] = "unknown-kid"
	signed, err := token.SignedString(otherKey)
	require.NoError(t, err)

	_, err = env.verifier.Verify(context.Background(), signed)
	require.ErrorIs(t, err, ErrInvalidIDToken)
}
