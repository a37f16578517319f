package services

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const googleCertsURL = "https://www.googleapis.com/oauth2/v1/certs"

// ErrInvalidIDToken is returned when a federated identity token fails
// signature, audience, or issuer validation.
var ErrInvalidIDToken = errors.New("invalid identity token")

// GoogleClaims is the subset of ID token claims the identity service uses.
type GoogleClaims struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// IDTokenVerifier validates a federated identity token and extracts its
// profile claims.
type IDTokenVerifier interface {
	Verify(ctx context.Context, token string) (*GoogleClaims, error)
}

type googleTokenClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleVerifier verifies Google ID tokens against Google's published
// signing certificates, restricted to this application's OAuth client ID.
type GoogleVerifier struct {
	clientID string
	certsURL string
	client   *http.Client

	mu      sync.Mutex
	keys    map[string]*rsa.PublicKey
	fetched time.Time
}

// NewGoogleVerifier creates a verifier for the given OAuth client ID.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID: clientID,
		certsURL: googleCertsURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify parses and validates the token, returning its profile claims.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*GoogleClaims, error) {
	claims := &googleTokenClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no key ID")
		}
		return v.signingKey(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.clientID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidIDToken
	}

	if claims.Issuer != "accounts.google.com" && claims.Issuer != "https://accounts.google.com" {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidIDToken, claims.Issuer)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidIDToken)
	}

	return &GoogleClaims{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

// signingKey resolves a key ID against the cached certificates, refetching
// when the cache is stale or the kid is unknown.
func (v *GoogleVerifier) signingKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if key, ok := v.keys[kid]; ok && time.Since(v.fetched) < time.Hour {
		return key, nil
	}

	if err := v.fetchKeysLocked(ctx); err != nil {
		return nil, err
	}

	key, ok := v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no certificate for key ID %q", kid)
	}
	return key, nil
}

func (v *GoogleVerifier) fetchKeysLocked(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return fmt.Errorf("build certs request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch signing certificates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch signing certificates: unexpected status %d", resp.StatusCode)
	}

	var pems map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&pems); err != nil {
		return fmt.Errorf("decode signing certificates: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(pems))
	for kid, pemData := range pems {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemData))
		if err != nil {
			return fmt.Errorf("parse certificate %q: %w", kid, err)
		}
		keys[kid] = key
	}

	v.keys = keys
	v.fetched = time.Now()
	return nil
}
