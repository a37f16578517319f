package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// ErrCaptchaRejected is returned when the verification endpoint answers
// negatively for the supplied token.
var ErrCaptchaRejected = errors.New("captcha verification rejected")

// CaptchaVerifier checks a client-supplied CAPTCHA token with the
// third-party verification endpoint.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) error
}

// RecaptchaVerifier is a CaptchaVerifier backed by Google reCAPTCHA.
type RecaptchaVerifier struct {
	secret   string
	endpoint string
	client   *http.Client
}

// NewRecaptchaVerifier creates a verifier for the given site secret.
func NewRecaptchaVerifier(secret string) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		secret:   secret,
		endpoint: recaptchaVerifyURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify posts the token to the siteverify endpoint.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token string) error {
	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("captcha verification request failed: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Success    bool     `json:"success"`
		ErrorCodes []string `json:"error-codes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode captcha response: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("%w: %s", ErrCaptchaRejected, strings.Join(result.ErrorCodes, ", "))
	}

	return nil
}
