package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/obelousov/pixelboard/internal/common"
)

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// authTransport injects the Bearer access token into every request. When the
// server reports token expiry it renews the pair once and retries the
// request; any other failure is passed through untouched.
type authTransport struct {
	base    http.RoundTripper
	baseURL string
	apiKey  string

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func newAuthTransport(base http.RoundTripper, baseURL string, apiKey string) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{base: base, baseURL: baseURL, apiKey: apiKey}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.token(req.Context())
	if err != nil {
		return nil, err
	}

	resp, err := t.send(req, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	if !hasErrorCode(body, common.CodeTokenExpired) {
		resp.Body = io.NopCloser(bytes.NewReader(body))
		return resp, nil
	}

	token, err = t.renew(req.Context())
	if err != nil {
		resp.Body = io.NopCloser(bytes.NewReader(body))
		return resp, nil
	}

	return t.send(req, token)
}

// send clones the request so it can be replayed after a token renewal.
func (t *authTransport) send(req *http.Request, token string) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		clone.Body = body
	}
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(clone)
}

// token returns the current access token, exchanging the API key for an
// initial pair on first use.
func (t *authTransport) token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.accessToken != "" {
		return t.accessToken, nil
	}
	if err := t.exchangeAPIKey(ctx); err != nil {
		return "", err
	}
	return t.accessToken, nil
}

// renew rotates the token pair via the refresh endpoint, falling back to a
// fresh API-key exchange when the refresh token itself is rejected.
func (t *authTransport) renew(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.refreshToken != "" {
		payload, err := json.Marshal(map[string]string{"refresh_token": t.refreshToken})
		if err != nil {
			return "", err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/v1/auth/refresh", bytes.NewReader(payload))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")

		if err := t.requestPair(req); err == nil {
			return t.accessToken, nil
		}
	}

	if err := t.exchangeAPIKey(ctx); err != nil {
		return "", err
	}
	return t.accessToken, nil
}

// exchangeAPIKey trades the configured API key for a token pair.
// Callers must hold t.mu.
func (t *authTransport) exchangeAPIKey(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/v1/auth/token", nil)
	if err != nil {
		return err
	}
	req.Header.Set(common.APIKeyHeaderName, t.apiKey)

	return t.requestPair(req)
}

// requestPair performs a token-endpoint request on the base transport and
// stores the resulting pair. Callers must hold t.mu.
func (t *authTransport) requestPair(req *http.Request) error {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return fmt.Errorf("token request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed: %w", common.ErrorUnauthorized)
	}

	var pair tokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return fmt.Errorf("token response decode error: %w", err)
	}

	t.accessToken = pair.AccessToken
	t.refreshToken = pair.RefreshToken
	return nil
}

func hasErrorCode(body []byte, code string) bool {
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return false
	}
	return resp.Error.Code == code
}
