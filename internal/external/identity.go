package external

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// IdentityClient checks a user's current password. Without a BaseURL it compares
// against the configured reference password instead of calling the identity service.
type IdentityClient struct {
	baseURL           string
	referencePassword string
	httpClient        *http.Client
}

type IdentityConfig struct {
	BaseURL           string
	ReferencePassword string
	Timeout           time.Duration
}

type VerifyCredentialsRequest struct {
	UserID   int64  `json:"user_id"`
	Password string `json:"password"`
}

type VerifyCredentialsResponse struct {
	Valid bool `json:"valid"`
}

func NewIdentityClient(cfg IdentityConfig) *IdentityClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &IdentityClient{
		baseURL:           cfg.BaseURL,
		referencePassword: cfg.ReferencePassword,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (ic *IdentityClient) Verify(ctx context.Context, userID int64, password string) (bool, error) {
	if ic.baseURL == "" {
		return subtle.ConstantTimeCompare([]byte(password), []byte(ic.referencePassword)) == 1, nil
	}

	jsonBody, err := json.Marshal(VerifyCredentialsRequest{UserID: userID, Password: password})
	if err != nil {
		return false, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ic.baseURL+"/api/v1/credentials/verify", bytes.NewBuffer(jsonBody))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ic.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to verify credentials: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result VerifyCredentialsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Valid, nil
}
