package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"points-backend/internal/domain"
	"points-backend/internal/logger"
	"points-backend/internal/service"
)

type identityClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewIdentityClient creates the adapter to the auth service, used to resolve
// user profiles and their contact handles.
func NewIdentityClient(baseURL string, timeout time.Duration) service.IdentityClient {
	return &identityClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *identityClient) GetUserInfo(ctx context.Context, userID string) (*domain.UserInfo, error) {
	url := fmt.Sprintf("%s/api/auth/user/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	logger.ExternalServiceCall("auth-service", "GetUserInfo", "user_id", userID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("auth-service", "GetUserInfo", err)
		return nil, fmt.Errorf("auth service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrUserNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("auth service returned status %d", resp.StatusCode)
	}

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode user response: %w", err)
	}
	if env.Code != http.StatusOK || len(env.Data) == 0 {
		return nil, domain.ErrUserNotFound
	}

	var user domain.UserInfo
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user payload: %w", err)
	}
	logger.ExternalServiceResult("auth-service", "GetUserInfo", nil)
	return &user, nil
}
