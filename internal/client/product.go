package client

import (
	"bytes"
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

// apiEnvelope is the response wrapper the collaborator services use.
type apiEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type productClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewProductClient creates the adapter to the remote product catalog service.
func NewProductClient(baseURL string, timeout time.Duration) service.ProductClient {
	return &productClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type productDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Points       int32  `json:"points"`
	Stock        int32  `json:"stock"`
	MonthlyLimit int32  `json:"monthly_limit"`
}

func (c *productClient) Fetch(ctx context.Context, productID string) (*domain.ProductSnapshot, error) {
	url := fmt.Sprintf("%s/api/products/%s", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	logger.ExternalServiceCall("product-service", "Fetch", "product_id", productID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("product-service", "Fetch", err)
		return nil, fmt.Errorf("product service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("product service returned status %d", resp.StatusCode)
	}

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode product response: %w", err)
	}
	if env.Code != http.StatusOK || len(env.Data) == 0 {
		return nil, domain.ErrProductNotFound
	}

	var p productDTO
	if err := json.Unmarshal(env.Data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode product payload: %w", err)
	}
	logger.ExternalServiceResult("product-service", "Fetch", nil, "product", p.Name)

	return &domain.ProductSnapshot{
		ID:           p.ID,
		Name:         p.Name,
		Points:       p.Points,
		Stock:        p.Stock,
		MonthlyLimit: p.MonthlyLimit,
	}, nil
}

type usageRequest struct {
	Quantity int32  `json:"quantity"`
	UserID   string `json:"user_id"`
}

func (c *productClient) DecrementStock(ctx context.Context, productID string, quantity int32, userID string) error {
	url := fmt.Sprintf("%s/api/products/%s/usage", c.baseURL, productID)

	body, err := json.Marshal(usageRequest{Quantity: quantity, UserID: userID})
	if err != nil {
		return fmt.Errorf("failed to marshal usage request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.ExternalServiceCall("product-service", "DecrementStock", "product_id", productID, "quantity", quantity)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("product-service", "DecrementStock", err)
		return fmt.Errorf("product service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("product service returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("product-service", "DecrementStock", err)
		return err
	}
	logger.ExternalServiceResult("product-service", "DecrementStock", nil)
	return nil
}
