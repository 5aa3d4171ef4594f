package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/apperrors"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/config"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/models"
)

// ProductSeller records retail product sales on the booking backend, one call
// per distinct product line.
type ProductSeller interface {
	Sell(ctx context.Context, req *models.ProductSaleRequest) error
}

var _ ProductSeller = (*HTTPProductClient)(nil)

// HTTPProductClient implements ProductSeller against POST /products/sell.
type HTTPProductClient struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	logger     *zap.Logger
}

// NewHTTPProductClient creates a new HTTP-based product sale client.
func NewHTTPProductClient(cfg config.ServiceConfig, logger *zap.Logger) *HTTPProductClient {
	return &HTTPProductClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey: cfg.APIKey,
		logger: logger.Named("product-client"),
	}
}

// Sell records one product sale line.
func (c *HTTPProductClient) Sell(ctx context.Context, req *models.ProductSaleRequest) error {
	c.logger.Debug("Recording product sale",
		zap.Int64("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
	)

	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/products/sell", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	setHeaders(httpReq, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Product sale request failed",
			zap.Int64("product_id", req.ProductID),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Error("Product sale returned error",
			zap.Int64("product_id", req.ProductID),
			zap.Int("status_code", resp.StatusCode),
		)
		return apperrors.NewRemoteError("product service", resp.StatusCode, "")
	}

	c.logger.Info("Product sale recorded",
		zap.Int64("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
	)
	return nil
}

// MockProductClient is a mock implementation for testing. FailFor lists
// product ids whose sale calls should fail.
type MockProductClient struct {
	Sales   []*models.ProductSaleRequest
	FailFor map[int64]error
}

// NewMockProductClient creates a mock product sale client.
func NewMockProductClient() *MockProductClient {
	return &MockProductClient{
		FailFor: make(map[int64]error),
	}
}

func (m *MockProductClient) Sell(ctx context.Context, req *models.ProductSaleRequest) error {
	if err, ok := m.FailFor[req.ProductID]; ok {
		return err
	}
	m.Sales = append(m.Sales, req)
	return nil
}
