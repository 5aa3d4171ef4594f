package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/apperrors"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/config"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/models"
)

// DiscountValidator resolves a user-entered code to a discount scoped to one
// client. Failures are surfaced to the user and never retried automatically.
type DiscountValidator interface {
	Validate(ctx context.Context, code string, clientID int64) (*models.DiscountCode, error)
}

var _ DiscountValidator = (*HTTPDiscountClient)(nil)

// HTTPDiscountClient implements DiscountValidator against the booking
// backend's POST /discount-codes/validate endpoint.
type HTTPDiscountClient struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	logger     *zap.Logger
}

// NewHTTPDiscountClient creates a new HTTP-based discount validator.
func NewHTTPDiscountClient(cfg config.ServiceConfig, logger *zap.Logger) *HTTPDiscountClient {
	return &HTTPDiscountClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey: cfg.APIKey,
		logger: logger.Named("discount-client"),
	}
}

// Validate resolves a code for one client. The code is normalized to upper
// case before sending. A negative result carries the backend's message
// (not found, expired, not eligible) so the caller can show it verbatim.
func (c *HTTPDiscountClient) Validate(ctx context.Context, code string, clientID int64) (*models.DiscountCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	c.logger.Debug("Validating discount code",
		zap.String("code", normalized),
		zap.Int64("client_id", clientID),
	)

	body, err := json.Marshal(models.ValidateDiscountRequest{
		Code:     normalized,
		ClientID: clientID,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/discount-codes/validate", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	setHeaders(httpReq, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Discount validation request failed",
			zap.String("code", normalized),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	var result models.ValidateDiscountResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, apperrors.NewRemoteError("discount service", resp.StatusCode, "")
		}
		return nil, err
	}

	if resp.StatusCode != http.StatusOK || !result.Success {
		c.logger.Info("Discount code rejected by backend",
			zap.String("code", normalized),
			zap.Int("status_code", resp.StatusCode),
			zap.String("message", result.Message),
		)
		return nil, apperrors.NewRemoteError("discount service", resp.StatusCode, result.Message)
	}

	c.logger.Info("Discount code validated",
		zap.String("code", result.Data.Code),
		zap.String("type", result.Data.DiscountType),
	)
	return &result.Data, nil
}

// MockDiscountClient is a mock implementation for testing.
type MockDiscountClient struct {
	Codes map[string]*models.DiscountCode
	Calls int
}

// NewMockDiscountClient creates a mock discount validator.
func NewMockDiscountClient() *MockDiscountClient {
	return &MockDiscountClient{
		Codes: make(map[string]*models.DiscountCode),
	}
}

func (m *MockDiscountClient) Validate(ctx context.Context, code string, clientID int64) (*models.DiscountCode, error) {
	m.Calls++
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if dc, ok := m.Codes[normalized]; ok {
		return dc, nil
	}
	return nil, apperrors.NewRemoteError("discount service", http.StatusNotFound, "discount code not found")
}
