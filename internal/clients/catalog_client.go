package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/apperrors"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/config"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/models"
)

// CatalogReader supplies the read-only lookups feeding the pricing engine:
// packages, products and staff from the booking backend.
type CatalogReader interface {
	GetPackages(ctx context.Context) ([]models.ServicePackage, error)
	GetProducts(ctx context.Context, activeOnly bool) ([]models.Product, error)
	GetStaff(ctx context.Context) ([]models.Staff, error)
}

var _ CatalogReader = (*HTTPCatalogClient)(nil)

// HTTPCatalogClient implements CatalogReader over the backend's GET
// endpoints.
type HTTPCatalogClient struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	logger     *zap.Logger
}

// NewHTTPCatalogClient creates a new HTTP-based catalog client.
func NewHTTPCatalogClient(cfg config.ServiceConfig, logger *zap.Logger) *HTTPCatalogClient {
	return &HTTPCatalogClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey: cfg.APIKey,
		logger: logger.Named("catalog-client"),
	}
}

// GetPackages retrieves the service catalog.
func (c *HTTPCatalogClient) GetPackages(ctx context.Context) ([]models.ServicePackage, error) {
	var packages []models.ServicePackage
	if err := c.getJSON(ctx, fmt.Sprintf("%s/packages", c.baseURL), &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

// GetProducts retrieves retail products, optionally active ones only.
func (c *HTTPCatalogClient) GetProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	url := fmt.Sprintf("%s/products", c.baseURL)
	if activeOnly {
		url += "?activeOnly=true"
	}
	var products []models.Product
	if err := c.getJSON(ctx, url, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetStaff retrieves the staff roster with commission rates.
func (c *HTTPCatalogClient) GetStaff(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	if err := c.getJSON(ctx, fmt.Sprintf("%s/staff", c.baseURL), &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (c *HTTPCatalogClient) getJSON(ctx context.Context, url string, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	setHeaders(httpReq, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Catalog request failed", zap.String("url", url), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return apperrors.NewRemoteError("catalog service", resp.StatusCode, "")
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// MockCatalogClient is a mock implementation for testing.
type MockCatalogClient struct {
	Packages []models.ServicePackage
	Products []models.Product
	Staff    []models.Staff
	Calls    int
}

// NewMockCatalogClient creates a mock catalog client.
func NewMockCatalogClient() *MockCatalogClient {
	return &MockCatalogClient{}
}

func (m *MockCatalogClient) GetPackages(ctx context.Context) ([]models.ServicePackage, error) {
	m.Calls++
	return m.Packages, nil
}

func (m *MockCatalogClient) GetProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	m.Calls++
	if !activeOnly {
		return m.Products, nil
	}
	active := make([]models.Product, 0, len(m.Products))
	for _, p := range m.Products {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

func (m *MockCatalogClient) GetStaff(ctx context.Context) ([]models.Staff, error) {
	m.Calls++
	return m.Staff, nil
}
