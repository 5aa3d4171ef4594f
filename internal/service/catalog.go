package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/apperrors"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/clients"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/config"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/metrics"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/models"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/repository"
)

// CatalogService supplies package, product and staff lookups from the
// booking backend, cache-aside via Redis when caching is enabled.
type CatalogService struct {
	client clients.CatalogReader
	cache  repository.CatalogCache
	config *config.Config
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(client clients.CatalogReader, cache repository.CatalogCache, cfg *config.Config, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		client: client,
		cache:  cache,
		config: cfg,
		logger: logger.Named("catalog-service"),
	}
}

// Packages retrieves the service catalog.
func (s *CatalogService) Packages(ctx context.Context) ([]models.ServicePackage, error) {
	if s.config.Features.EnableCatalogCaching {
		if packages, err := s.cache.GetPackages(ctx); err == nil && packages != nil {
			metrics.CatalogCacheHits.WithLabelValues("cache").Inc()
			return packages, nil
		}
	}

	packages, err := s.client.GetPackages(ctx)
	if err != nil {
		return nil, err
	}
	metrics.CatalogCacheHits.WithLabelValues("backend").Inc()

	if s.config.Features.EnableCatalogCaching {
		if err := s.cache.SetPackages(ctx, packages); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to cache packages", zap.Error(err))
		}
	}

	return packages, nil
}

// Products retrieves active retail products. The cache holds the active-only
// list; a request for the full list always goes to the backend.
func (s *CatalogService) Products(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	if activeOnly && s.config.Features.EnableCatalogCaching {
		if products, err := s.cache.GetProducts(ctx); err == nil && products != nil {
			metrics.CatalogCacheHits.WithLabelValues("cache").Inc()
			return products, nil
		}
	}

	products, err := s.client.GetProducts(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	metrics.CatalogCacheHits.WithLabelValues("backend").Inc()

	if activeOnly && s.config.Features.EnableCatalogCaching {
		if err := s.cache.SetProducts(ctx, products); err != nil {
			s.logger.Error("Failed to cache products", zap.Error(err))
		}
	}

	return products, nil
}

// Staff retrieves the staff roster.
func (s *CatalogService) Staff(ctx context.Context) ([]models.Staff, error) {
	if s.config.Features.EnableCatalogCaching {
		if staff, err := s.cache.GetStaff(ctx); err == nil && staff != nil {
			metrics.CatalogCacheHits.WithLabelValues("cache").Inc()
			return staff, nil
		}
	}

	staff, err := s.client.GetStaff(ctx)
	if err != nil {
		return nil, err
	}
	metrics.CatalogCacheHits.WithLabelValues("backend").Inc()

	if s.config.Features.EnableCatalogCaching {
		if err := s.cache.SetStaff(ctx, staff); err != nil {
			s.logger.Error("Failed to cache staff", zap.Error(err))
		}
	}

	return staff, nil
}

// PackageByID resolves one package from the catalog.
func (s *CatalogService) PackageByID(ctx context.Context, id int64) (*models.ServicePackage, error) {
	packages, err := s.Packages(ctx)
	if err != nil {
		return nil, err
	}
	for i := range packages {
		if packages[i].ID == id {
			return &packages[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// ProductByID resolves one active product.
func (s *CatalogService) ProductByID(ctx context.Context, id int64) (*models.Product, error) {
	products, err := s.Products(ctx, true)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// StaffByID resolves one staff member.
func (s *CatalogService) StaffByID(ctx context.Context, id int64) (*models.Staff, error) {
	staff, err := s.Staff(ctx)
	if err != nil {
		return nil, err
	}
	for i := range staff {
		if staff[i].ID == id {
			return &staff[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}
