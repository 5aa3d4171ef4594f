package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/apperrors"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/clients"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/config"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/models"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/repository"
)

func newCatalogFixture(caching bool) (*CatalogService, *clients.MockCatalogClient) {
	client := clients.NewMockCatalogClient()
	client.Packages = []models.ServicePackage{
		{ID: 1, Name: "Signature Cut", Price: 80, Active: true},
	}
	client.Products = []models.Product{
		{ID: 3, Name: "Pomade", Price: 25, Active: true},
		{ID: 9, Name: "Discontinued Wax", Price: 30, Active: false},
	}
	client.Staff = []models.Staff{
		{ID: 7, Name: "Amir", CommissionRate: 50},
	}

	cfg := &config.Config{
		Features: config.FeatureFlags{EnableCatalogCaching: caching},
	}
	return NewCatalogService(client, repository.NewMemoryCatalogCache(), cfg, zap.NewNop()), client
}

func TestCatalogService_PackagesCached(t *testing.T) {
	svc, client := newCatalogFixture(true)

	for i := 0; i < 3; i++ {
		packages, err := svc.Packages(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(packages) != 1 {
			t.Fatalf("expected 1 package, got %d", len(packages))
		}
	}

	if client.Calls != 1 {
		t.Errorf("expected 1 backend call with caching on, got %d", client.Calls)
	}
}

func TestCatalogService_PackagesUncached(t *testing.T) {
	svc, client := newCatalogFixture(false)

	for i := 0; i < 3; i++ {
		if _, err := svc.Packages(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if client.Calls != 3 {
		t.Errorf("expected 3 backend calls with caching off, got %d", client.Calls)
	}
}

func TestCatalogService_ProductsActiveOnly(t *testing.T) {
	svc, _ := newCatalogFixture(true)

	products, err := svc.Products(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].ID != 3 {
		t.Errorf("expected active product 3 only, got %+v", products)
	}

	all, err := svc.Products(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 products for the full list, got %d", len(all))
	}
}

func TestCatalogService_ByIDLookups(t *testing.T) {
	svc, _ := newCatalogFixture(true)
	ctx := context.Background()

	pkg, err := svc.PackageByID(ctx, 1)
	if err != nil || pkg.Name != "Signature Cut" {
		t.Errorf("PackageByID(1) = %+v, %v", pkg, err)
	}
	if _, err := svc.PackageByID(ctx, 999); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown package, got %v", err)
	}

	staff, err := svc.StaffByID(ctx, 7)
	if err != nil || staff.CommissionRate != 50 {
		t.Errorf("StaffByID(7) = %+v, %v", staff, err)
	}

	// Inactive products are not resolvable for sale.
	if _, err := svc.ProductByID(ctx, 9); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for inactive product, got %v", err)
	}
}
