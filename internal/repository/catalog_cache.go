package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/config"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/models"
)

const (
	packagesKey     = "catalog:packages"
	productsKey     = "catalog:products"
	staffKey        = "catalog:staff"
	defaultCacheTTL = 5 * time.Minute
)

// CatalogCache caches the booking backend's catalog lookups. A miss returns
// nil slices with no error.
type CatalogCache interface {
	GetPackages(ctx context.Context) ([]models.ServicePackage, error)
	SetPackages(ctx context.Context, packages []models.ServicePackage) error
	GetProducts(ctx context.Context) ([]models.Product, error)
	SetProducts(ctx context.Context, products []models.Product) error
	GetStaff(ctx context.Context) ([]models.Staff, error)
	SetStaff(ctx context.Context, staff []models.Staff) error
	Invalidate(ctx context.Context) error
}

var _ CatalogCache = (*RedisCatalogCache)(nil)

// RedisCatalogCache implements CatalogCache using Redis.
type RedisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCatalogCache creates a new Redis-based catalog cache.
func NewRedisCatalogCache(cfg config.RedisConfig, logger *zap.Logger) *RedisCatalogCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisCatalogCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("catalog-cache"),
	}
}

// GetPackages retrieves the cached package catalog.
func (c *RedisCatalogCache) GetPackages(ctx context.Context) ([]models.ServicePackage, error) {
	var packages []models.ServicePackage
	ok, err := c.get(ctx, packagesKey, &packages)
	if err != nil || !ok {
		return nil, err
	}
	return packages, nil
}

// SetPackages caches the package catalog.
func (c *RedisCatalogCache) SetPackages(ctx context.Context, packages []models.ServicePackage) error {
	return c.set(ctx, packagesKey, packages)
}

// GetProducts retrieves the cached product catalog.
func (c *RedisCatalogCache) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	ok, err := c.get(ctx, productsKey, &products)
	if err != nil || !ok {
		return nil, err
	}
	return products, nil
}

// SetProducts caches the product catalog.
func (c *RedisCatalogCache) SetProducts(ctx context.Context, products []models.Product) error {
	return c.set(ctx, productsKey, products)
}

// GetStaff retrieves the cached staff roster.
func (c *RedisCatalogCache) GetStaff(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	ok, err := c.get(ctx, staffKey, &staff)
	if err != nil || !ok {
		return nil, err
	}
	return staff, nil
}

// SetStaff caches the staff roster.
func (c *RedisCatalogCache) SetStaff(ctx context.Context, staff []models.Staff) error {
	return c.set(ctx, staffKey, staff)
}

// Invalidate drops all cached catalog entries, e.g. when a catalog change
// event arrives.
func (c *RedisCatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, packagesKey, productsKey, staffKey).Err(); err != nil {
		c.logger.Error("Cache invalidation error", zap.Error(err))
		return err
	}
	c.logger.Debug("Catalog cache invalidated")
	return nil
}

func (c *RedisCatalogCache) get(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss", zap.String("key", key))
		return false, nil
	}
	if err != nil {
		c.logger.Error("Cache get error", zap.String("key", key), zap.Error(err))
		return false, err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}

	c.logger.Debug("Cache hit", zap.String("key", key))
	return true, nil
}

func (c *RedisCatalogCache) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("Cache set error", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// MemoryCatalogCache is an in-memory cache for testing.
type MemoryCatalogCache struct {
	packages []models.ServicePackage
	products []models.Product
	staff    []models.Staff
}

// NewMemoryCatalogCache creates an in-memory catalog cache.
func NewMemoryCatalogCache() *MemoryCatalogCache {
	return &MemoryCatalogCache{}
}

func (c *MemoryCatalogCache) GetPackages(ctx context.Context) ([]models.ServicePackage, error) {
	return c.packages, nil
}

func (c *MemoryCatalogCache) SetPackages(ctx context.Context, packages []models.ServicePackage) error {
	c.packages = packages
	return nil
}

func (c *MemoryCatalogCache) GetProducts(ctx context.Context) ([]models.Product, error) {
	return c.products, nil
}

func (c *MemoryCatalogCache) SetProducts(ctx context.Context, products []models.Product) error {
	c.products = products
	return nil
}

func (c *MemoryCatalogCache) GetStaff(ctx context.Context) ([]models.Staff, error) {
	return c.staff, nil
}

func (c *MemoryCatalogCache) SetStaff(ctx context.Context, staff []models.Staff) error {
	c.staff = staff
	return nil
}

func (c *MemoryCatalogCache) Invalidate(ctx context.Context) error {
	c.packages = nil
	c.products = nil
	c.staff = nil
	return nil
}
