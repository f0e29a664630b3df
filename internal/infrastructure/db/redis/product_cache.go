package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/retailops/store-console/internal/core/domain"
	"github.com/retailops/store-console/internal/core/ports"
)

const (
	productTTL  = 5 * time.Minute
	notFoundTTL = 1 * time.Minute
	// notFoundMarker caches the absence of a product so repeated lookups for a
	// bad ID do not hit the database.
	notFoundMarker = "notfound"
)

// CachedProductRepository wraps a ProductRepository with a read-through cache
// for single-product lookups. Cache failures degrade to the database; a
// purchase or catalog write drops the affected key. Listings, searches and
// aggregates always go to the database.
type CachedProductRepository struct {
	repo   ports.ProductRepository
	client *redis.Client
	logger zerolog.Logger
}

func NewCachedProductRepository(repo ports.ProductRepository, client *redis.Client, logger zerolog.Logger) *CachedProductRepository {
	return &CachedProductRepository{
		repo:   repo,
		client: client,
		logger: logger,
	}
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func (c *CachedProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	key := productKey(id)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, domain.ErrProductNotFound
		}
		var product domain.Product
		if err := json.Unmarshal(data, &product); err == nil {
			return &product, nil
		}
		c.logger.Warn().Str("key", key).Msg("corrupt cache entry, falling through to database")
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn().Err(err).Msg("cache read failed, falling through to database")
	}

	product, err := c.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			if setErr := c.client.Set(ctx, key, notFoundMarker, notFoundTTL).Err(); setErr != nil {
				c.logger.Warn().Err(setErr).Str("key", key).Msg("cache write failed")
			}
		}
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		if setErr := c.client.Set(ctx, key, data, productTTL).Err(); setErr != nil {
			c.logger.Warn().Err(setErr).Str("key", key).Msg("cache write failed")
		}
	}
	return product, nil
}

// InvalidateProduct drops the cached entry after a stock change recorded
// outside this decorator, such as a committed purchase.
func (c *CachedProductRepository) InvalidateProduct(ctx context.Context, productID string) {
	if err := c.client.Del(ctx, productKey(productID)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("product_id", productID).Msg("cache invalidation failed")
	}
}

func (c *CachedProductRepository) Create(ctx context.Context, product *domain.Product) error {
	c.InvalidateProduct(ctx, product.ID)
	return c.repo.Create(ctx, product)
}

func (c *CachedProductRepository) Update(ctx context.Context, product *domain.Product) error {
	c.InvalidateProduct(ctx, product.ID)
	return c.repo.Update(ctx, product)
}

func (c *CachedProductRepository) Delete(ctx context.Context, id string) error {
	c.InvalidateProduct(ctx, id)
	return c.repo.Delete(ctx, id)
}

func (c *CachedProductRepository) List(ctx context.Context, page ports.PageRequest) ([]domain.Product, int, error) {
	return c.repo.List(ctx, page)
}

func (c *CachedProductRepository) Search(ctx context.Context, criteria ports.SearchCriteria) ([]domain.Product, error) {
	return c.repo.Search(ctx, criteria)
}

func (c *CachedProductRepository) SalesAnalysis(ctx context.Context) ([]ports.ProductSales, error) {
	return c.repo.SalesAnalysis(ctx)
}
