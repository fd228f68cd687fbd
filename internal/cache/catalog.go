package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/shixiaoya/materials/internal/model"
)

const (
	cachedProductTimeToLive   = 5 * time.Minute
	cachedCaseStudyTimeToLive = 10 * time.Minute
)

// CatalogCache keeps catalog records closer to the handler than the database
type CatalogCache interface {
	FindProductBySlug(context.Context, string) (*model.Product, error)
	CacheProduct(context.Context, *model.Product) error
	EvictProductBySlug(context.Context, string) error
	FindCaseStudyBySlug(context.Context, string) (*model.CaseStudy, error)
	CacheCaseStudy(context.Context, *model.CaseStudy) error
	EvictCaseStudyBySlug(context.Context, string) error
}

type redisCatalogCache struct {
	client *redis.Client
}

// NewCatalogCache builds CatalogCache on top of redis client, nil client
// degrades to a no-op cache
func NewCatalogCache(client *redis.Client) CatalogCache {
	if client == nil {
		return &noopCatalogCache{}
	}
	return &redisCatalogCache{client: client}
}

func (r *redisCatalogCache) FindProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var p model.Product
	ok, err := r.find(ctx, r.productKey(slug), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (r *redisCatalogCache) CacheProduct(ctx context.Context, p *model.Product) error {
	return r.cache(ctx, r.productKey(p.Slug), p, cachedProductTimeToLive)
}

func (r *redisCatalogCache) EvictProductBySlug(ctx context.Context, slug string) error {
	if _, err := r.client.Del(ctx, r.productKey(slug)).Result(); err != nil {
		return err
	}
	return nil
}

func (r *redisCatalogCache) FindCaseStudyBySlug(ctx context.Context, slug string) (*model.CaseStudy, error) {
	var cs model.CaseStudy
	ok, err := r.find(ctx, r.caseStudyKey(slug), &cs)
	if err != nil || !ok {
		return nil, err
	}
	return &cs, nil
}

func (r *redisCatalogCache) CacheCaseStudy(ctx context.Context, cs *model.CaseStudy) error {
	return r.cache(ctx, r.caseStudyKey(cs.Slug), cs, cachedCaseStudyTimeToLive)
}

func (r *redisCatalogCache) EvictCaseStudyBySlug(ctx context.Context, slug string) error {
	if _, err := r.client.Del(ctx, r.caseStudyKey(slug)).Result(); err != nil {
		return err
	}
	return nil
}

func (r *redisCatalogCache) find(ctx context.Context, key string, dest any) (bool, error) {
	res, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := msgpack.Unmarshal([]byte(res), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCatalogCache) cache(ctx context.Context, key string, value any, ttl time.Duration) error {
	encoded, err := msgpack.Marshal(value)
	if err != nil {
		return err
	}

	if _, err := r.client.SetNX(ctx, key, encoded, ttl).Result(); err != nil {
		return err
	}
	return nil
}

func (r *redisCatalogCache) productKey(slug string) string {
	return fmt.Sprintf("product:%s", slug)
}

func (r *redisCatalogCache) caseStudyKey(slug string) string {
	return fmt.Sprintf("case:%s", slug)
}

// noopCatalogCache is used when redis is not configured
type noopCatalogCache struct{}

func (*noopCatalogCache) FindProductBySlug(context.Context, string) (*model.Product, error) {
	return nil, nil
}

func (*noopCatalogCache) CacheProduct(context.Context, *model.Product) error { return nil }

func (*noopCatalogCache) EvictProductBySlug(context.Context, string) error { return nil }

func (*noopCatalogCache) FindCaseStudyBySlug(context.Context, string) (*model.CaseStudy, error) {
	return nil, nil
}

func (*noopCatalogCache) CacheCaseStudy(context.Context, *model.CaseStudy) error { return nil }

func (*noopCatalogCache) EvictCaseStudyBySlug(context.Context, string) error { return nil }
