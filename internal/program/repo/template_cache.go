package repo

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/2beens/fitprogram/internal/program"

	"github.com/coocood/freecache"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	megabyte            = 1024 * 1024
	templateCacheExpire = 60 * 60 * 6 // seconds
)

//go:generate mockgen -source=$GOFILE -destination=template_cache_mocks_test.go -package=repo_test

type templateLoader interface {
	GetTemplate(ctx context.Context, id int64) (*program.Template, error)
}

// TemplateCache serves templates from memory. Templates never change after
// creation, so entries only leave the cache on expiry or Invalidate.
type TemplateCache struct {
	loader  templateLoader
	cache   *freecache.Cache
	lookups *prometheus.CounterVec // optional, labeled by result
}

func NewTemplateCache(loader templateLoader, sizeMB int, lookups *prometheus.CounterVec) *TemplateCache {
	if sizeMB <= 0 {
		sizeMB = 10
	}
	return &TemplateCache{
		loader:  loader,
		cache:   freecache.NewCache(sizeMB * megabyte),
		lookups: lookups,
	}
}

func (c *TemplateCache) GetTemplate(ctx context.Context, id int64) (*program.Template, error) {
	key := cacheKey(id)
	if data, err := c.cache.Get(key); err == nil {
		var tmpl program.Template
		if err := json.Unmarshal(data, &tmpl); err == nil {
			c.observe("hit")
			return &tmpl, nil
		}
		log.Errorf("failed to unmarshal template %d from cache, reloading", id)
		c.cache.Del(key)
	}
	c.observe("miss")

	tmpl, err := c.loader.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(tmpl)
	if err != nil {
		log.Errorf("failed to marshal template %d for cache: %s", id, err)
		return tmpl, nil
	}
	if err := c.cache.Set(key, data, templateCacheExpire); err != nil {
		log.Errorf("failed to write template %d to cache: %s", id, err)
	}

	return tmpl, nil
}

func (c *TemplateCache) Invalidate(id int64) {
	c.cache.Del(cacheKey(id))
}

func (c *TemplateCache) observe(result string) {
	if c.lookups != nil {
		c.lookups.WithLabelValues(result).Inc()
	}
}

func cacheKey(id int64) []byte {
	return []byte("template::" + strconv.FormatInt(id, 10))
}
