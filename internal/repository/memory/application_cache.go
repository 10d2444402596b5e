package memory

import (
	"time"

	"errortrack-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// ApplicationCache keeps a short lived api-key -> application mapping so the
// hot ingestion path skips the registry lookup for repeat reporters.
type ApplicationCache struct {
	cache *cache.Cache
}

func NewApplicationCache() *ApplicationCache {
	// Entries expire after 1 minute, expired items purged every 5 minutes.
	// Short TTL keeps pause/deactivate changes visible quickly.
	c := cache.New(1*time.Minute, 5*time.Minute)
	return &ApplicationCache{
		cache: c,
	}
}

func (r *ApplicationCache) Save(app *entity.Application) {
	r.cache.Set(app.ApiKey, app, cache.DefaultExpiration)
}

func (r *ApplicationCache) Get(apiKey string) (*entity.Application, bool) {
	if x, found := r.cache.Get(apiKey); found {
		return x.(*entity.Application), true
	}
	return nil, false
}

func (r *ApplicationCache) Delete(apiKey string) {
	r.cache.Delete(apiKey)
}
