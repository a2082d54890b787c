package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// SummaryRepository keeps content summaries in process memory.
type SummaryRepository struct {
	cache *cache.Cache
}

// NewSummaryRepository creates a cache whose entries live for ttl and are
// purged every cleanup interval.
func NewSummaryRepository(ttl, cleanup time.Duration) *SummaryRepository {
	return &SummaryRepository{
		cache: cache.New(ttl, cleanup),
	}
}

func (r *SummaryRepository) Save(key, summary string) {
	r.cache.Set(key, summary, cache.DefaultExpiration)
}

func (r *SummaryRepository) Get(key string) (string, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(string), true
	}
	return "", false
}

func (r *SummaryRepository) Delete(key string) {
	r.cache.Delete(key)
}

func (r *SummaryRepository) Count() int {
	return r.cache.ItemCount()
}
