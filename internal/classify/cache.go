package classify

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/petsense/internal/cachemanager"
	"github.com/zjrosen/petsense/internal/log"
	"github.com/zjrosen/petsense/internal/photo"
	"github.com/zjrosen/petsense/internal/tracing"
)

// Digest is the sha256 of a photo's bytes.
type Digest string

// CachingClassifier remembers successful results for identical image bytes
// for the rest of the session. Failures always go back to the service.
type CachingClassifier struct {
	next  Classifier
	cache *cachemanager.ReadThroughCache[Digest, Result, photo.Reference]
}

// NewCachingClassifier wraps next with an in-memory cache holding results for ttl.
func NewCachingClassifier(next Classifier, ttl time.Duration) *CachingClassifier {
	store := cachemanager.NewInMemoryCacheManager[Digest, Result]("classification", ttl, cachemanager.DefaultCleanupInterval)
	return &CachingClassifier{
		next:  next,
		cache: cachemanager.NewReadThroughCache[Digest, Result, photo.Reference](store, next.Classify, ttl),
	}
}

// Classify implements Classifier. Whether the cache answered is recorded on
// the caller's span.
func (c *CachingClassifier) Classify(ctx context.Context, ref photo.Reference) (Result, error) {
	digest, err := ref.Digest()
	if err != nil {
		log.Warn(log.CatCache, "digest failed, bypassing cache", "photo", ref, "error", err)
		return c.next.Classify(ctx, ref)
	}

	result, hit, err := c.cache.Get(ctx, Digest(digest), ref)
	trace.SpanFromContext(ctx).SetAttributes(tracing.AttrCacheHit.Bool(hit))
	if hit {
		log.Info(log.CatCache, "served classification from cache", "photo", ref)
	}
	return result, err
}
