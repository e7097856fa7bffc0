package gateway

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/M1DES1/aigenimgtovid/internal/heygen"
)

// Provider is the subset of the HeyGen API the gateway relays to.
type Provider interface {
	ListVoices(ctx context.Context) ([]heygen.Voice, error)
	ListAvatars(ctx context.Context) ([]heygen.Avatar, error)
	CreateVideo(ctx context.Context, req heygen.CreateVideoRequest) (string, error)
	VideoStatus(ctx context.Context, videoID string) (heygen.VideoStatus, error)
	CurrentUser(ctx context.Context) (json.RawMessage, error)
}

type cacheEntry[T any] struct {
	value   T
	expires time.Time
}

// CachingCatalog wraps a Provider with a TTL-based in-memory cache for the voice and
// avatar catalogs. Job creation and status calls always go straight to the provider.
type CachingCatalog struct {
	Provider
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	voices  *cacheEntry[[]heygen.Voice]
	avatars *cacheEntry[[]heygen.Avatar]
}

// NewCachingCatalog returns a Provider that caches catalog lookups for the provided TTL.
func NewCachingCatalog(base Provider, ttl time.Duration) *CachingCatalog {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachingCatalog{
		Provider: base,
		ttl:      ttl,
		now:      time.Now,
	}
}

// ListVoices returns cached voices when fresh, otherwise it delegates and stores the result.
func (c *CachingCatalog) ListVoices(ctx context.Context) ([]heygen.Voice, error) {
	if c == nil || c.Provider == nil {
		return nil, heygen.ErrNotConfigured
	}
	now := c.now()

	c.mu.RLock()
	entry := c.voices
	c.mu.RUnlock()
	if entry != nil && now.Before(entry.expires) {
		return entry.value, nil
	}

	voices, err := c.Provider.ListVoices(ctx)
	if err != nil {
		return nil, err
	}
	// An empty catalog is not cached so a freshly provisioned account is picked up.
	if len(voices) > 0 {
		c.mu.Lock()
		c.voices = &cacheEntry[[]heygen.Voice]{value: voices, expires: now.Add(c.ttl)}
		c.mu.Unlock()
	}
	return voices, nil
}

// ListAvatars returns cached avatars when fresh, otherwise it delegates and stores the result.
func (c *CachingCatalog) ListAvatars(ctx context.Context) ([]heygen.Avatar, error) {
	if c == nil || c.Provider == nil {
		return nil, heygen.ErrNotConfigured
	}
	now := c.now()

	c.mu.RLock()
	entry := c.avatars
	c.mu.RUnlock()
	if entry != nil && now.Before(entry.expires) {
		return entry.value, nil
	}

	avatars, err := c.Provider.ListAvatars(ctx)
	if err != nil {
		return nil, err
	}
	if len(avatars) > 0 {
		c.mu.Lock()
		c.avatars = &cacheEntry[[]heygen.Avatar]{value: avatars, expires: now.Add(c.ttl)}
		c.mu.Unlock()
	}
	return avatars, nil
}
