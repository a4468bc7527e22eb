package usecase

import (
	"context"
	"sync"

	"servicehub/internal/domain/repository"
	"servicehub/pkg/errors"
)

// UnknownUserName is shown for participants whose profile cannot be
// resolved.
const UnknownUserName = "Unknown User"

// DisplayNameCache memoizes identity → display name lookups for the
// lifetime of a session. The cache is advisory: entries are idempotent
// (an identity resolves to the same name within a session) and evicting
// everything is always safe.
type DisplayNameCache struct {
	profileRepo repository.ProfileRepository
	mu          sync.RWMutex
	names       map[string]string
}

func NewDisplayNameCache(profileRepo repository.ProfileRepository) *DisplayNameCache {
	return &DisplayNameCache{
		profileRepo: profileRepo,
		names:       make(map[string]string),
	}
}

// Resolve returns the display name for an identity, consulting the store
// only on a cache miss. Unregistered identities resolve (and cache) as
// UnknownUserName; transient lookup failures fall back without caching so
// a later call can retry.
func (c *DisplayNameCache) Resolve(ctx context.Context, identity string) string {
	c.mu.RLock()
	name, ok := c.names[identity]
	c.mu.RUnlock()
	if ok {
		return name
	}

	profile, err := c.profileRepo.Get(ctx, identity)
	switch {
	case err == nil:
		name = profile.DisplayName
	case errors.Is(err, "NOT_FOUND"):
		name = UnknownUserName
	default:
		return UnknownUserName
	}

	c.mu.Lock()
	c.names[identity] = name
	c.mu.Unlock()

	return name
}

// Evict drops a single entry, e.g. after the identity re-registers with a
// new display name.
func (c *DisplayNameCache) Evict(identity string) {
	c.mu.Lock()
	delete(c.names, identity)
	c.mu.Unlock()
}

// Reset clears the cache. Called on identity change, which resets all
// downstream state.
func (c *DisplayNameCache) Reset() {
	c.mu.Lock()
	c.names = make(map[string]string)
	c.mu.Unlock()
}
