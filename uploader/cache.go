package uploader

import (
	"time"

	ttlworker "github.com/FloatTech/ttl"

	"github.com/soulblade33/filerobot-uploader/types"
)

const settingsCacheKey = "settings"

// settingsCache keeps the token settings warm between widget page loads.
// Expiry is handled by the TTL cache; a nil entry means refetch.
type settingsCache struct {
	cache *ttlworker.Cache[string, *types.TokenSettings]
}

func newSettingsCache(ttl time.Duration) *settingsCache {
	return &settingsCache{
		cache: ttlworker.NewCache[string, *types.TokenSettings](ttl),
	}
}

func (s *settingsCache) get(fetch func() (*types.TokenSettings, error)) (*types.TokenSettings, error) {
	if cached := s.cache.Get(settingsCacheKey); cached != nil {
		return cached, nil
	}
	settings, err := fetch()
	if err != nil {
		return nil, err
	}
	s.cache.Set(settingsCacheKey, settings)
	return settings, nil
}
