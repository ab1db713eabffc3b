package listing

import (
	"time"

	"github.com/bluele/gcache"
	"github.com/zdrivehq/zdrive/pkg/drive"
)

// pageKey identifies one upstream listing request exactly, so the cache key
// is the request to the upstream API, not to this service. Auth headers are
// not part of the key by construction.
type pageKey struct {
	folderID  string
	pageToken string
}

// pageCache is a short-lived response cache for flat listings. Listing
// results are read-only and tolerate a staleness window of tens of seconds.
type pageCache struct {
	cache gcache.Cache
}

func newPageCache(size int, ttl time.Duration) *pageCache {
	return &pageCache{
		cache: gcache.New(size).LRU().Expiration(ttl).Build(),
	}
}

func (c *pageCache) get(folderID, pageToken string) (*drive.FileList, bool) {
	cached, err := c.cache.Get(pageKey{folderID: folderID, pageToken: pageToken})
	if err != nil {
		return nil, false
	}
	list, ok := cached.(*drive.FileList)
	return list, ok
}

func (c *pageCache) set(folderID, pageToken string, list *drive.FileList) {
	_ = c.cache.Set(pageKey{folderID: folderID, pageToken: pageToken}, list)
}
