package nav

import "github.com/bitagoras/xtype-go/internal/hash"

// keyCache is an optional xxHash64(key) -> value-offset side index built up
// as Get scans a map, so repeated lookups on the same navigator amortize to
// O(1) instead of re-scanning from the map's opening tag every time. It
// never changes observable behavior: a cache miss always falls back to the
// linear scan, and last-write-wins / file-order semantics are unaffected
// since the cache only remembers offsets the scan already visited.
type keyCache struct {
	offsets map[uint64]int64
}

func newKeyCache() *keyCache {
	return &keyCache{offsets: make(map[uint64]int64)}
}

func (c *keyCache) lookup(key string) (int64, bool) {
	off, ok := c.offsets[hash.ID(key)]
	return off, ok
}

func (c *keyCache) remember(key string, valueOffset int64) {
	c.offsets[hash.ID(key)] = valueOffset
}

// rememberKey records key -> valueOffset in n's key cache, creating the
// cache on first use.
func (n *Nav) rememberKey(key string, valueOffset int64) {
	if n.cache == nil {
		n.cache = newKeyCache()
	}

	n.cache.remember(key, valueOffset)
}
