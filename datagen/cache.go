package datagen

import (
	"slices"

	"github.com/alphadose/haxmap"
)

// Cache memoises generated inputs so repeated benchmark runs over the same
// spec reuse one fixture. Safe for concurrent use. Cached slices never leave
// the cache; callers always receive a private copy.
type Cache struct {
	fixtures *haxmap.Map[string, []int]
}

// NewCache creates an empty fixture cache.
func NewCache() *Cache {
	return &Cache{fixtures: haxmap.New[string, []int]()}
}

// Get returns a copy of the input for spec, generating it on first use.
// Invalid specs are rejected before anything is stored.
func (c *Cache) Get(spec Spec) ([]int, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	data, _ := c.fixtures.GetOrCompute(spec.key(), spec.generate)
	return slices.Clone(data), nil
}

// Len reports the number of cached fixtures.
func (c *Cache) Len() int {
	return int(c.fixtures.Len())
}

// Clear drops every cached fixture.
func (c *Cache) Clear() {
	var keys []string
	c.fixtures.ForEach(func(k string, _ []int) bool {
		keys = append(keys, k)
		return true
	})
	if len(keys) > 0 {
		c.fixtures.Del(keys...)
	}
}
