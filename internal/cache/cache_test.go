package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aywac/tawzifak1122/internal/cache"
)

func TestPutGet(t *testing.T) {
	c := cache.New()
	defer c.Stop()

	c.Put("jobs:list", []string{"a", "b"}, []string{"jobs-list"}, 0)

	v, ok := c.Get("jobs:list")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestInvalidateByTag(t *testing.T) {
	c := cache.New()
	defer c.Stop()

	c.Put("jobs:list", 1, []string{"jobs-list", "jobs-home"}, 0)
	c.Put("jobs:home", 2, []string{"jobs-home"}, 0)
	c.Put("seekers:list", 3, []string{"seekers-list"}, 0)

	c.Invalidate("jobs-home")

	_, ok := c.Get("jobs:list")
	assert.False(t, ok, "entry sharing the tag must be dropped")
	_, ok = c.Get("jobs:home")
	assert.False(t, ok)

	v, ok := c.Get("seekers:list")
	require.True(t, ok, "entries under other tags must survive")
	assert.Equal(t, 3, v)
}

func TestInvalidateUnknownTagIsNoop(t *testing.T) {
	c := cache.New()
	defer c.Stop()

	c.Put("k", "v", []string{"a"}, 0)
	c.Invalidate("nope")

	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestOverwriteRetags(t *testing.T) {
	c := cache.New()
	defer c.Stop()

	c.Put("k", 1, []string{"old"}, 0)
	c.Put("k", 2, []string{"new"}, 0)

	// The old tag no longer reaches the entry.
	c.Invalidate("old")
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	c.Invalidate("new")
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestEntryExpires(t *testing.T) {
	c := cache.New()
	defer c.Stop()

	c.Put("k", "v", []string{"t"}, 20*time.Millisecond)

	_, ok := c.Get("k")
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := c.Get("k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
