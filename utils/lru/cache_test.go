// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lru

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheEviction(t *testing.T) {
	require := require.New(t)

	cache := NewCache[int, string](2)
	cache.Put(1, "a")
	cache.Put(2, "b")
	cache.Put(3, "c")

	_, ok := cache.Get(1)
	require.False(ok)
	v, ok := cache.Get(2)
	require.True(ok)
	require.Equal("b", v)
	require.Equal(2, cache.Len())
}

func TestCacheGetTouches(t *testing.T) {
	require := require.New(t)

	cache := NewCache[int, string](2)
	cache.Put(1, "a")
	cache.Put(2, "b")

	// Touching 1 makes 2 the eviction candidate.
	_, ok := cache.Get(1)
	require.True(ok)
	cache.Put(3, "c")

	_, ok = cache.Get(2)
	require.False(ok)
	_, ok = cache.Get(1)
	require.True(ok)
}

func TestCachePutUpdatesInPlace(t *testing.T) {
	require := require.New(t)

	cache := NewCache[int, string](2)
	cache.Put(1, "a")
	cache.Put(2, "b")
	cache.Put(1, "a2")

	require.Equal(2, cache.Len())
	v, ok := cache.Get(1)
	require.True(ok)
	require.Equal("a2", v)

	// The update touched 1, so 2 goes first.
	cache.Put(3, "c")
	_, ok = cache.Get(2)
	require.False(ok)
}

func TestCacheClear(t *testing.T) {
	require := require.New(t)

	cache := NewCache[int, string](4)
	cache.Put(1, "a")
	cache.Put(2, "b")
	cache.Clear()

	require.Zero(cache.Len())
	_, ok := cache.Get(1)
	require.False(ok)
}
