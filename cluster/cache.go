// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cluster

import (
	"sync"
	"time"

	"github.com/luxfi/turbine/core"
	"github.com/luxfi/turbine/utils/lru"
	"github.com/luxfi/turbine/utils/timer/mockable"
)

type cacheEntry struct {
	nodes     *Nodes
	createdAt time.Time
}

// NodesCache memoizes per-epoch peer tables. Entries expire after a TTL so
// membership changes propagate within bounded time; the capacity bounds how
// many epochs are held across epoch boundaries.
type NodesCache struct {
	ttl   time.Duration
	clock mockable.Clock

	mu      sync.Mutex
	entries *lru.Cache[uint64, *cacheEntry]
}

// NewNodesCache returns a cache holding peer tables for at most cap epochs,
// each fresh for ttl.
func NewNodesCache(cap int, ttl time.Duration) *NodesCache {
	return &NodesCache{
		ttl:     ttl,
		entries: lru.NewCache[uint64, *cacheEntry](cap),
	}
}

// ForSlot returns the peer table of the epoch containing slot, recomputing
// it from membership when absent or stale. The epoch is resolved against the
// root snapshot's schedule. The working snapshot is accepted but not read;
// the table is built from membership alone.
func (c *NodesCache) ForSlot(
	slot uint64,
	root core.Snapshot,
	working core.Snapshot,
	membership Membership,
) *Nodes {
	epoch := root.EpochSchedule().Epoch(slot)
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries.Get(epoch); ok && now.Sub(entry.createdAt) <= c.ttl {
		return entry.nodes
	}

	nodes := NewNodes(membership)
	c.entries.Put(epoch, &cacheEntry{
		nodes:     nodes,
		createdAt: now,
	})
	return nodes
}
