// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package retransmit

import (
	"sync"
	"time"

	"github.com/luxfi/turbine/shred"
	"github.com/luxfi/turbine/utils/lru"
	"github.com/luxfi/turbine/utils/timer"
)

// shredKey addresses one logical shred position.
type shredKey struct {
	slot  uint64
	index uint32
	typ   shred.Type
}

// Filter decides whether a shred was already forwarded. Each position admits
// up to maxDuplicates distinct payloads between two hasher resets; everything
// beyond that is treated as a duplicate. The hasher and the cache live under
// one mutex because a rekey invalidates every cached digest.
type Filter struct {
	maxDuplicates int
	resetInterval timer.AtomicInterval

	mu     sync.Mutex
	cache  *lru.Cache[shredKey, []uint64]
	hasher *PacketHasher
}

// NewFilter returns a filter over an LRU of size positions.
func NewFilter(size, maxDuplicates int) *Filter {
	return &Filter{
		maxDuplicates: maxDuplicates,
		cache:         lru.NewCache[shredKey, []uint64](size),
		hasher:        NewPacketHasher(),
	}
}

// ShouldSkipRetransmit returns true iff the shred must not be forwarded.
func (f *Filter) ShouldSkipRetransmit(s *shred.Shred) bool {
	key := shredKey{
		slot:  s.Slot(),
		index: s.Index(),
		typ:   s.Type(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	sent, ok := f.cache.Get(key)
	switch {
	case !ok:
		f.cache.Put(key, []uint64{f.hasher.HashShred(s)})
		return false
	case len(sent) >= f.maxDuplicates:
		return true
	}

	hash := f.hasher.HashShred(s)
	for _, seen := range sent {
		if seen == hash {
			return true
		}
	}
	f.cache.Put(key, append(sent, hash))
	return false
}

// MaybeReset rekeys the hasher and clears the cache. The interval gate
// admits at most one caller per interval across all workers; losers return
// immediately.
func (f *Filter) MaybeReset(interval time.Duration) {
	if !f.resetInterval.ShouldUpdate(interval.Milliseconds()) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.cache.Clear()
	f.hasher.Reset()
}
