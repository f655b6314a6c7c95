// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package linked

// Hashmap is a linked hashmap that maintains insertion order. Re-inserting a
// present key updates the value without touching its position; MoveToBack
// reorders explicitly.
type Hashmap[K comparable, V any] struct {
	m    map[K]*hashmapEntry[K, V]
	list *List[*hashmapEntry[K, V]]
}

type hashmapEntry[K comparable, V any] struct {
	key   K
	value V
	node  *ListNode[*hashmapEntry[K, V]]
}

// NewHashmap creates a new linked hashmap.
func NewHashmap[K comparable, V any]() *Hashmap[K, V] {
	return &Hashmap[K, V]{
		m:    make(map[K]*hashmapEntry[K, V]),
		list: NewList[*hashmapEntry[K, V]](),
	}
}

// Put adds or updates a key-value pair.
func (h *Hashmap[K, V]) Put(key K, value V) {
	if entry, ok := h.m[key]; ok {
		entry.value = value
		return
	}

	entry := &hashmapEntry[K, V]{
		key:   key,
		value: value,
	}
	entry.node = h.list.PushBack(entry)
	h.m[key] = entry
}

// Get retrieves a value by key.
func (h *Hashmap[K, V]) Get(key K) (V, bool) {
	if entry, ok := h.m[key]; ok {
		return entry.value, true
	}
	var zero V
	return zero, false
}

// Delete removes a key-value pair.
func (h *Hashmap[K, V]) Delete(key K) {
	if entry, ok := h.m[key]; ok {
		h.list.Remove(entry.node)
		delete(h.m, key)
	}
}

// MoveToBack marks the key as most recently used. Reports whether the key
// was present.
func (h *Hashmap[K, V]) MoveToBack(key K) bool {
	entry, ok := h.m[key]
	if ok {
		h.list.MoveToBack(entry.node)
	}
	return ok
}

// Oldest returns the least recently used entry.
func (h *Hashmap[K, V]) Oldest() (K, V, bool) {
	if node := h.list.Front(); node != nil {
		return node.Value.key, node.Value.value, true
	}
	var (
		zeroK K
		zeroV V
	)
	return zeroK, zeroV, false
}

// Len returns the number of entries.
func (h *Hashmap[K, V]) Len() int {
	return h.list.Len()
}

// Clear removes all entries.
func (h *Hashmap[K, V]) Clear() {
	h.m = make(map[K]*hashmapEntry[K, V])
	h.list.Clear()
}

// Iterate calls f for each entry from least to most recently used, stopping
// early if f returns false.
func (h *Hashmap[K, V]) Iterate(f func(K, V) bool) {
	for node := h.list.Front(); node != nil; node = node.Next {
		entry := node.Value
		if !f(entry.key, entry.value) {
			break
		}
	}
}
