// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sampler

import (
	safemath "github.com/luxfi/turbine/utils/math"
)

// WeightedShuffle produces a weighted random permutation of indices: a
// Fisher-Yates walk where each remaining index is picked with probability
// proportional to its weight. Higher weights are biased toward earlier
// positions. Indices with zero weight are omitted from the output.
//
// Selection runs over a binary indexed tree of the weights, so a full
// shuffle of n entries costs O(n log n) draws and updates.
type WeightedShuffle struct {
	weights []uint64
	tree    []uint64 // 1-indexed prefix-sum tree
	total   uint64
	highBit int
}

// NewWeightedShuffle validates the weights and builds the prefix-sum tree.
func NewWeightedShuffle(weights []uint64) (*WeightedShuffle, error) {
	n := len(weights)
	ws := &WeightedShuffle{
		weights: make([]uint64, n),
		tree:    make([]uint64, n+1),
		highBit: 1,
	}
	copy(ws.weights, weights)
	for ws.highBit*2 <= n {
		ws.highBit *= 2
	}

	var err error
	for i, weight := range weights {
		if ws.total, err = safemath.Add64(ws.total, weight); err != nil {
			return nil, err
		}
		ws.add(i+1, weight)
	}
	return ws, nil
}

// Shuffle consumes the tree and returns the permutation. Calling Shuffle a
// second time returns an empty slice; build a new WeightedShuffle per use.
func (ws *WeightedShuffle) Shuffle(src Source) []int {
	order := make([]int, 0, len(ws.weights))
	for ws.total > 0 {
		target := Uint64n(src, ws.total)
		i := ws.find(target)
		order = append(order, i)
		ws.remove(i+1, ws.weights[i])
		ws.total -= ws.weights[i]
	}
	return order
}

// add increases the weight of 1-indexed position pos.
func (ws *WeightedShuffle) add(pos int, weight uint64) {
	for ; pos < len(ws.tree); pos += pos & -pos {
		ws.tree[pos] += weight
	}
}

// remove decreases the weight of 1-indexed position pos.
func (ws *WeightedShuffle) remove(pos int, weight uint64) {
	for ; pos < len(ws.tree); pos += pos & -pos {
		ws.tree[pos] -= weight
	}
}

// find returns the 0-indexed position whose cumulative weight range contains
// target. target must be < ws.total.
func (ws *WeightedShuffle) find(target uint64) int {
	pos := 0
	for bit := ws.highBit; bit > 0; bit >>= 1 {
		next := pos + bit
		if next < len(ws.tree) && ws.tree[next] <= target {
			target -= ws.tree[next]
			pos = next
		}
	}
	return pos
}
