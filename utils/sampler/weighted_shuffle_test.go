// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sampler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func shuffleOnce(t *testing.T, weights []uint64, seed [32]byte) []int {
	t.Helper()

	ws, err := NewWeightedShuffle(weights)
	require.NoError(t, err)
	src, err := NewSeededSource(seed)
	require.NoError(t, err)
	return ws.Shuffle(src)
}

func TestWeightedShuffleIsPermutation(t *testing.T) {
	require := require.New(t)

	weights := []uint64{5, 1, 9, 2, 7, 100, 1, 3}
	order := shuffleOnce(t, weights, [32]byte{0x01})

	require.Len(order, len(weights))
	seen := make(map[int]bool, len(order))
	for _, ix := range order {
		require.GreaterOrEqual(ix, 0)
		require.Less(ix, len(weights))
		require.False(seen[ix])
		seen[ix] = true
	}
}

func TestWeightedShuffleDeterminism(t *testing.T) {
	require := require.New(t)

	weights := []uint64{5, 1, 9, 2, 7, 100, 1, 3}
	seed := [32]byte{0xde, 0xad, 0xbe, 0xef}

	require.Equal(
		shuffleOnce(t, weights, seed),
		shuffleOnce(t, weights, seed),
	)
}

func TestWeightedShuffleSkipsZeroWeights(t *testing.T) {
	require := require.New(t)

	weights := []uint64{0, 4, 0, 2, 0}
	order := shuffleOnce(t, weights, [32]byte{0x02})

	require.Len(order, 2)
	for _, ix := range order {
		require.NotZero(weights[ix])
	}
}

func TestWeightedShuffleBias(t *testing.T) {
	require := require.New(t)

	// One node holds nearly all the weight; it should land first in
	// essentially every tree.
	weights := []uint64{1, 1, 1, 1 << 60, 1, 1}
	heavyFirst := 0
	for i := 0; i < 100; i++ {
		order := shuffleOnce(t, weights, [32]byte{byte(i), 0x55})
		if order[0] == 3 {
			heavyFirst++
		}
	}
	require.Greater(heavyFirst, 95)
}

func TestWeightedShuffleOverflow(t *testing.T) {
	require := require.New(t)

	_, err := NewWeightedShuffle([]uint64{1 << 63, 1 << 63})
	require.Error(err)
}

func TestWeightedShuffleEmpty(t *testing.T) {
	require := require.New(t)

	order := shuffleOnce(t, nil, [32]byte{})
	require.Empty(order)

	// A consumed shuffle yields nothing further.
	ws, err := NewWeightedShuffle([]uint64{1, 2})
	require.NoError(err)
	src, err := NewSeededSource([32]byte{0x09})
	require.NoError(err)
	require.Len(ws.Shuffle(src), 2)
	require.Empty(ws.Shuffle(src))
}

func TestSeededSourceDeterminism(t *testing.T) {
	require := require.New(t)

	a, err := NewSeededSource([32]byte{0x01})
	require.NoError(err)
	b, err := NewSeededSource([32]byte{0x01})
	require.NoError(err)
	c, err := NewSeededSource([32]byte{0x02})
	require.NoError(err)

	var fromA, fromB, fromC []uint64
	for i := 0; i < 16; i++ {
		fromA = append(fromA, a.Uint64())
		fromB = append(fromB, b.Uint64())
		fromC = append(fromC, c.Uint64())
	}
	require.Equal(fromA, fromB)
	require.NotEqual(fromA, fromC)
}
